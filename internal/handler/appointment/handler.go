package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medvault/records-api/internal/handler"
	"github.com/medvault/records-api/internal/middleware"
	"github.com/medvault/records-api/internal/model"
	appointmentsvc "github.com/medvault/records-api/internal/service/appointment"
	apperrors "github.com/medvault/records-api/pkg/errors"
)

type Handler struct {
	svc *appointmentsvc.Service
}

func NewHandler(svc *appointmentsvc.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires the slot lifecycle. Ownership of individual slots is
// enforced in the service because book/reschedule/cancel compare against the
// creating account, not a principal list.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	appointments := rg.Group("/appointments")
	{
		appointments.POST("/slots", middleware.RequireClinician(), h.CreateSlots)
		appointments.GET("", h.List)
		appointments.GET("/:id", middleware.ValidateID("id"), h.Get)
		appointments.POST("/:id/book", middleware.ValidateID("id"), h.Book)
		appointments.POST("/:id/reschedule", middleware.ValidateID("id"), h.Reschedule)
		appointments.POST("/:id/cancel", middleware.ValidateID("id"), h.Cancel)
		appointments.DELETE("/:id", middleware.RequireAdmin(), middleware.ValidateID("id"), h.Delete)
	}
}

func (h *Handler) CreateSlots(c *gin.Context) {
	principal, _ := middleware.Principal(c)

	var req model.CreateSlotsRequest
	if err := handler.BindStrict(c, &req); err != nil {
		handler.Error(c, err)
		return
	}

	slots, err := h.svc.CreateSlots(c.Request.Context(), principal, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusCreated, slots)
}

func (h *Handler) Get(c *gin.Context) {
	appointment, err := h.svc.Get(c.Request.Context(), middleware.RouteID(c, "id"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, appointment)
}

func (h *Handler) List(c *gin.Context) {
	principal, _ := middleware.Principal(c)

	var profileID *uuid.UUID
	if raw := c.Query("profile_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			handler.Error(c, apperrors.Validation("profile_id must be a uuid"))
			return
		}
		profileID = &id
	}

	appointments, err := h.svc.List(c.Request.Context(), principal, profileID, handler.Filters(c, "profile_id"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, appointments)
}

func (h *Handler) Book(c *gin.Context) {
	principal, _ := middleware.Principal(c)

	var req model.BookAppointmentRequest
	if err := handler.BindStrict(c, &req); err != nil {
		handler.Error(c, err)
		return
	}

	appointment, err := h.svc.Book(c.Request.Context(), principal, middleware.RouteID(c, "id"), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, appointment)
}

func (h *Handler) Reschedule(c *gin.Context) {
	principal, _ := middleware.Principal(c)

	var req model.RescheduleAppointmentRequest
	if err := handler.BindStrict(c, &req); err != nil {
		handler.Error(c, err)
		return
	}

	appointment, err := h.svc.Reschedule(c.Request.Context(), principal, middleware.RouteID(c, "id"), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, appointment)
}

func (h *Handler) Cancel(c *gin.Context) {
	principal, _ := middleware.Principal(c)

	cancelled, replacement, err := h.svc.Cancel(c.Request.Context(), principal, middleware.RouteID(c, "id"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, gin.H{
		"cancelled":   cancelled,
		"replacement": replacement,
	})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.RouteID(c, "id")); err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, gin.H{"message": "appointment deleted"})
}
