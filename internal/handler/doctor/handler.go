package doctor

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medvault/records-api/internal/handler"
	"github.com/medvault/records-api/internal/middleware"
	"github.com/medvault/records-api/internal/model"
	doctorsvc "github.com/medvault/records-api/internal/service/doctor"
	apperrors "github.com/medvault/records-api/pkg/errors"
)

type Handler struct {
	svc *doctorsvc.Service
}

func NewHandler(svc *doctorsvc.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires doctor CRUD. Reads are open to any authenticated
// caller; writes are admin-only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	doctors := rg.Group("/doctors")
	{
		doctors.GET("", h.List)
		doctors.GET("/:id", middleware.ValidateID("id"), h.Get)
		doctors.POST("", middleware.RequireAdmin(), h.Create)
		doctors.PUT("/:id", middleware.RequireAdmin(), middleware.ValidateID("id"), h.Update)
		doctors.DELETE("/:id", middleware.RequireAdmin(), middleware.ValidateID("id"), h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateDoctorRequest
	if err := handler.BindStrict(c, &req); err != nil {
		handler.Error(c, err)
		return
	}

	doctor, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusCreated, doctor)
}

func (h *Handler) Get(c *gin.Context) {
	doctor, err := h.svc.Get(c.Request.Context(), middleware.RouteID(c, "id"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, doctor)
}

func (h *Handler) List(c *gin.Context) {
	var hospitalID *uuid.UUID
	if raw := c.Query("hospital_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			handler.Error(c, apperrors.Validation("hospital_id must be a uuid"))
			return
		}
		hospitalID = &id
	}

	doctors, err := h.svc.List(c.Request.Context(), hospitalID, handler.Filters(c, "hospital_id"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, doctors)
}

func (h *Handler) Update(c *gin.Context) {
	var req model.UpdateDoctorRequest
	if err := handler.BindStrict(c, &req); err != nil {
		handler.Error(c, err)
		return
	}

	doctor, err := h.svc.Update(c.Request.Context(), middleware.RouteID(c, "id"), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, doctor)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.RouteID(c, "id")); err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, gin.H{"message": "doctor deleted"})
}
