package prescription

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medvault/records-api/internal/handler"
	"github.com/medvault/records-api/internal/middleware"
	"github.com/medvault/records-api/internal/model"
	prescriptionsvc "github.com/medvault/records-api/internal/service/prescription"
	apperrors "github.com/medvault/records-api/pkg/errors"
)

type Handler struct {
	svc *prescriptionsvc.Service
}

func NewHandler(svc *prescriptionsvc.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires prescription CRUD. Per-prescription routes check that
// the prescription's profile belongs to the caller; clinician and admin tiers
// bypass.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	owned := middleware.RequireMember(middleware.OwnershipCheck{
		Bypass:     []model.AccessLevel{model.LevelHospital, model.LevelAdmin},
		Unassigned: middleware.DenyUnassigned,
	}, h.resolveProfile, func(p *model.Principal) model.UUIDList { return p.ProfileIDs })

	prescriptions := rg.Group("/prescriptions")
	{
		prescriptions.POST("", h.Create)
		prescriptions.GET("", h.List)
		prescriptions.GET("/:id", middleware.ValidateID("id"), owned, h.Get)
		prescriptions.PUT("/:id", middleware.ValidateID("id"), owned, h.Update)
		prescriptions.DELETE("/:id", middleware.ValidateID("id"), owned, h.Delete)
	}
}

func (h *Handler) resolveProfile(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error) {
	prescription, err := h.svc.Get(ctx, id)
	if err != nil {
		return uuid.Nil, false, err
	}
	return prescription.ProfileID, true, nil
}

func (h *Handler) Create(c *gin.Context) {
	principal, _ := middleware.Principal(c)

	var req model.CreatePrescriptionRequest
	if err := handler.BindStrict(c, &req); err != nil {
		handler.Error(c, err)
		return
	}

	prescription, err := h.svc.Create(c.Request.Context(), principal, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusCreated, prescription)
}

func (h *Handler) Get(c *gin.Context) {
	prescription, err := h.svc.Get(c.Request.Context(), middleware.RouteID(c, "id"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, prescription)
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

	prescriptions, err := h.svc.List(c.Request.Context(), principal, profileID, handler.Filters(c, "profile_id"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, prescriptions)
}

func (h *Handler) Update(c *gin.Context) {
	var req model.UpdatePrescriptionRequest
	if err := handler.BindStrict(c, &req); err != nil {
		handler.Error(c, err)
		return
	}

	prescription, err := h.svc.Update(c.Request.Context(), middleware.RouteID(c, "id"), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, prescription)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.RouteID(c, "id")); err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, gin.H{"message": "prescription deleted"})
}
