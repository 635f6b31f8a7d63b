package record

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medvault/records-api/internal/handler"
	"github.com/medvault/records-api/internal/middleware"
	"github.com/medvault/records-api/internal/model"
	recordsvc "github.com/medvault/records-api/internal/service/record"
	apperrors "github.com/medvault/records-api/pkg/errors"
)

type Handler struct {
	svc *recordsvc.Service
}

func NewHandler(svc *recordsvc.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires medical record CRUD. Per-record routes check that the
// record's profile belongs to the caller; clinician and admin tiers bypass.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	owned := middleware.RequireMember(middleware.OwnershipCheck{
		Bypass:     []model.AccessLevel{model.LevelHospital, model.LevelAdmin},
		Unassigned: middleware.DenyUnassigned,
	}, h.resolveProfile, func(p *model.Principal) model.UUIDList { return p.ProfileIDs })

	records := rg.Group("/records")
	{
		records.POST("", h.Create)
		records.GET("", h.List)
		records.GET("/:id", middleware.ValidateID("id"), owned, h.Get)
		records.PUT("/:id", middleware.ValidateID("id"), owned, h.Update)
		records.DELETE("/:id", middleware.ValidateID("id"), owned, h.Delete)
	}
}

func (h *Handler) resolveProfile(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error) {
	record, err := h.svc.Get(ctx, id)
	if err != nil {
		return uuid.Nil, false, err
	}
	return record.ProfileID, true, nil
}

func (h *Handler) Create(c *gin.Context) {
	principal, _ := middleware.Principal(c)

	var req model.CreateMedicalRecordRequest
	if err := handler.BindStrict(c, &req); err != nil {
		handler.Error(c, err)
		return
	}

	record, err := h.svc.Create(c.Request.Context(), principal, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusCreated, record)
}

func (h *Handler) Get(c *gin.Context) {
	record, err := h.svc.Get(c.Request.Context(), middleware.RouteID(c, "id"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, record)
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

	records, err := h.svc.List(c.Request.Context(), principal, profileID, handler.Filters(c, "profile_id"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, records)
}

func (h *Handler) Update(c *gin.Context) {
	var req model.UpdateMedicalRecordRequest
	if err := handler.BindStrict(c, &req); err != nil {
		handler.Error(c, err)
		return
	}

	record, err := h.svc.Update(c.Request.Context(), middleware.RouteID(c, "id"), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, record)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.RouteID(c, "id")); err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, gin.H{"message": "record deleted"})
}
