package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medvault/records-api/internal/handler"
	"github.com/medvault/records-api/internal/middleware"
	"github.com/medvault/records-api/internal/model"
	profilesvc "github.com/medvault/records-api/internal/service/profile"
	apperrors "github.com/medvault/records-api/pkg/errors"
)

type Handler struct {
	svc *profilesvc.Service
}

func NewHandler(svc *profilesvc.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires profile CRUD. Per-profile routes carry a
// list-membership gate: the route id must appear in the caller's profile
// list unless the caller is clinician or admin tier.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	owned := middleware.RequireMember(middleware.OwnershipCheck{
		Bypass:     []model.AccessLevel{model.LevelHospital, model.LevelAdmin},
		Unassigned: middleware.DenyUnassigned,
	}, middleware.SelfResolver, func(p *model.Principal) model.UUIDList { return p.ProfileIDs })

	profiles := rg.Group("/profiles")
	{
		profiles.POST("", h.Create)
		profiles.GET("", h.List)
		profiles.GET("/:id", middleware.ValidateID("id"), owned, h.Get)
		profiles.PUT("/:id", middleware.ValidateID("id"), owned, h.Update)
		profiles.DELETE("/:id", middleware.ValidateID("id"), owned, h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	principal, _ := middleware.Principal(c)

	var req model.CreateProfileRequest
	if err := handler.BindStrict(c, &req); err != nil {
		handler.Error(c, err)
		return
	}

	profile, err := h.svc.Create(c.Request.Context(), principal, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusCreated, profile)
}

func (h *Handler) Get(c *gin.Context) {
	profile, err := h.svc.Get(c.Request.Context(), middleware.RouteID(c, "id"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, profile)
}

func (h *Handler) List(c *gin.Context) {
	principal, _ := middleware.Principal(c)

	var accountID *uuid.UUID
	if raw := c.Query("account_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			handler.Error(c, apperrors.Validation("account_id must be a uuid"))
			return
		}
		accountID = &id
	}

	profiles, err := h.svc.List(c.Request.Context(), principal, accountID, handler.Filters(c, "account_id"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, profiles)
}

func (h *Handler) Update(c *gin.Context) {
	var req model.UpdateProfileRequest
	if err := handler.BindStrict(c, &req); err != nil {
		handler.Error(c, err)
		return
	}

	profile, err := h.svc.Update(c.Request.Context(), middleware.RouteID(c, "id"), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, profile)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.RouteID(c, "id")); err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, gin.H{"message": "profile deleted"})
}
