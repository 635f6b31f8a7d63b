package hospital

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medvault/records-api/internal/handler"
	"github.com/medvault/records-api/internal/middleware"
	"github.com/medvault/records-api/internal/model"
	hospitalsvc "github.com/medvault/records-api/internal/service/hospital"
)

type Handler struct {
	svc *hospitalsvc.Service
}

func NewHandler(svc *hospitalsvc.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires hospital CRUD. Reads are open to any authenticated
// caller; writes are admin-only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	hospitals := rg.Group("/hospitals")
	{
		hospitals.GET("", h.List)
		hospitals.GET("/:id", middleware.ValidateID("id"), h.Get)
		hospitals.POST("", middleware.RequireAdmin(), h.Create)
		hospitals.PUT("/:id", middleware.RequireAdmin(), middleware.ValidateID("id"), h.Update)
		hospitals.DELETE("/:id", middleware.RequireAdmin(), middleware.ValidateID("id"), h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateHospitalRequest
	if err := handler.BindStrict(c, &req); err != nil {
		handler.Error(c, err)
		return
	}

	hospital, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusCreated, hospital)
}

func (h *Handler) Get(c *gin.Context) {
	hospital, err := h.svc.Get(c.Request.Context(), middleware.RouteID(c, "id"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, hospital)
}

func (h *Handler) List(c *gin.Context) {
	hospitals, err := h.svc.List(c.Request.Context(), handler.Filters(c))
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, hospitals)
}

func (h *Handler) Update(c *gin.Context) {
	var req model.UpdateHospitalRequest
	if err := handler.BindStrict(c, &req); err != nil {
		handler.Error(c, err)
		return
	}

	hospital, err := h.svc.Update(c.Request.Context(), middleware.RouteID(c, "id"), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, hospital)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.RouteID(c, "id")); err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, gin.H{"message": "hospital deleted"})
}
