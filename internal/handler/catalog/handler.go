package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medvault/records-api/internal/handler"
	"github.com/medvault/records-api/internal/middleware"
	"github.com/medvault/records-api/internal/model"
	catalogsvc "github.com/medvault/records-api/internal/service/catalog"
)

// Handler serves one catalog kind; the router mounts one instance per kind.
type Handler struct {
	svc  *catalogsvc.Service
	path string
}

func NewHandler(svc *catalogsvc.Service, path string) *Handler {
	return &Handler{svc: svc, path: path}
}

// RegisterRoutes wires catalog CRUD. Reads are open to any authenticated
// caller; writes are admin-only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	entries := rg.Group("/" + h.path)
	{
		entries.GET("", h.List)
		entries.GET("/:id", middleware.ValidateID("id"), h.Get)
		entries.POST("", middleware.RequireAdmin(), h.Create)
		entries.PUT("/:id", middleware.RequireAdmin(), middleware.ValidateID("id"), h.Update)
		entries.DELETE("/:id", middleware.RequireAdmin(), middleware.ValidateID("id"), h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateCatalogEntryRequest
	if err := handler.BindStrict(c, &req); err != nil {
		handler.Error(c, err)
		return
	}

	entry, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusCreated, entry)
}

func (h *Handler) Get(c *gin.Context) {
	entry, err := h.svc.Get(c.Request.Context(), middleware.RouteID(c, "id"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, entry)
}

func (h *Handler) List(c *gin.Context) {
	entries, err := h.svc.List(c.Request.Context(), handler.Filters(c))
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, entries)
}

func (h *Handler) Update(c *gin.Context) {
	var req model.UpdateCatalogEntryRequest
	if err := handler.BindStrict(c, &req); err != nil {
		handler.Error(c, err)
		return
	}

	entry, err := h.svc.Update(c.Request.Context(), middleware.RouteID(c, "id"), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, entry)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.RouteID(c, "id")); err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, gin.H{"message": "entry deleted"})
}
