package storage

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medvault/records-api/internal/handler"
	"github.com/medvault/records-api/internal/middleware"
	storagesvc "github.com/medvault/records-api/internal/service/storage"
)

type Handler struct {
	svc *storagesvc.Service
}

func NewHandler(svc *storagesvc.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/storage/credentials", h.Vend)
}

// Vend issues scoped object-store credentials for direct uploads.
func (h *Handler) Vend(c *gin.Context) {
	principal, _ := middleware.Principal(c)

	creds, err := h.svc.Vend(principal, c.Query("prefix"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, creds)
}
