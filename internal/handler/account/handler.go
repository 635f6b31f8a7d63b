package account

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medvault/records-api/internal/handler"
	"github.com/medvault/records-api/internal/middleware"
	"github.com/medvault/records-api/internal/model"
	accountsvc "github.com/medvault/records-api/internal/service/account"
)

type Handler struct {
	svc *accountsvc.Service
}

func NewHandler(svc *accountsvc.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires account administration. All routes are admin-only;
// self-service registration goes through /auth/register.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/accounts", middleware.RequireAdmin())
	{
		accounts.POST("", h.Create)
		accounts.GET("", h.List)
		accounts.GET("/:id", middleware.ValidateID("id"), h.Get)
		accounts.PUT("/:id", middleware.ValidateID("id"), h.Update)
		accounts.DELETE("/:id", middleware.ValidateID("id"), h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAccountRequest
	if err := handler.BindStrict(c, &req); err != nil {
		handler.Error(c, err)
		return
	}

	account, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusCreated, account)
}

func (h *Handler) Get(c *gin.Context) {
	account, err := h.svc.Get(c.Request.Context(), middleware.RouteID(c, "id"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, account)
}

func (h *Handler) List(c *gin.Context) {
	accounts, err := h.svc.List(c.Request.Context(), handler.Filters(c))
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, accounts)
}

func (h *Handler) Update(c *gin.Context) {
	var req model.UpdateAccountRequest
	if err := handler.BindStrict(c, &req); err != nil {
		handler.Error(c, err)
		return
	}

	account, err := h.svc.Update(c.Request.Context(), middleware.RouteID(c, "id"), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, account)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.RouteID(c, "id")); err != nil {
		handler.Error(c, err)
		return
	}
	handler.Respond(c, http.StatusOK, gin.H{"message": "account deleted"})
}
