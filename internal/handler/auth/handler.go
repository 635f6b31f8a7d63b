package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/medvault/records-api/internal/handler"
	"github.com/medvault/records-api/internal/middleware"
	"github.com/medvault/records-api/internal/model"
	authsvc "github.com/medvault/records-api/internal/service/auth"
)

type Handler struct {
	svc *authsvc.Service
}

func NewHandler(svc *authsvc.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires the anonymous auth endpoints. Logout is registered
// separately on the authenticated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/logout", h.Logout)
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := handler.BindStrict(c, &req); err != nil {
		handler.Error(c, err)
		return
	}

	resp, err := h.svc.Register(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.Header(middleware.HeaderAuthToken, resp.AccessToken)
	handler.Respond(c, http.StatusCreated, resp)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := handler.BindStrict(c, &req); err != nil {
		handler.Error(c, err)
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.Header(middleware.HeaderAuthToken, resp.AccessToken)
	handler.Respond(c, http.StatusOK, resp)
}

// Logout revokes the presented credential for the remainder of its lifetime.
func (h *Handler) Logout(c *gin.Context) {
	credential := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

	tokenID, expiresAt, err := h.svc.TokenExpiry(credential)
	if err != nil {
		handler.Error(c, err)
		return
	}
	if err := h.svc.Logout(c.Request.Context(), tokenID, expiresAt); err != nil {
		handler.Error(c, err)
		return
	}

	handler.Respond(c, http.StatusOK, gin.H{"message": "logged out"})
}
