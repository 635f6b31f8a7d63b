package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/medvault/records-api/internal/handler"
	"github.com/medvault/records-api/internal/model"
	apperrors "github.com/medvault/records-api/pkg/errors"
)

// Authenticator resolves a bearer credential to a principal. Verification
// runs per request; nothing is cached.
type Authenticator interface {
	VerifyCredential(ctx context.Context, credential string) (*model.Principal, string, error)
}

type AuthMiddleware struct {
	authSvc Authenticator
}

func NewAuthMiddleware(authSvc Authenticator) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// Authenticate verifies the bearer credential and sets the principal in
// context. Missing or malformed headers are 401; an unknown subject is 404.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid authorization format"))
			c.Abort()
			return
		}

		principal, tokenID, err := m.authSvc.VerifyCredential(c.Request.Context(), parts[1])
		if err != nil {
			appErr := apperrors.From(err)
			c.JSON(appErr.StatusCode(), handler.NewErrorResponse(appErr.Message))
			c.Abort()
			return
		}

		c.Set(ContextPrincipal, principal)
		c.Set(ContextTokenID, tokenID)
		c.Next()
	}
}
