package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medvault/records-api/internal/handler"
	"github.com/medvault/records-api/internal/model"
)

// RequireLevel gates a route on a minimum access level. Equality at the
// boundary passes; higher levels always satisfy lower gates.
func RequireLevel(min model.AccessLevel) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := Principal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("authentication required"))
			c.Abort()
			return
		}

		if !principal.Level.AtLeast(min) {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("insufficient privileges"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireClinician excludes user-tier callers.
func RequireClinician() gin.HandlerFunc {
	return RequireLevel(model.LevelHospital)
}

// RequireAdmin restricts a route to admin-tier callers.
func RequireAdmin() gin.HandlerFunc {
	return RequireLevel(model.LevelAdmin)
}
