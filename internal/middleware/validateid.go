package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medvault/records-api/internal/handler"
)

// ValidateID parses a route uuid parameter before any business logic runs.
// A malformed id is indistinguishable from an absent resource, so it is 404
// rather than 400.
func ValidateID(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param(name))
		if err != nil {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("resource not found"))
			c.Abort()
			return
		}

		c.Set(routeIDPrefix+name, id)
		c.Next()
	}
}
