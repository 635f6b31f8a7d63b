package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medvault/records-api/internal/model"
)

const (
	ContextPrincipal = "principal"
	ContextTokenID   = "token_id"
	routeIDPrefix    = "route_id:"
)

// Principal returns the authenticated caller attached by Authenticate.
func Principal(c *gin.Context) (*model.Principal, bool) {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return nil, false
	}
	p, ok := v.(*model.Principal)
	return p, ok
}

// RouteID returns a route parameter previously parsed by ValidateID.
func RouteID(c *gin.Context, name string) uuid.UUID {
	v, ok := c.Get(routeIDPrefix + name)
	if !ok {
		return uuid.Nil
	}
	id, _ := v.(uuid.UUID)
	return id
}
