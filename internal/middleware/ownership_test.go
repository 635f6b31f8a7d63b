package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/medvault/records-api/internal/model"
	apperrors "github.com/medvault/records-api/pkg/errors"
)

func ownershipRequest(principal *model.Principal, id uuid.UUID, gate gin.HandlerFunc) int {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/things/:id", func(c *gin.Context) {
		c.Set(ContextPrincipal, principal)
	}, ValidateID("id"), gate, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/things/"+id.String(), nil)
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRequireOwner(t *testing.T) {
	owner := uuid.New()
	resource := uuid.New()

	load := func(_ context.Context, id uuid.UUID) (uuid.UUID, bool, error) {
		if id != resource {
			return uuid.Nil, false, apperrors.NotFound("thing")
		}
		return owner, true, nil
	}

	gate := RequireOwner(OwnershipCheck{
		Bypass: []model.AccessLevel{model.LevelAdmin},
	}, load)

	t.Run("owner passes", func(t *testing.T) {
		p := &model.Principal{AccountID: owner, Level: model.LevelUser}
		assert.Equal(t, http.StatusOK, ownershipRequest(p, resource, gate))
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		p := &model.Principal{AccountID: uuid.New(), Level: model.LevelUser}
		assert.Equal(t, http.StatusForbidden, ownershipRequest(p, resource, gate))
	})

	t.Run("bypass level skips check", func(t *testing.T) {
		p := &model.Principal{AccountID: uuid.New(), Level: model.LevelAdmin}
		assert.Equal(t, http.StatusOK, ownershipRequest(p, resource, gate))
	})

	t.Run("missing document is 404", func(t *testing.T) {
		p := &model.Principal{AccountID: owner, Level: model.LevelUser}
		assert.Equal(t, http.StatusNotFound, ownershipRequest(p, uuid.New(), gate))
	})
}

func TestRequireOwnerUnassignedPolicy(t *testing.T) {
	load := func(_ context.Context, _ uuid.UUID) (uuid.UUID, bool, error) {
		return uuid.Nil, false, nil
	}
	p := &model.Principal{AccountID: uuid.New(), Level: model.LevelUser}

	allow := RequireOwner(OwnershipCheck{Unassigned: AllowUnassigned}, load)
	assert.Equal(t, http.StatusOK, ownershipRequest(p, uuid.New(), allow))

	deny := RequireOwner(OwnershipCheck{Unassigned: DenyUnassigned}, load)
	assert.Equal(t, http.StatusForbidden, ownershipRequest(p, uuid.New(), deny))
}

func TestRequireMember(t *testing.T) {
	member := uuid.New()

	gate := RequireMember(OwnershipCheck{
		Bypass:     []model.AccessLevel{model.LevelHospital, model.LevelAdmin},
		Unassigned: DenyUnassigned,
	}, SelfResolver, func(p *model.Principal) model.UUIDList { return p.ProfileIDs })

	t.Run("member passes", func(t *testing.T) {
		p := &model.Principal{Level: model.LevelUser, ProfileIDs: model.UUIDList{member}}
		assert.Equal(t, http.StatusOK, ownershipRequest(p, member, gate))
	})

	t.Run("non-member forbidden", func(t *testing.T) {
		p := &model.Principal{Level: model.LevelUser, ProfileIDs: model.UUIDList{uuid.New()}}
		assert.Equal(t, http.StatusForbidden, ownershipRequest(p, member, gate))
	})

	t.Run("clinician bypasses", func(t *testing.T) {
		p := &model.Principal{Level: model.LevelHospital}
		assert.Equal(t, http.StatusOK, ownershipRequest(p, member, gate))
	})
}

func TestValidateIDRejectsMalformed(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/things/:id", ValidateID("id"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/not-a-uuid", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
