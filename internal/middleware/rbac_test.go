package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/medvault/records-api/internal/model"
)

func levelRequest(t *testing.T, level model.AccessLevel, gate gin.HandlerFunc) int {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/guarded", func(c *gin.Context) {
		c.Set(ContextPrincipal, &model.Principal{Level: level})
	}, gate, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRequireLevelBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		level model.AccessLevel
		gate  gin.HandlerFunc
		want  int
	}{
		{"user passes user gate", model.LevelUser, RequireLevel(model.LevelUser), http.StatusOK},
		{"user fails clinician gate", model.LevelUser, RequireClinician(), http.StatusForbidden},
		{"hospital passes clinician gate at boundary", model.LevelHospital, RequireClinician(), http.StatusOK},
		{"hospital fails admin gate", model.LevelHospital, RequireAdmin(), http.StatusForbidden},
		{"admin passes admin gate at boundary", model.LevelAdmin, RequireAdmin(), http.StatusOK},
		{"admin passes lower gates", model.LevelAdmin, RequireClinician(), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, levelRequest(t, tt.level, tt.gate))
		})
	}
}

func TestRequireLevelWithoutPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/guarded", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
