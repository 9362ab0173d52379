package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/floorops/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// actorGate grants a capability to a fixed set of actors
type actorGate struct {
	allowed map[string]bool
}

func (g *actorGate) Allows(_ context.Context, actor string, _ string) bool {
	return g.allowed[actor]
}

func TestRequireCapability(t *testing.T) {
	gate := &actorGate{allowed: map[string]bool{"manager": true}}

	router := gin.New()
	router.Use(RequireCapability(gate, "orders.void", zap.NewNop()))
	router.POST("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	t.Run("allows permitted actor", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/test", nil)
		req.Header.Set(ActorHeader, "manager")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("denies unknown actor with 403", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/test", nil)
		req.Header.Set(ActorHeader, "trainee")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "orders.void")
	})

	t.Run("denies missing actor header", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestMutationGate(t *testing.T) {
	gate := &actorGate{allowed: map[string]bool{"manager": true}}

	router := gin.New()
	router.Use(MutationGate(gate, "inventory.adjust", zap.NewNop()))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.POST("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	t.Run("reads pass without actor", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("mutations require the capability", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("mutations pass for permitted actor", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/test", nil)
		req.Header.Set(ActorHeader, "manager")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAllowAllGate(t *testing.T) {
	router := gin.New()
	router.Use(RequireCapability(shared.AllowAllGate{}, "anything", nil))
	router.POST("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest("POST", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
