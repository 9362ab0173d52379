package middleware

import (
	"net/http"

	"github.com/floorops/backend/internal/domain/shared"
	"github.com/floorops/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ActorHeader names the header carrying the acting staff member
const ActorHeader = "X-Actor"

// RequireCapability gates a route group behind a capability check. The actor
// is taken from the X-Actor header; who maps to what is the gate
// implementation's concern.
func RequireCapability(gate shared.PermissionGate, capability string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader(ActorHeader)
		if !gate.Allows(c.Request.Context(), actor, capability) {
			denyCapability(c, actor, capability, logger)
			return
		}
		c.Next()
	}
}

// MutationGate applies a capability check to mutating methods only; reads
// pass through ungated.
func MutationGate(gate shared.PermissionGate, capability string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		actor := c.GetHeader(ActorHeader)
		if !gate.Allows(c.Request.Context(), actor, capability) {
			denyCapability(c, actor, capability, logger)
			return
		}
		c.Next()
	}
}

func denyCapability(c *gin.Context, actor, capability string, logger *zap.Logger) {
	if logger != nil {
		logger.Warn("capability denied",
			zap.String("actor", actor),
			zap.String("capability", capability),
			zap.String("path", c.Request.URL.Path))
	}
	c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeForbidden,
		"Operation requires the "+capability+" capability",
		GetRequestID(c),
	))
}
