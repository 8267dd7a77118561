// Package http provides HTTP server infrastructure including the Module interface
// that all domain modules must implement for route registration.
package http

import (
	"homely_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module represents a bounded context that can register its HTTP routes.
type Module interface {
	// Name returns the module's identifier for logging purposes.
	Name() string
	// RegisterRoutes mounts the module's routes on the provided router groups.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext provides shared dependencies for module route registration.
type RouterContext struct {
	// Engine is the root Gin engine for modules that need engine-level access.
	Engine *gin.Engine
	// V1 is the public /api/v1 route group.
	V1 *gin.RouterGroup
	// Admin is the /api/v1/admin group, guarded by an admin token.
	Admin *gin.RouterGroup
	// PublicRateLimiter throttles public write endpoints such as lead forms.
	PublicRateLimiter *httpkit.IPRateLimiter
	// AssistantRateLimiter throttles endpoints that call the model API.
	AssistantRateLimiter *httpkit.AssistantRateLimiter
}
