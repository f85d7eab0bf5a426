// Package http provides HTTP server infrastructure including module
// registration.
package http

import (
	"context"

	"customcss_backend/internal/events"
	"customcss_backend/platform/config"
	"customcss_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
}

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// RouterContext groups the route trees a module can mount handlers on.
type RouterContext struct {
	// Public is the unauthenticated /api/v1 group.
	Public *gin.RouterGroup
	// Admin is the /api/v1/admin group behind JWT + admin role.
	Admin *gin.RouterGroup
	// Root is the engine root, for non-API routes such as the published
	// stylesheet.
	Root *gin.RouterGroup
}

// App holds the fully initialized application dependencies. It is populated
// by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration (HTTP and JWT settings only).
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health lists dependencies probed by the readiness endpoint.
	Health []HealthChecker
	// EventBus is the domain event bus for cross-module communication.
	EventBus events.Bus
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}

// Module is implemented by each bounded context that exposes HTTP routes.
type Module interface {
	// Name returns the module identifier, used in logs.
	Name() string
	// RegisterRoutes mounts the module's routes.
	RegisterRoutes(ctx *RouterContext)
}
