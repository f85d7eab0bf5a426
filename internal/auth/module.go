// Package auth wires administrator authentication.
package auth

import (
	"customcss_backend/internal/auth/handler"
	"customcss_backend/internal/auth/service"
	apphttp "customcss_backend/internal/http"
	"customcss_backend/platform/httpkit"
	"customcss_backend/platform/logger"
	"customcss_backend/platform/validator"

	"golang.org/x/time/rate"
)

// Module bundles the auth context behind the HTTP module interface.
type Module struct {
	handler *handler.Handler
	limiter *httpkit.IPRateLimiter
}

// New constructs the auth module. Login gets its own tight per-IP rate
// limit to slow down password guessing.
func New(cfg service.Config, log *logger.Logger, validate *validator.Validator) *Module {
	svc := service.New(cfg, log)
	return &Module{
		handler: handler.New(svc, validate),
		limiter: httpkit.NewIPRateLimiter(rate.Limit(1), 5, log),
	}
}

// Name implements apphttp.Module.
func (m *Module) Name() string { return "auth" }

// RegisterRoutes mounts the login endpoint.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Public.POST("/auth/login", m.limiter.RateLimit(), m.handler.Login)
}

var _ apphttp.Module = (*Module)(nil)
