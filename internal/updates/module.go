// Package updates wires the update checker: the release feed client, the
// persisted notice and the admin endpoints around them.
package updates

import (
	"customcss_backend/internal/events"
	apphttp "customcss_backend/internal/http"
	"customcss_backend/internal/updates/feed"
	"customcss_backend/internal/updates/handler"
	"customcss_backend/internal/updates/repository"
	"customcss_backend/internal/updates/service"
	"customcss_backend/platform/config"
	"customcss_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

// Module bundles the updates context behind the HTTP module interface.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// New constructs the updates module.
func New(rdb *redis.Client, cfg config.UpdatesConfig, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(rdb)
	feedClient := feed.New(cfg.GetUpdateFeedURL(), nil)
	svc := service.New(repo, feedClient, bus, log, cfg.GetAppVersion())
	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

// Name implements apphttp.Module.
func (m *Module) Name() string { return "updates" }

// Service exposes the updates service to other composition points, such as
// the background worker.
func (m *Module) Service() *service.Service { return m.service }

// RegisterRoutes mounts the admin update endpoints.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	admin := ctx.Admin.Group("/updates")
	admin.GET("", m.handler.Status)
	admin.POST("/check", m.handler.Check)
	admin.POST("/dismiss", m.handler.Dismiss)
}

var _ apphttp.Module = (*Module)(nil)
