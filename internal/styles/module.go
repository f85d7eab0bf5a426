// Package styles wires the stylesheet bounded context: editor API, public
// stylesheet route and the save/publish pipeline.
package styles

import (
	"customcss_backend/internal/events"
	apphttp "customcss_backend/internal/http"
	"customcss_backend/internal/publisher"
	"customcss_backend/internal/styles/handler"
	"customcss_backend/internal/styles/repository"
	"customcss_backend/internal/styles/service"
	"customcss_backend/platform/logger"
	"customcss_backend/platform/validator"

	"github.com/redis/go-redis/v9"
)

// Module bundles the styles context behind the HTTP module interface.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// New constructs the styles module with all its internal dependencies.
func New(rdb *redis.Client, pub publisher.Publisher, enqueuer handler.RepublishEnqueuer, bus events.Bus, log *logger.Logger, validate *validator.Validator) *Module {
	repo := repository.New(rdb)
	svc := service.New(repo, pub, nil, bus, log)
	return &Module{
		handler: handler.New(svc, enqueuer, log, validate),
		service: svc,
	}
}

// Name implements apphttp.Module.
func (m *Module) Name() string { return "styles" }

// Service exposes the styles service to other composition points, such as
// the background worker.
func (m *Module) Service() *service.Service { return m.service }

// RegisterRoutes mounts the admin editor endpoints and the public
// stylesheet route.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	admin := ctx.Admin.Group("/styles")
	admin.GET("", m.handler.Get)
	admin.PUT("", m.handler.Save)
	admin.POST("/republish", m.handler.Republish)

	ctx.Root.GET("/css/custom.css", m.handler.ServeCSS)
}

var _ apphttp.Module = (*Module)(nil)
