// Package classmanager wires the utility class registry: the public class
// listing, the admin management endpoints and the annotation sync that runs
// whenever the stylesheet is saved.
package classmanager

import (
	"context"
	"fmt"

	"customcss_backend/internal/classmanager/handler"
	"customcss_backend/internal/classmanager/repository"
	"customcss_backend/internal/classmanager/service"
	"customcss_backend/internal/events"
	apphttp "customcss_backend/internal/http"
	"customcss_backend/platform/logger"
	"customcss_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module bundles the class manager context behind the HTTP module interface.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// New constructs the class manager module and subscribes it to stylesheet
// saves so the registry tracks the annotations in the current CSS.
func New(pool *pgxpool.Pool, bus events.Bus, log *logger.Logger, validate *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	m := &Module{
		handler: handler.New(svc, validate),
		service: svc,
	}

	bus.Subscribe(events.StylesSavedEventName, events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		saved, ok := event.(events.StylesSaved)
		if !ok {
			return fmt.Errorf("unexpected event type %T for %s", event, events.StylesSavedEventName)
		}
		return svc.SyncFromCSS(ctx, saved.CSS)
	}))

	return m
}

// Name implements apphttp.Module.
func (m *Module) Name() string { return "classmanager" }

// Service exposes the class manager service to other composition points.
func (m *Module) Service() *service.Service { return m.service }

// RegisterRoutes mounts the public listing and the admin management routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Public.GET("/classes", m.handler.List)

	admin := ctx.Admin.Group("/classes")
	admin.POST("", m.handler.Create)
	admin.DELETE("/:id", m.handler.Delete)
}

var _ apphttp.Module = (*Module)(nil)
