// Package handler exposes the styles endpoints: the admin editor API and
// the public stylesheet route.
package handler

import (
	"context"
	"net/http"
	"time"

	"customcss_backend/internal/styles/service"
	"customcss_backend/internal/styles/transport"
	"customcss_backend/platform/httpkit"
	"customcss_backend/platform/logger"
	"customcss_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// RepublishEnqueuer queues a background republish task.
type RepublishEnqueuer interface {
	EnqueueStylesRepublish(ctx context.Context) error
}

// Handler handles stylesheet HTTP requests.
type Handler struct {
	svc      *service.Service
	enqueuer RepublishEnqueuer
	log      *logger.Logger
	validate *validator.Validator
}

// New creates a new styles handler. The enqueuer may be nil; republish then
// runs inline instead of through the task queue.
func New(svc *service.Service, enqueuer RepublishEnqueuer, log *logger.Logger, validate *validator.Validator) *Handler {
	return &Handler{svc: svc, enqueuer: enqueuer, log: log, validate: validate}
}

// Get returns the stored stylesheet for the admin editor.
// GET /api/v1/admin/styles
func (h *Handler) Get(c *gin.Context) {
	record, err := h.svc.Get(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toResponse(record.CSS, record.UpdatedAt))
}

// Save sanitizes and stores submitted CSS, then publishes it.
// PUT /api/v1/admin/styles
func (h *Handler) Save(c *gin.Context) {
	var req transport.SaveStylesRequest
	if err := c.ShouldBind(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "stylesheet too large", nil)
		return
	}

	result, err := h.svc.Save(c.Request.Context(), req.CSSContent)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.SaveStylesResponse{
		StylesResponse: toResponse(result.Record.CSS, result.Record.UpdatedAt),
		RemovedTags:    result.RemovedTags,
	})
}

// Republish queues a fresh publication of the stored stylesheet.
// POST /api/v1/admin/styles/republish
func (h *Handler) Republish(c *gin.Context) {
	ctx := c.Request.Context()

	if h.enqueuer != nil {
		if err := h.enqueuer.EnqueueStylesRepublish(ctx); err != nil {
			h.log.WithContext(ctx).Error("failed to enqueue republish", "error", err)
			httpkit.Error(c, http.StatusServiceUnavailable, "could not queue republish", nil)
			return
		}
		httpkit.JSON(c, http.StatusAccepted, gin.H{"status": "queued"})
		return
	}

	if err := h.svc.Republish(ctx); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"status": "published"})
}

// ServeCSS serves the stored minified stylesheet to visitors.
// GET /css/custom.css
func (h *Handler) ServeCSS(c *gin.Context) {
	record, err := h.svc.Get(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	c.Header("Content-Type", "text/css; charset=utf-8")
	c.Header("Cache-Control", "public, max-age=300")

	if !record.UpdatedAt.IsZero() {
		lastModified := record.UpdatedAt.Truncate(time.Second)
		c.Header("Last-Modified", lastModified.UTC().Format(http.TimeFormat))

		if since := c.GetHeader("If-Modified-Since"); since != "" {
			if t, parseErr := http.ParseTime(since); parseErr == nil && !lastModified.After(t) {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	c.String(http.StatusOK, record.MinifiedCSS)
}

func toResponse(css string, updatedAt time.Time) transport.StylesResponse {
	resp := transport.StylesResponse{CSS: css}
	if !updatedAt.IsZero() {
		resp.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
