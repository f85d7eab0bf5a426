// Package handler exposes the update checker over HTTP.
package handler

import (
	"time"

	"customcss_backend/internal/updates/repository"
	"customcss_backend/internal/updates/service"
	"customcss_backend/internal/updates/transport"
	"customcss_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles update checker HTTP requests.
type Handler struct {
	svc *service.Service
}

// New creates a new updates handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Status returns the stored update notice.
// GET /api/v1/admin/updates
func (h *Handler) Status(c *gin.Context) {
	notice, err := h.svc.Status(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toResponse(notice))
}

// Check runs an update check against the release feed right now.
// POST /api/v1/admin/updates/check
func (h *Handler) Check(c *gin.Context) {
	notice, err := h.svc.Check(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toResponse(notice))
}

// Dismiss silences the notice for the advertised version.
// POST /api/v1/admin/updates/dismiss
func (h *Handler) Dismiss(c *gin.Context) {
	notice, err := h.svc.Dismiss(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toResponse(notice))
}

func toResponse(notice repository.Notice) transport.UpdateNoticeResponse {
	resp := transport.UpdateNoticeResponse{
		Available:    notice.Available,
		Latest:       notice.Latest,
		URL:          notice.URL,
		Notes:        notice.Notes,
		Dismissed:    notice.DismissedFor != "" && notice.DismissedFor == notice.Latest,
		DismissedFor: notice.DismissedFor,
	}
	if !notice.CheckedAt.IsZero() {
		resp.CheckedAt = notice.CheckedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
