// Package handler exposes the utility class registry over HTTP.
package handler

import (
	"net/http"
	"time"

	"customcss_backend/internal/classmanager/repository"
	"customcss_backend/internal/classmanager/service"
	"customcss_backend/internal/classmanager/transport"
	"customcss_backend/platform/httpkit"
	"customcss_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles class registry HTTP requests.
type Handler struct {
	svc      *service.Service
	validate *validator.Validator
}

// New creates a new class manager handler.
func New(svc *service.Service, validate *validator.Validator) *Handler {
	return &Handler{svc: svc, validate: validate}
}

// List returns all registered classes.
// GET /api/v1/classes
func (h *Handler) List(c *gin.Context) {
	classes, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.ListClassesResponse{Classes: make([]transport.ClassResponse, 0, len(classes))}
	for _, cls := range classes {
		resp.Classes = append(resp.Classes, toResponse(cls))
	}
	httpkit.OK(c, resp)
}

// Create registers a class by hand.
// POST /api/v1/admin/classes
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	cls, err := h.svc.Create(c.Request.Context(), req.Name, req.Description)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, toResponse(cls))
}

// Delete removes a class.
// DELETE /api/v1/admin/classes/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid class id", nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

func toResponse(cls repository.UtilityClass) transport.ClassResponse {
	return transport.ClassResponse{
		ID:          cls.ID.String(),
		Name:        cls.Name,
		Description: cls.Description,
		Source:      cls.Source,
		UpdatedAt:   cls.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
