// Package service implements the utility class registry use cases.
package service

import (
	"context"

	"customcss_backend/internal/classmanager/repository"
	"customcss_backend/internal/css/annotations"
	"customcss_backend/platform/apperr"
	"customcss_backend/platform/logger"

	"github.com/google/uuid"
)

// Service manages the utility class registry.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates the class manager service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// List returns all registered classes.
func (s *Service) List(ctx context.Context) ([]repository.UtilityClass, error) {
	classes, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list classes", err)
	}
	return classes, nil
}

// Create registers a class by hand.
func (s *Service) Create(ctx context.Context, name, description string) (repository.UtilityClass, error) {
	return s.repo.Create(ctx, name, description, repository.SourceManual)
}

// Delete removes a class by id.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// SyncFromCSS extracts @class-manager annotations from the stylesheet and
// reconciles the annotation-sourced rows against them. When the stylesheet
// repeats a name, the last annotation wins.
func (s *Service) SyncFromCSS(ctx context.Context, css string) error {
	records := annotations.Extract(css)

	byName := make(map[string]int, len(records))
	deduped := make([]repository.AnnotatedClass, 0, len(records))
	for _, rec := range records {
		cls := repository.AnnotatedClass{Name: rec.Name, Description: rec.Description}
		if idx, seen := byName[rec.Name]; seen {
			deduped[idx] = cls
			continue
		}
		byName[rec.Name] = len(deduped)
		deduped = append(deduped, cls)
	}

	if err := s.repo.ReplaceAnnotated(ctx, deduped); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to sync annotated classes", err)
	}
	s.log.WithContext(ctx).Info("synced annotated classes", "count", len(deduped))
	return nil
}
