// Package service orchestrates the save and publish cycle for the custom
// stylesheet.
package service

import (
	"context"
	"time"

	"customcss_backend/internal/css/minify"
	"customcss_backend/internal/css/sanitizer"
	"customcss_backend/internal/events"
	"customcss_backend/internal/publisher"
	"customcss_backend/internal/styles/repository"
	"customcss_backend/platform/apperr"
	"customcss_backend/platform/logger"
)

// Service implements the styles use cases. The sanitizer is the only
// transformation between submitted text and the persisted record; the
// configured minifier only shapes the published copy.
type Service struct {
	repo repository.Repository
	pub  publisher.Publisher
	min  minify.Minifier
	bus  events.Bus
	log  *logger.Logger
}

// New creates the styles service. A nil minifier selects the built-in one,
// so deployments substitute their own by passing an implementation here.
func New(repo repository.Repository, pub publisher.Publisher, min minify.Minifier, bus events.Bus, log *logger.Logger) *Service {
	if min == nil {
		min = minify.Default()
	}
	return &Service{repo: repo, pub: pub, min: min, bus: bus, log: log}
}

// SaveResult reports the stored record plus sanitizer feedback.
type SaveResult struct {
	Record      repository.StylesRecord
	RemovedTags []string
}

// Get returns the current record. Before the first save it returns an empty
// record rather than an error, so the editor can render a blank form.
func (s *Service) Get(ctx context.Context) (repository.StylesRecord, error) {
	record, err := s.repo.Get(ctx)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return repository.StylesRecord{}, nil
		}
		return repository.StylesRecord{}, apperr.Wrap(apperr.KindInternal, "failed to load stylesheet", err)
	}
	return record, nil
}

// Save sanitizes raw text, persists it, publishes the minified form and
// fires the styles.saved event. The record is persisted before publication,
// so a publish failure never loses the author's work; it surfaces as an
// error with the record already stored.
func (s *Service) Save(ctx context.Context, raw string) (SaveResult, error) {
	removed := sanitizer.RemovedTags(raw)
	safe := sanitizer.Sanitize(raw)

	record := repository.StylesRecord{
		CSS:         safe,
		MinifiedCSS: s.min.Minify(safe),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return SaveResult{}, apperr.Wrap(apperr.KindInternal, "failed to persist stylesheet", err)
	}

	if len(removed) > 0 {
		s.log.WithContext(ctx).Info("sanitizer removed markup", "tags", removed)
	}

	result := SaveResult{Record: record, RemovedTags: removed}
	if err := s.pub.Publish(ctx, record.MinifiedCSS); err != nil {
		return result, apperr.Wrap(apperr.KindUnavailable, "stylesheet saved but publication failed", err)
	}

	s.bus.Publish(ctx, events.StylesSaved{BaseEvent: events.NewBaseEvent(), CSS: safe})
	return result, nil
}

// Republish pushes the currently stored minified CSS to the publisher
// again, without touching the record. Used by the background worker and by
// cache-invalidation flows.
func (s *Service) Republish(ctx context.Context) error {
	record, err := s.repo.Get(ctx)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return apperr.NotFound("nothing to republish")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to load stylesheet", err)
	}
	if err := s.pub.Publish(ctx, record.MinifiedCSS); err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "republish failed", err)
	}
	return nil
}
