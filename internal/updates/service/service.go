// Package service implements the update checker use cases.
package service

import (
	"context"
	"time"

	"customcss_backend/internal/events"
	"customcss_backend/internal/updates/feed"
	"customcss_backend/internal/updates/repository"
	"customcss_backend/platform/apperr"
	"customcss_backend/platform/logger"
)

// FeedClient fetches the current release from the feed.
type FeedClient interface {
	Latest(ctx context.Context) (feed.Release, error)
}

// Service checks the release feed and maintains the persisted notice.
type Service struct {
	repo           repository.Repository
	feed           FeedClient
	bus            events.Bus
	log            *logger.Logger
	currentVersion string
}

// New creates the updates service. currentVersion is the running
// application version the feed is compared against.
func New(repo repository.Repository, feedClient FeedClient, bus events.Bus, log *logger.Logger, currentVersion string) *Service {
	return &Service{
		repo:           repo,
		feed:           feedClient,
		bus:            bus,
		log:            log,
		currentVersion: currentVersion,
	}
}

// Status returns the stored notice. Before the first check it returns a
// zero notice rather than an error.
func (s *Service) Status(ctx context.Context) (repository.Notice, error) {
	notice, err := s.repo.Get(ctx)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return repository.Notice{}, nil
		}
		return repository.Notice{}, apperr.Wrap(apperr.KindInternal, "failed to load update notice", err)
	}
	return notice, nil
}

// Check fetches the release feed, compares against the running version and
// stores the resulting notice. A dismissal recorded for an older version is
// cleared as soon as a newer one appears. The updates.available event fires
// only the first time a given version is seen.
func (s *Service) Check(ctx context.Context) (repository.Notice, error) {
	release, err := s.feed.Latest(ctx)
	if err != nil {
		return repository.Notice{}, apperr.Wrap(apperr.KindUnavailable, "update check failed", err)
	}

	previous, err := s.repo.Get(ctx)
	if err != nil && !apperr.Is(err, apperr.KindNotFound) {
		return repository.Notice{}, apperr.Wrap(apperr.KindInternal, "failed to load update notice", err)
	}

	notice := repository.Notice{
		Available: compareVersions(release.Version, s.currentVersion) > 0,
		Latest:    release.Version,
		URL:       release.URL,
		Notes:     release.Notes,
		CheckedAt: time.Now().UTC(),
	}
	if previous.DismissedFor != "" && compareVersions(release.Version, previous.DismissedFor) <= 0 {
		notice.DismissedFor = previous.DismissedFor
	}

	if err := s.repo.Save(ctx, notice); err != nil {
		return repository.Notice{}, apperr.Wrap(apperr.KindInternal, "failed to store update notice", err)
	}

	if notice.Available && previous.Latest != notice.Latest {
		s.log.WithContext(ctx).Info("update available",
			"current", s.currentVersion, "latest", notice.Latest)
		s.bus.Publish(ctx, events.UpdateAvailable{
			BaseEvent:      events.NewBaseEvent(),
			CurrentVersion: s.currentVersion,
			LatestVersion:  notice.Latest,
			ReleaseURL:     notice.URL,
			Notes:          notice.Notes,
		})
	}

	return notice, nil
}

// Dismiss silences the notice for the currently advertised version. The
// next newer version brings it back.
func (s *Service) Dismiss(ctx context.Context) (repository.Notice, error) {
	notice, err := s.repo.Get(ctx)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return repository.Notice{}, apperr.NotFound("no update notice to dismiss")
		}
		return repository.Notice{}, apperr.Wrap(apperr.KindInternal, "failed to load update notice", err)
	}

	notice.DismissedFor = notice.Latest
	if err := s.repo.Save(ctx, notice); err != nil {
		return repository.Notice{}, apperr.Wrap(apperr.KindInternal, "failed to store update notice", err)
	}
	return notice, nil
}
