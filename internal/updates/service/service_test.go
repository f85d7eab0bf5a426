package service

import (
	"context"
	"errors"
	"testing"

	"customcss_backend/internal/events"
	"customcss_backend/internal/updates/feed"
	"customcss_backend/internal/updates/repository"
	"customcss_backend/platform/apperr"
	"customcss_backend/platform/logger"
)

type fakeRepo struct {
	notice repository.Notice
	saved  bool
}

func (f *fakeRepo) Get(ctx context.Context) (repository.Notice, error) {
	if !f.saved {
		return repository.Notice{}, apperr.NotFound("no update check recorded")
	}
	return f.notice, nil
}

func (f *fakeRepo) Save(ctx context.Context, notice repository.Notice) error {
	f.notice = notice
	f.saved = true
	return nil
}

type fakeFeed struct {
	release feed.Release
	err     error
}

func (f *fakeFeed) Latest(ctx context.Context) (feed.Release, error) {
	return f.release, f.err
}

type fakeBus struct {
	events []events.Event
}

func (f *fakeBus) Publish(ctx context.Context, event events.Event) {
	f.events = append(f.events, event)
}

func (f *fakeBus) PublishSync(ctx context.Context, event events.Event) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeBus) Subscribe(eventName string, handler events.Handler) {}

func newTestService(repo *fakeRepo, fd *fakeFeed, bus *fakeBus, current string) *Service {
	return New(repo, fd, bus, logger.New("development"), current)
}

func TestCompareVersions(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0", "1.0.0", 0},
		{"v2.0.0", "2.0.0", 0},
		{"1.0.1", "1.0.0", 1},
		{"1.0.0", "1.1", -1},
		{"2.0.0", "10.0.0", -1},
		{"2.0.0-beta", "2.0.0", -1},
		{"2.0.0-alpha", "2.0.0-beta", -1},
		{"2.0.1", "2.0.0-beta", 1},
	}
	for _, tc := range cases {
		got := compareVersions(tc.a, tc.b)
		if sign(got) != tc.want {
			t.Errorf("compareVersions(%q, %q) = %d, want sign %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func TestCheckDetectsNewerVersion(t *testing.T) {
	repo := &fakeRepo{}
	bus := &fakeBus{}
	fd := &fakeFeed{release: feed.Release{Version: "2.0.0", URL: "https://example.com", Notes: "Big release"}}
	svc := newTestService(repo, fd, bus, "1.4.0")

	notice, err := svc.Check(context.Background())
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !notice.Available || notice.Latest != "2.0.0" {
		t.Fatalf("unexpected notice: %+v", notice)
	}
	if !repo.saved {
		t.Fatal("notice not persisted")
	}
	if len(bus.events) != 1 || bus.events[0].EventName() != "updates.available" {
		t.Fatalf("expected updates.available event, got %v", bus.events)
	}
}

func TestCheckUpToDate(t *testing.T) {
	repo := &fakeRepo{}
	bus := &fakeBus{}
	fd := &fakeFeed{release: feed.Release{Version: "1.4.0"}}
	svc := newTestService(repo, fd, bus, "1.4.0")

	notice, err := svc.Check(context.Background())
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if notice.Available {
		t.Fatalf("expected no update, got %+v", notice)
	}
	if len(bus.events) != 0 {
		t.Fatal("no event expected when up to date")
	}
}

func TestCheckEventFiresOncePerVersion(t *testing.T) {
	repo := &fakeRepo{}
	bus := &fakeBus{}
	fd := &fakeFeed{release: feed.Release{Version: "2.0.0"}}
	svc := newTestService(repo, fd, bus, "1.0.0")

	if _, err := svc.Check(context.Background()); err != nil {
		t.Fatalf("first check failed: %v", err)
	}
	if _, err := svc.Check(context.Background()); err != nil {
		t.Fatalf("second check failed: %v", err)
	}
	if len(bus.events) != 1 {
		t.Fatalf("expected a single event for a repeated version, got %d", len(bus.events))
	}
}

func TestCheckFeedFailure(t *testing.T) {
	repo := &fakeRepo{}
	fd := &fakeFeed{err: errors.New("connection refused")}
	svc := newTestService(repo, fd, &fakeBus{}, "1.0.0")

	_, err := svc.Check(context.Background())
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
	if repo.saved {
		t.Fatal("failed check must not overwrite the stored notice")
	}
}

func TestDismissSilencesCurrentVersionOnly(t *testing.T) {
	repo := &fakeRepo{}
	bus := &fakeBus{}
	fd := &fakeFeed{release: feed.Release{Version: "2.0.0"}}
	svc := newTestService(repo, fd, bus, "1.0.0")

	if _, err := svc.Check(context.Background()); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	notice, err := svc.Dismiss(context.Background())
	if err != nil {
		t.Fatalf("dismiss failed: %v", err)
	}
	if notice.DismissedFor != "2.0.0" {
		t.Fatalf("expected dismissal for 2.0.0, got %q", notice.DismissedFor)
	}

	// Same version again: dismissal sticks.
	notice, err = svc.Check(context.Background())
	if err != nil {
		t.Fatalf("recheck failed: %v", err)
	}
	if notice.DismissedFor != "2.0.0" {
		t.Fatalf("dismissal lost on recheck: %+v", notice)
	}

	// Newer version clears the dismissal.
	fd.release = feed.Release{Version: "2.1.0"}
	notice, err = svc.Check(context.Background())
	if err != nil {
		t.Fatalf("recheck failed: %v", err)
	}
	if notice.DismissedFor != "" {
		t.Fatalf("newer version must clear the dismissal: %+v", notice)
	}
}

func TestDismissWithoutNotice(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeFeed{}, &fakeBus{}, "1.0.0")

	_, err := svc.Dismiss(context.Background())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
