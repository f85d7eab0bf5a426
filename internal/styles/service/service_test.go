package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"customcss_backend/internal/events"
	"customcss_backend/internal/styles/repository"
	"customcss_backend/platform/apperr"
	"customcss_backend/platform/logger"
)

type fakeRepo struct {
	record repository.StylesRecord
	saved  bool
	getErr error
}

func (f *fakeRepo) Get(ctx context.Context) (repository.StylesRecord, error) {
	if f.getErr != nil {
		return repository.StylesRecord{}, f.getErr
	}
	if !f.saved {
		return repository.StylesRecord{}, apperr.NotFound("no stylesheet saved")
	}
	return f.record, nil
}

func (f *fakeRepo) Save(ctx context.Context, record repository.StylesRecord) error {
	f.record = record
	f.saved = true
	return nil
}

type fakePublisher struct {
	published []string
	err       error
}

func (f *fakePublisher) Publish(ctx context.Context, css string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, css)
	return nil
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

func newTestService(repo *fakeRepo, pub *fakePublisher, bus *fakeBus) *Service {
	return New(repo, pub, nil, bus, logger.New("development"))
}

func TestGetBeforeFirstSaveReturnsEmptyRecord(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakePublisher{}, &fakeBus{})

	record, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.CSS != "" {
		t.Fatalf("expected empty record, got %+v", record)
	}
}

func TestSaveSanitizesPersistsPublishesAndNotifies(t *testing.T) {
	repo := &fakeRepo{}
	pub := &fakePublisher{}
	bus := &fakeBus{}
	svc := newTestService(repo, pub, bus)

	raw := ".a { color: red; }<script>alert(1)</script>"
	result, err := svc.Save(context.Background(), raw)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if strings.Contains(result.Record.CSS, "<script") {
		t.Fatalf("stored CSS not sanitized: %q", result.Record.CSS)
	}
	if len(result.RemovedTags) != 1 || result.RemovedTags[0] != "script" {
		t.Fatalf("expected removed tag feedback, got %v", result.RemovedTags)
	}
	if !repo.saved {
		t.Fatal("record not persisted")
	}
	if len(pub.published) != 1 {
		t.Fatalf("expected one publication, got %d", len(pub.published))
	}
	if pub.published[0] != result.Record.MinifiedCSS {
		t.Fatal("published text is not the minified record")
	}
	if len(bus.events) != 1 || bus.events[0].EventName() != "styles.saved" {
		t.Fatalf("expected styles.saved event, got %v", bus.events)
	}
	saved := bus.events[0].(events.StylesSaved)
	if saved.CSS != result.Record.CSS {
		t.Fatal("event must carry the sanitized, non-minified CSS")
	}
}

func TestSaveMinifiesPublishedCopyOnly(t *testing.T) {
	repo := &fakeRepo{}
	pub := &fakePublisher{}
	svc := newTestService(repo, pub, &fakeBus{})

	result, err := svc.Save(context.Background(), "/* note */\n.a {\n  color: red;\n}")
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.Contains(result.Record.CSS, "/* note */") {
		t.Fatalf("stored CSS must keep comments: %q", result.Record.CSS)
	}
	if strings.Contains(result.Record.MinifiedCSS, "/*") {
		t.Fatalf("minified CSS must drop comments: %q", result.Record.MinifiedCSS)
	}
}

func TestSavePublishFailureKeepsRecord(t *testing.T) {
	repo := &fakeRepo{}
	pub := &fakePublisher{err: errors.New("storage down")}
	bus := &fakeBus{}
	svc := newTestService(repo, pub, bus)

	_, err := svc.Save(context.Background(), ".a{}")
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
	if !repo.saved {
		t.Fatal("record must be persisted even when publication fails")
	}
	if len(bus.events) != 0 {
		t.Fatal("saved event must not fire when publication fails")
	}
}

func TestRepublishWithoutRecord(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakePublisher{}, &fakeBus{})

	err := svc.Republish(context.Background())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRepublishPushesStoredMinifiedCSS(t *testing.T) {
	repo := &fakeRepo{
		record: repository.StylesRecord{CSS: ".a {}", MinifiedCSS: ".a{}"},
		saved:  true,
	}
	pub := &fakePublisher{}
	svc := newTestService(repo, pub, &fakeBus{})

	if err := svc.Republish(context.Background()); err != nil {
		t.Fatalf("republish failed: %v", err)
	}
	if len(pub.published) != 1 || pub.published[0] != ".a{}" {
		t.Fatalf("unexpected publications: %v", pub.published)
	}
}
