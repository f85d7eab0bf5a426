package repository

import (
	"context"
	"testing"
	"time"

	"customcss_backend/platform/apperr"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	mr := miniredis.RunT(t)
	return New(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func TestGetBeforeAnySave(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Get(context.Background())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSaveThenGetRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	record := StylesRecord{
		CSS:         ".a { color: red; }",
		MinifiedCSS: ".a{color:red;}",
		UpdatedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := repo.Save(ctx, record); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.CSS != record.CSS || got.MinifiedCSS != record.MinifiedCSS {
		t.Fatalf("record mismatch: %+v", got)
	}
	if !got.UpdatedAt.Equal(record.UpdatedAt) {
		t.Fatalf("timestamp mismatch: %v", got.UpdatedAt)
	}
}

func TestSaveReplacesPreviousRecord(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, StylesRecord{CSS: "old"}); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := repo.Save(ctx, StylesRecord{CSS: "new"}); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.CSS != "new" {
		t.Fatalf("expected replacement, got %q", got.CSS)
	}
}
