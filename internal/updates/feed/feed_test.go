package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLatestParsesFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"version":"2.1.0","url":"https://example.com/release","notes":"Fixes","published_at":"2026-05-01T00:00:00Z"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, srv.Client())
	release, err := client.Latest(context.Background())
	if err != nil {
		t.Fatalf("latest failed: %v", err)
	}
	if release.Version != "2.1.0" {
		t.Fatalf("unexpected version: %q", release.Version)
	}
	if release.URL != "https://example.com/release" {
		t.Fatalf("unexpected url: %q", release.URL)
	}
}

func TestLatestRejectsNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := New(srv.URL, srv.Client())
	if _, err := client.Latest(context.Background()); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestLatestRejectsMissingVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"url":"https://example.com"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, srv.Client())
	if _, err := client.Latest(context.Background()); err == nil {
		t.Fatal("expected error for feed entry without version")
	}
}
