// Package repository persists the update notice in the key-value store.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"customcss_backend/platform/apperr"

	"github.com/redis/go-redis/v9"
)

const noticeKey = "customcss:update_notice"

// Notice is the persisted result of the most recent update check.
type Notice struct {
	Available bool      `json:"available"`
	Latest    string    `json:"latest"`
	URL       string    `json:"url"`
	Notes     string    `json:"notes"`
	CheckedAt time.Time `json:"checked_at"`
	// DismissedFor holds the version the admin dismissed; the notice stays
	// quiet until a newer version appears.
	DismissedFor string `json:"dismissed_for,omitempty"`
}

// Repository is the persistence surface used by the updates service.
type Repository interface {
	Get(ctx context.Context) (Notice, error)
	Save(ctx context.Context, notice Notice) error
}

// Repo implements Repository on Redis.
type Repo struct {
	rdb *redis.Client
}

// New creates a new update notice repository.
func New(rdb *redis.Client) *Repo {
	return &Repo{rdb: rdb}
}

var _ Repository = (*Repo)(nil)

// Get retrieves the stored notice. Returns apperr.KindNotFound before the
// first check.
func (r *Repo) Get(ctx context.Context) (Notice, error) {
	data, err := r.rdb.Get(ctx, noticeKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Notice{}, apperr.NotFound("no update check recorded")
		}
		return Notice{}, fmt.Errorf("get update notice: %w", err)
	}

	var notice Notice
	if err := json.Unmarshal(data, &notice); err != nil {
		return Notice{}, fmt.Errorf("decode update notice: %w", err)
	}
	return notice, nil
}

// Save stores the notice, replacing any previous one.
func (r *Repo) Save(ctx context.Context, notice Notice) error {
	data, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("encode update notice: %w", err)
	}
	if err := r.rdb.Set(ctx, noticeKey, data, 0).Err(); err != nil {
		return fmt.Errorf("save update notice: %w", err)
	}
	return nil
}
