// Package repository persists the stylesheet configuration record in the
// key-value store.
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

// stylesKey is the single configuration record for the plugin.
const stylesKey = "customcss:styles"

const stylesNotFoundMessage = "no stylesheet saved"

// StylesRecord is the persisted configuration record. CSS holds the
// sanitized, non-minified text as authored; MinifiedCSS mirrors the
// published static file.
type StylesRecord struct {
	CSS         string    `json:"css"`
	MinifiedCSS string    `json:"minified_css"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Repository is the persistence surface used by the styles service.
type Repository interface {
	Get(ctx context.Context) (StylesRecord, error)
	Save(ctx context.Context, record StylesRecord) error
}

// Repo implements Repository on Redis.
type Repo struct {
	rdb *redis.Client
}

// New creates a new styles repository.
func New(rdb *redis.Client) *Repo {
	return &Repo{rdb: rdb}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Get retrieves the stored record. Returns apperr.KindNotFound when nothing
// has been saved yet.
func (r *Repo) Get(ctx context.Context) (StylesRecord, error) {
	data, err := r.rdb.Get(ctx, stylesKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return StylesRecord{}, apperr.NotFound(stylesNotFoundMessage)
		}
		return StylesRecord{}, fmt.Errorf("get styles record: %w", err)
	}

	var record StylesRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return StylesRecord{}, fmt.Errorf("decode styles record: %w", err)
	}
	return record, nil
}

// Save stores the record, replacing any previous one.
func (r *Repo) Save(ctx context.Context, record StylesRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode styles record: %w", err)
	}
	if err := r.rdb.Set(ctx, stylesKey, data, 0).Err(); err != nil {
		return fmt.Errorf("save styles record: %w", err)
	}
	return nil
}
