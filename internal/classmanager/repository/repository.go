// Package repository persists the utility class registry in Postgres.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"customcss_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Class sources. Annotation rows are owned by the stylesheet sync and get
// replaced on every save; manual rows are only touched through the admin API.
const (
	SourceAnnotation = "annotation"
	SourceManual     = "manual"
)

// UtilityClass is a registered CSS utility class.
type UtilityClass struct {
	ID          uuid.UUID
	Name        string
	Description string
	Source      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AnnotatedClass is the name/description pair extracted from stylesheet
// annotations, before it is attributed a source and identity.
type AnnotatedClass struct {
	Name        string
	Description string
}

// Repository is the persistence surface used by the class manager service.
type Repository interface {
	List(ctx context.Context) ([]UtilityClass, error)
	Create(ctx context.Context, name, description, source string) (UtilityClass, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ReplaceAnnotated(ctx context.Context, classes []AnnotatedClass) error
}

// Repo implements Repository on a pgx connection pool.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new class repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// List returns all registered classes ordered by name.
func (r *Repo) List(ctx context.Context) ([]UtilityClass, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, source, created_at, updated_at
		FROM utility_classes
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	defer rows.Close()

	var classes []UtilityClass
	for rows.Next() {
		var cls UtilityClass
		if err := rows.Scan(&cls.ID, &cls.Name, &cls.Description, &cls.Source, &cls.CreatedAt, &cls.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan class: %w", err)
		}
		classes = append(classes, cls)
	}
	return classes, rows.Err()
}

// Create inserts a class. A duplicate name maps to apperr.KindConflict.
func (r *Repo) Create(ctx context.Context, name, description, source string) (UtilityClass, error) {
	var cls UtilityClass
	err := r.pool.QueryRow(ctx, `
		INSERT INTO utility_classes (name, description, source)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, source, created_at, updated_at`,
		name, description, source,
	).Scan(&cls.ID, &cls.Name, &cls.Description, &cls.Source, &cls.CreatedAt, &cls.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return UtilityClass{}, apperr.Conflict("a class with this name already exists")
		}
		return UtilityClass{}, fmt.Errorf("create class: %w", err)
	}
	return cls, nil
}

// Delete removes a class by id.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM utility_classes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete class: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("class not found")
	}
	return nil
}

// ReplaceAnnotated reconciles annotation-sourced rows with the set extracted
// from the current stylesheet. Manual rows always survive; an annotation
// upsert never overwrites a manual row's description.
func (r *Repo) ReplaceAnnotated(ctx context.Context, classes []AnnotatedClass) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin annotation sync: %w", err)
	}
	defer tx.Rollback(ctx)

	names := make([]string, 0, len(classes))
	for _, cls := range classes {
		names = append(names, cls.Name)
		_, err := tx.Exec(ctx, `
			INSERT INTO utility_classes (name, description, source)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO UPDATE
			SET description = EXCLUDED.description, updated_at = now()
			WHERE utility_classes.source = $3`,
			cls.Name, cls.Description, SourceAnnotation)
		if err != nil {
			return fmt.Errorf("upsert annotated class %q: %w", cls.Name, err)
		}
	}

	_, err = tx.Exec(ctx, `
		DELETE FROM utility_classes
		WHERE source = $1 AND NOT (name = ANY($2))`,
		SourceAnnotation, names)
	if err != nil {
		return fmt.Errorf("prune stale annotated classes: %w", err)
	}

	return tx.Commit(ctx)
}
