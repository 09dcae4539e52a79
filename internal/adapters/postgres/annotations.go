// Package postgres provides the production annotation repository backed by
// PostgreSQL via database/sql and lib/pq.
//
// Expected schema:
//
//	CREATE TABLE annotations (
//	    id          UUID PRIMARY KEY,
//	    user_id     TEXT NOT NULL,
//	    external_id TEXT NOT NULL,
//	    favorite    BOOLEAN NOT NULL DEFAULT FALSE,
//	    archived    BOOLEAN NOT NULL DEFAULT FALSE,
//	    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    UNIQUE (user_id, external_id)
//	);
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/quotelib/quotelib/internal/domain"
	"github.com/quotelib/quotelib/internal/ports"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint breach.
const uniqueViolation = "23505"

// Config holds connection settings for the annotation store.
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

// AnnotationRepository implements ports.AnnotationRepository on PostgreSQL.
type AnnotationRepository struct {
	db *sql.DB
}

// NewAnnotationRepository creates a repository over an open connection pool.
func NewAnnotationRepository(db *sql.DB) *AnnotationRepository {
	return &AnnotationRepository{db: db}
}

var _ ports.AnnotationRepository = (*AnnotationRepository)(nil)

// ListPage returns the 1-based page of the user's annotations in creation
// order. A page past the end returns an empty slice.
func (r *AnnotationRepository) ListPage(ctx context.Context, userID string, page, limit int, filter *ports.AnnotationFilter) ([]domain.Annotation, error) {
	query := `
		SELECT id, user_id, external_id, favorite, archived
		FROM annotations
		WHERE user_id = $1
	`
	args := []any{userID}
	query, args = applyFilter(query, args, filter)

	query += " ORDER BY created_at, id"
	query += " LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.NewStoreError("list annotations", err.Error())
	}
	defer func() { _ = rows.Close() }()

	annotations := []domain.Annotation{}

	for rows.Next() {
		var a domain.Annotation
		if err := rows.Scan(&a.ID, &a.UserID, &a.ExternalID, &a.Favorite, &a.Archived); err != nil {
			return nil, domain.NewStoreError("scan annotation", err.Error())
		}

		annotations = append(annotations, a)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreError("iterate annotations", err.Error())
	}

	return annotations, nil
}

// CountForUser returns the number of annotations the user owns.
func (r *AnnotationRepository) CountForUser(ctx context.Context, userID string, filter *ports.AnnotationFilter) (int, error) {
	query := `SELECT COUNT(*) FROM annotations WHERE user_id = $1`
	args := []any{userID}
	query, args = applyFilter(query, args, filter)

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, domain.NewStoreError("count annotations", err.Error())
	}

	return count, nil
}

// FindByExternalID looks up the user's annotation for a provider quote.
func (r *AnnotationRepository) FindByExternalID(ctx context.Context, userID, externalID string) (*domain.Annotation, error) {
	query := `
		SELECT id, user_id, external_id, favorite, archived
		FROM annotations
		WHERE user_id = $1 AND external_id = $2
	`

	return r.queryOne(ctx, query, externalID, userID, externalID)
}

// GetByID retrieves an annotation by local identifier, scoped to the user.
func (r *AnnotationRepository) GetByID(ctx context.Context, userID, id string) (*domain.Annotation, error) {
	query := `
		SELECT id, user_id, external_id, favorite, archived
		FROM annotations
		WHERE user_id = $1 AND id = $2
	`

	return r.queryOne(ctx, query, id, userID, id)
}

// Insert persists a new annotation. The (user_id, external_id) unique
// constraint surfaces as a conflict.
func (r *AnnotationRepository) Insert(ctx context.Context, annotation *domain.Annotation) (*domain.Annotation, error) {
	stored := *annotation
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}

	query := `
		INSERT INTO annotations (id, user_id, external_id, favorite, archived)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		stored.ID, stored.UserID, stored.ExternalID, stored.Favorite, stored.Archived)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, domain.NewConflictError("annotation", "duplicate (user, external key)")
		}

		return nil, domain.NewStoreError("insert annotation", err.Error())
	}

	return &stored, nil
}

// Update overwrites the flags of an existing annotation by local ID and user.
func (r *AnnotationRepository) Update(ctx context.Context, annotation *domain.Annotation) (*domain.Annotation, error) {
	query := `
		UPDATE annotations
		SET favorite = $1, archived = $2
		WHERE user_id = $3 AND id = $4
		RETURNING id, user_id, external_id, favorite, archived
	`

	var updated domain.Annotation

	err := r.db.QueryRowContext(ctx, query,
		annotation.Favorite, annotation.Archived, annotation.UserID, annotation.ID).
		Scan(&updated.ID, &updated.UserID, &updated.ExternalID, &updated.Favorite, &updated.Archived)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("annotation", annotation.ID)
	}

	if err != nil {
		return nil, domain.NewStoreError("update annotation", err.Error())
	}

	return &updated, nil
}

// Delete removes an annotation by local ID, scoped to the user, and returns
// the removed record.
func (r *AnnotationRepository) Delete(ctx context.Context, userID, id string) (*domain.Annotation, error) {
	query := `
		DELETE FROM annotations
		WHERE user_id = $1 AND id = $2
		RETURNING id, user_id, external_id, favorite, archived
	`

	var deleted domain.Annotation

	err := r.db.QueryRowContext(ctx, query, userID, id).
		Scan(&deleted.ID, &deleted.UserID, &deleted.ExternalID, &deleted.Favorite, &deleted.Archived)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("annotation", id)
	}

	if err != nil {
		return nil, domain.NewStoreError("delete annotation", err.Error())
	}

	return &deleted, nil
}

// Name returns the health check name for this store.
// Implements ports.HealthChecker.
func (r *AnnotationRepository) Name() string {
	return "postgres"
}

// Check verifies database connectivity. Implements ports.HealthChecker.
func (r *AnnotationRepository) Check(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// queryOne runs a single-row lookup and maps sql.ErrNoRows to not-found.
func (r *AnnotationRepository) queryOne(ctx context.Context, query, notFoundID string, args ...any) (*domain.Annotation, error) {
	var a domain.Annotation

	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&a.ID, &a.UserID, &a.ExternalID, &a.Favorite, &a.Archived)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("annotation", notFoundID)
	}

	if err != nil {
		return nil, domain.NewStoreError("get annotation", err.Error())
	}

	return &a, nil
}

// applyFilter appends optional flag predicates to a user-scoped query.
func applyFilter(query string, args []any, filter *ports.AnnotationFilter) (string, []any) {
	if filter == nil {
		return query, args
	}

	if filter.Favorite != nil {
		args = append(args, *filter.Favorite)
		query += " AND favorite = $" + strconv.Itoa(len(args))
	}

	if filter.Archived != nil {
		args = append(args, *filter.Archived)
		query += " AND archived = $" + strconv.Itoa(len(args))
	}

	return query, args
}
