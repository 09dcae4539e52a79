// Package memory provides an in-memory annotation repository.
// It backs the local profile and tests; the postgres adapter is the
// production implementation.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/quotelib/quotelib/internal/domain"
	"github.com/quotelib/quotelib/internal/ports"
)

// AnnotationRepository is a thread-safe in-memory ports.AnnotationRepository.
// Records keep insertion order, which gives the stable listing order the
// pagination accumulator relies on.
type AnnotationRepository struct {
	mu      sync.RWMutex
	records []domain.Annotation
}

// NewAnnotationRepository creates an empty in-memory repository.
func NewAnnotationRepository() *AnnotationRepository {
	return &AnnotationRepository{}
}

var _ ports.AnnotationRepository = (*AnnotationRepository)(nil)

// ListPage returns the 1-based page of the user's annotations in insertion
// order. A page past the end returns an empty slice.
func (r *AnnotationRepository) ListPage(_ context.Context, userID string, page, limit int, filter *ports.AnnotationFilter) ([]domain.Annotation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := r.matching(userID, filter)

	start := (page - 1) * limit
	if start >= len(matches) {
		return []domain.Annotation{}, nil
	}

	end := start + limit
	if end > len(matches) {
		end = len(matches)
	}

	out := make([]domain.Annotation, end-start)
	copy(out, matches[start:end])

	return out, nil
}

// CountForUser returns the number of annotations the user owns.
func (r *AnnotationRepository) CountForUser(_ context.Context, userID string, filter *ports.AnnotationFilter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.matching(userID, filter)), nil
}

// FindByExternalID looks up the user's annotation for a provider quote.
func (r *AnnotationRepository) FindByExternalID(_ context.Context, userID, externalID string) (*domain.Annotation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.records {
		if r.records[i].UserID == userID && r.records[i].ExternalID == externalID {
			found := r.records[i]
			return &found, nil
		}
	}

	return nil, domain.NewNotFoundError("annotation", externalID)
}

// GetByID retrieves an annotation by local identifier, scoped to the user.
func (r *AnnotationRepository) GetByID(_ context.Context, userID, id string) (*domain.Annotation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.records {
		if r.records[i].UserID == userID && r.records[i].ID == id {
			found := r.records[i]
			return &found, nil
		}
	}

	return nil, domain.NewNotFoundError("annotation", id)
}

// Insert persists a new annotation. A duplicate (user, external key) pair is
// rejected with a conflict, mirroring the unique constraint the postgres
// adapter relies on.
func (r *AnnotationRepository) Insert(_ context.Context, annotation *domain.Annotation) (*domain.Annotation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].UserID == annotation.UserID && r.records[i].ExternalID == annotation.ExternalID {
			return nil, domain.NewConflictError("annotation", "duplicate (user, external key)")
		}
	}

	stored := *annotation
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}

	r.records = append(r.records, stored)
	created := stored

	return &created, nil
}

// Update overwrites the flags of an existing annotation by local ID and user.
func (r *AnnotationRepository) Update(_ context.Context, annotation *domain.Annotation) (*domain.Annotation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].UserID == annotation.UserID && r.records[i].ID == annotation.ID {
			r.records[i].Favorite = annotation.Favorite
			r.records[i].Archived = annotation.Archived
			updated := r.records[i]

			return &updated, nil
		}
	}

	return nil, domain.NewNotFoundError("annotation", annotation.ID)
}

// Delete removes an annotation by local ID, scoped to the user, and returns
// the removed record.
func (r *AnnotationRepository) Delete(_ context.Context, userID, id string) (*domain.Annotation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].UserID == userID && r.records[i].ID == id {
			deleted := r.records[i]
			r.records = append(r.records[:i], r.records[i+1:]...)

			return &deleted, nil
		}
	}

	return nil, domain.NewNotFoundError("annotation", id)
}

// matching filters records by user and optional flag state.
// Caller must hold at least the read lock.
func (r *AnnotationRepository) matching(userID string, filter *ports.AnnotationFilter) []domain.Annotation {
	matches := make([]domain.Annotation, 0, len(r.records))

	for _, a := range r.records {
		if a.UserID != userID {
			continue
		}

		if filter != nil {
			if filter.Favorite != nil && a.Favorite != *filter.Favorite {
				continue
			}

			if filter.Archived != nil && a.Archived != *filter.Archived {
				continue
			}
		}

		matches = append(matches, a)
	}

	return matches
}
