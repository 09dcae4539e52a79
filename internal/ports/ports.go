// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrStoreUnavailable, ...)
//   - Keep interfaces small and focused
package ports

import (
	"context"

	"github.com/quotelib/quotelib/internal/domain"
)

// QuoteSource is the external, read-only, paginated quote provider.
// The provider owns the quotes and their ordering; this service never
// writes to it.
type QuoteSource interface {
	// FetchPage returns the provider's 1-based page of at most limit quotes,
	// in the provider's order, together with the provider's total quote
	// count. Returns domain.ErrProviderUnavailable on network or parse
	// failure; no partial page is ever returned.
	FetchPage(ctx context.Context, page, limit int) (*domain.QuotePage, error)

	// Random returns a single random quote from the provider.
	Random(ctx context.Context) (*domain.Quote, error)
}

// AnnotationFilter narrows annotation listings by flag state.
// Nil fields match anything.
type AnnotationFilter struct {
	Favorite *bool
	Archived *bool
}

// AnnotationRepository is the keyed per-user annotation store. Every method
// is scoped by user: a record owned by a different user is indistinguishable
// from a missing one.
//
// Implementations must enforce uniqueness of (user, external key) so that
// concurrent duplicate inserts are rejected deterministically with
// domain.ErrConflict.
type AnnotationRepository interface {
	// ListPage returns the 1-based page of at most limit annotations for the
	// user, in a stable order. An empty slice past the end is not an error.
	ListPage(ctx context.Context, userID string, page, limit int, filter *AnnotationFilter) ([]domain.Annotation, error)

	// CountForUser returns the number of annotations the user owns.
	CountForUser(ctx context.Context, userID string, filter *AnnotationFilter) (int, error)

	// FindByExternalID looks up the user's annotation for a provider quote.
	// Returns domain.ErrNotFound when absent.
	FindByExternalID(ctx context.Context, userID, externalID string) (*domain.Annotation, error)

	// GetByID retrieves an annotation by its local identifier.
	// Returns domain.ErrNotFound when absent or owned by another user.
	GetByID(ctx context.Context, userID, id string) (*domain.Annotation, error)

	// Insert persists a new annotation. Returns domain.ErrConflict when the
	// (user, external key) pair already exists.
	Insert(ctx context.Context, annotation *domain.Annotation) (*domain.Annotation, error)

	// Update overwrites the flags of an existing annotation, matched by local
	// ID and owning user. Returns domain.ErrNotFound when absent or foreign.
	Update(ctx context.Context, annotation *domain.Annotation) (*domain.Annotation, error)

	// Delete removes an annotation by local ID, scoped to the owning user,
	// and returns the removed record. Returns domain.ErrNotFound when absent
	// or foreign.
	Delete(ctx context.Context, userID, id string) (*domain.Annotation, error)
}
