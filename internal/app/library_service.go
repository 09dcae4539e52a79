// Package app contains application services that orchestrate use cases.
// This is the application layer in Clean Architecture - it coordinates
// domain logic and infrastructure through ports.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/quotelib/quotelib/internal/domain"
	"github.com/quotelib/quotelib/internal/platform/logging"
	"github.com/quotelib/quotelib/internal/ports"
)

// DefaultStorePageSize is the annotation store's internal scan page size.
// It is independent of the caller-controlled limit and never leaks to callers.
const DefaultStorePageSize = 6

// LibraryService reconciles the provider's quote catalog with the local
// per-user annotation store and drives the annotation lifecycle.
// It depends on port interfaces, not concrete implementations.
type LibraryService struct {
	source        ports.QuoteSource
	repo          ports.AnnotationRepository
	storePageSize int
	logger        *slog.Logger
}

// LibraryServiceConfig contains configuration for the library service.
type LibraryServiceConfig struct {
	Source ports.QuoteSource
	Repo   ports.AnnotationRepository

	// StorePageSize overrides the internal store scan page size.
	// Defaults to DefaultStorePageSize.
	StorePageSize int

	Logger *slog.Logger
}

// NewLibraryService creates a new library service with the provided
// dependencies. Panics if Source or Repo is nil. Defaults logger to
// slog.Default() if nil.
func NewLibraryService(cfg LibraryServiceConfig) *LibraryService {
	if cfg.Source == nil {
		panic("LibraryService: Source is required")
	}

	if cfg.Repo == nil {
		panic("LibraryService: Repo is required")
	}

	pageSize := cfg.StorePageSize
	if pageSize <= 0 {
		pageSize = DefaultStorePageSize
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &LibraryService{
		source:        cfg.Source,
		repo:          cfg.Repo,
		storePageSize: pageSize,
		logger:        logger.With(slog.String("component", "app.LibraryService")),
	}
}

// GetMergedPage returns the provider's page left-joined against the user's
// annotations. Every provider quote appears exactly once, in the provider's
// order; annotation flags are substituted when a match exists, else both
// default to false. Totals come from the provider, which is the superset.
//
// The provider fetch and the store scan are independent reads and run
// concurrently; both must complete before the join. This path never writes.
func (s *LibraryService) GetMergedPage(ctx context.Context, page, limit int, userID string) (*domain.MergedPage, error) {
	if err := validateRequest(page, limit, userID); err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)

	quotes, index, err := Parallel2(ctx,
		func(ctx context.Context) (*domain.QuotePage, error) {
			return s.source.FetchPage(ctx, page, limit)
		},
		func(ctx context.Context) (annotationIndex, error) {
			return s.collectAnnotations(ctx, userID)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("assembling merged page: %w", err)
	}

	merged := make([]domain.MergedQuote, 0, len(quotes.Quotes))

	for _, q := range quotes.Quotes {
		mq := domain.MergedQuote{Quote: q}
		if a, ok := index[q.ID]; ok {
			mq.Favorite = a.Favorite
			mq.Archived = a.Archived
		}

		merged = append(merged, mq)
	}

	logger.DebugContext(ctx, "merged page assembled",
		slog.Int("page", page),
		slog.Int("quotes", len(merged)),
		slog.Int("annotations", len(index)),
	)

	return &domain.MergedPage{
		Page:       page,
		TotalCount: quotes.TotalCount,
		TotalPages: domain.PageCount(quotes.TotalCount, limit),
		Quotes:     merged,
	}, nil
}

// GetLocalPage returns a page of the user's annotations without touching the
// provider. Totals here come from the local store. The optional filter
// narrows the listing by flag state.
func (s *LibraryService) GetLocalPage(ctx context.Context, page, limit int, userID string, filter *ports.AnnotationFilter) (*domain.AnnotationPage, error) {
	if err := validateRequest(page, limit, userID); err != nil {
		return nil, err
	}

	annotations, total, err := Parallel2(ctx,
		func(ctx context.Context) ([]domain.Annotation, error) {
			return s.repo.ListPage(ctx, userID, page, limit, filter)
		},
		func(ctx context.Context) (int, error) {
			return s.repo.CountForUser(ctx, userID, filter)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("listing annotations: %w", err)
	}

	return &domain.AnnotationPage{
		Page:        page,
		TotalCount:  total,
		TotalPages:  domain.PageCount(total, limit),
		Annotations: annotations,
	}, nil
}

// GetOne retrieves a single annotation by its local identifier, scoped to the
// requesting user.
func (s *LibraryService) GetOne(ctx context.Context, id, userID string) (*domain.Annotation, error) {
	if userID == "" {
		return nil, domain.NewValidationError("userId", "cannot be empty")
	}

	if id == "" {
		return nil, domain.NewValidationError("id", "cannot be empty")
	}

	annotation, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("getting annotation: %w", err)
	}

	return annotation, nil
}

// SetDesiredState drives the annotation lifecycle for a (user, external key)
// pair toward the desired flag combination. It creates, updates, or deletes
// the backing record as domain.NextAction decides, so an all-false record is
// never stored. The call is an idempotent upsert: repeating it with the same
// flags updates rather than duplicates.
//
// A first-time all-false request is a pure no-op; the returned annotation
// then carries the synthesized default state with no local ID.
func (s *LibraryService) SetDesiredState(ctx context.Context, externalID, userID string, favorite, archived bool) (*domain.Annotation, error) {
	if userID == "" {
		return nil, domain.NewValidationError("userId", "cannot be empty")
	}

	if externalID == "" {
		return nil, domain.NewValidationError("externalId", "cannot be empty")
	}

	current, err := s.repo.FindByExternalID(ctx, userID, externalID)
	if err != nil && !domain.IsNotFound(err) {
		return nil, fmt.Errorf("looking up annotation: %w", err)
	}

	logger := logging.FromContext(ctx)
	action := domain.NextAction(current, favorite, archived)

	logger.DebugContext(ctx, "annotation transition",
		slog.String("external_id", externalID),
		slog.String("action", action.String()),
	)

	switch action {
	case domain.ActionInsert:
		created, err := s.repo.Insert(ctx, &domain.Annotation{
			ID:         uuid.NewString(),
			ExternalID: externalID,
			UserID:     userID,
			Favorite:   favorite,
			Archived:   archived,
		})
		if err != nil {
			return nil, fmt.Errorf("inserting annotation: %w", err)
		}

		return created, nil

	case domain.ActionUpdate:
		current.Favorite = favorite
		current.Archived = archived

		updated, err := s.repo.Update(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("updating annotation: %w", err)
		}

		return updated, nil

	case domain.ActionDelete:
		if _, err := s.repo.Delete(ctx, userID, current.ID); err != nil {
			return nil, fmt.Errorf("deleting annotation: %w", err)
		}

		return &domain.Annotation{ExternalID: externalID, UserID: userID}, nil

	default:
		// Absence already encodes the desired all-false state.
		return &domain.Annotation{ExternalID: externalID, UserID: userID}, nil
	}
}

// DeleteOne removes an annotation by its local identifier, scoped to the
// requesting user, and returns the removed record.
func (s *LibraryService) DeleteOne(ctx context.Context, id, userID string) (*domain.Annotation, error) {
	if userID == "" {
		return nil, domain.NewValidationError("userId", "cannot be empty")
	}

	if id == "" {
		return nil, domain.NewValidationError("id", "cannot be empty")
	}

	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("deleting annotation: %w", err)
	}

	return deleted, nil
}

// GetRandomQuote returns a single random quote from the provider, without
// annotation overlay.
func (s *LibraryService) GetRandomQuote(ctx context.Context) (*domain.Quote, error) {
	quote, err := s.source.Random(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching random quote: %w", err)
	}

	return quote, nil
}

// validateRequest checks the shared paging and identity inputs.
// Failures are reported before any store or provider access is attempted.
func validateRequest(page, limit int, userID string) error {
	if page < 1 {
		return domain.NewValidationError("page", "must be a positive integer")
	}

	if limit < 1 {
		return domain.NewValidationError("limit", "must be a positive integer")
	}

	if userID == "" {
		return domain.NewValidationError("userId", "cannot be empty")
	}

	return nil
}
