package app

import (
	"context"
	"fmt"

	"github.com/quotelib/quotelib/internal/domain"
)

// annotationIndex maps provider quote keys to the user's annotations.
type annotationIndex map[string]domain.Annotation

// collectAnnotations scans the annotation store page by page, at the store's
// internal page size, and indexes every annotation the user owns by external
// key. The store paginates independently of the provider, so covering one
// provider page means walking the user's whole annotation set.
//
// The scan stops when a page comes back empty (store exhausted) or when the
// page count implied by CountForUser has been covered. Cost is O(total
// annotations for the user) per call, not O(limit) - an accepted tradeoff for
// a personal-scale store. Callers needing better asymptotics should push a
// key-set filter into the repository instead.
func (s *LibraryService) collectAnnotations(ctx context.Context, userID string) (annotationIndex, error) {
	total, err := s.repo.CountForUser(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("counting annotations: %w", err)
	}

	index := make(annotationIndex, total)
	totalPages := domain.PageCount(total, s.storePageSize)

	for page := 1; page <= totalPages; page++ {
		batch, err := s.repo.ListPage(ctx, userID, page, s.storePageSize, nil)
		if err != nil {
			return nil, fmt.Errorf("scanning annotation page %d: %w", page, err)
		}

		if len(batch) == 0 {
			break
		}

		for _, a := range batch {
			index[a.ExternalID] = a
		}
	}

	return index, nil
}
