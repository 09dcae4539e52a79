package dto

// DefaultLimit is the default number of items per page. It matches the
// provider's default page size so merged pages line up one-to-one.
const DefaultLimit = 6

// MaxLimit is the maximum allowed items per page.
const MaxLimit = 100

// PageRequest represents page-number pagination parameters from the request.
type PageRequest struct {
	// Page is the 1-based page number (default 1).
	Page int `form:"page" validate:"omitempty,gte=1"`

	// Limit is the maximum number of items per page (1-100, default 6).
	Limit int `form:"limit" validate:"omitempty,gte=1,lte=100"`
}

// GetPage returns the page number with the default applied.
func (p *PageRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}

	return p.Page
}

// GetLimit returns the limit with defaults applied.
func (p *PageRequest) GetLimit() int {
	if p.Limit <= 0 {
		return DefaultLimit
	}

	if p.Limit > MaxLimit {
		return MaxLimit
	}

	return p.Limit
}

// PagedResponse is a generic page-number paginated response.
type PagedResponse[T any] struct {
	// Page is the 1-based page number that was served.
	Page int `json:"page"`

	// Count is the number of items on this page.
	Count int `json:"count"`

	// TotalCount is the total number of items across all pages.
	TotalCount int `json:"totalCount"`

	// TotalPages is the number of pages at the requested limit.
	TotalPages int `json:"totalPages"`

	// Results is the array of items for this page.
	Results []T `json:"results"`
}

// NewPagedResponse creates a paged response. A nil items slice is served as
// an empty array, never null.
func NewPagedResponse[T any](items []T, page, totalCount, totalPages int) *PagedResponse[T] {
	if items == nil {
		items = []T{}
	}

	return &PagedResponse[T]{
		Page:       page,
		Count:      len(items),
		TotalCount: totalCount,
		TotalPages: totalPages,
		Results:    items,
	}
}
