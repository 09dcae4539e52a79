package dto

import "github.com/quotelib/quotelib/internal/domain"

// QuoteResponse is the API representation of a provider quote.
type QuoteResponse struct {
	ID           string   `json:"id"`
	Content      string   `json:"content"`
	Author       string   `json:"author"`
	AuthorSlug   string   `json:"authorSlug,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Length       int      `json:"length,omitempty"`
	DateAdded    string   `json:"dateAdded,omitempty"`
	DateModified string   `json:"dateModified,omitempty"`
}

// MergedQuoteResponse is a provider quote overlaid with the caller's flags.
type MergedQuoteResponse struct {
	QuoteResponse

	IsFavorite bool `json:"isFavorite"`
	IsArchived bool `json:"isArchived"`
}

// AnnotationResponse is the API representation of a stored annotation.
type AnnotationResponse struct {
	ID         string `json:"id,omitempty"`
	ExternalID string `json:"externalId"`
	IsFavorite bool   `json:"isFavorite"`
	IsArchived bool   `json:"isArchived"`
}

// StateRequest carries the desired flag state for a quote.
type StateRequest struct {
	IsFavorite bool `json:"isFavorite"`
	IsArchived bool `json:"isArchived"`
}

// ListAnnotationsRequest carries pagination and optional flag filters for the
// local-only listing.
type ListAnnotationsRequest struct {
	PageRequest

	IsFavorite *bool `form:"isFavorite"`
	IsArchived *bool `form:"isArchived"`
}

// FromQuote converts a domain quote.
func FromQuote(q *domain.Quote) QuoteResponse {
	return QuoteResponse{
		ID:           q.ID,
		Content:      q.Content,
		Author:       q.Author,
		AuthorSlug:   q.AuthorSlug,
		Tags:         q.Tags,
		Length:       q.Length,
		DateAdded:    q.DateAdded,
		DateModified: q.DateModified,
	}
}

// FromMergedQuote converts a merged domain quote.
func FromMergedQuote(q *domain.MergedQuote) MergedQuoteResponse {
	return MergedQuoteResponse{
		QuoteResponse: FromQuote(&q.Quote),
		IsFavorite:    q.Favorite,
		IsArchived:    q.Archived,
	}
}

// FromAnnotation converts a domain annotation.
func FromAnnotation(a *domain.Annotation) AnnotationResponse {
	return AnnotationResponse{
		ID:         a.ID,
		ExternalID: a.ExternalID,
		IsFavorite: a.Favorite,
		IsArchived: a.Archived,
	}
}
