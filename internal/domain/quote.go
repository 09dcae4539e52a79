// Package domain contains core business entities and rules.
package domain

// Quote is a quotation owned by the external provider.
// It is read-only from this service's point of view; ID is the provider's
// stable key and never changes for a given quote.
type Quote struct {
	// ID is the provider-assigned identifier for this quote.
	ID string

	// Content is the text of the quote.
	Content string

	// Author is who said or wrote the quote.
	Author string

	// AuthorSlug is the provider's URL-safe author identifier.
	AuthorSlug string

	// Tags are categories or themes associated with the quote.
	Tags []string

	// Length is the character count of Content as reported by the provider.
	Length int

	// DateAdded and DateModified are the provider's ISO dates for the quote,
	// passed through untouched.
	DateAdded    string
	DateModified string
}

// QuotePage is one page of the provider's catalog together with the
// provider's total quote count. The order of Quotes is the provider's order.
type QuotePage struct {
	Quotes     []Quote
	TotalCount int
}

// MergedQuote is a provider quote overlaid with the requesting user's
// annotation state. When no annotation exists both flags are false.
// Merged quotes are composed fresh on every read and never persisted.
type MergedQuote struct {
	Quote

	Favorite bool
	Archived bool
}

// MergedPage is a reconciled window over the provider's catalog.
// TotalCount and TotalPages are derived from the provider's total, since the
// provider is the superset and annotations are only an overlay.
type MergedPage struct {
	Page       int
	TotalCount int
	TotalPages int
	Quotes     []MergedQuote
}
