package domain

// Annotation is the per-user favorite/archived state attached to a provider
// quote. Invariant: an annotation with both flags false must never be stored;
// its absence IS the false/false state. The lifecycle transitions that uphold
// this invariant live in NextAction.
type Annotation struct {
	// ID is the local identifier, assigned on insert. Opaque to callers.
	ID string

	// ExternalID references the provider quote this annotation belongs to.
	// The provider does not know about, or enforce, this reference.
	ExternalID string

	// UserID is the owning user. All reads and writes are scoped by it.
	UserID string

	Favorite bool
	Archived bool
}

// Default reports whether the annotation carries only default state,
// i.e. the state that must not be persisted.
func (a *Annotation) Default() bool {
	return !a.Favorite && !a.Archived
}

// AnnotationPage is one page of a user's annotations with the user's totals.
type AnnotationPage struct {
	Page        int
	TotalCount  int
	TotalPages  int
	Annotations []Annotation
}

// PageCount returns the number of pages needed to cover total items at the
// given page size. Returns 0 for a non-positive total.
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}

	return (total + size - 1) / size
}
