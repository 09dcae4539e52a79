// Domain errors represent business-level failures, NOT HTTP errors.
// They are infrastructure-agnostic and are mapped to transport responses
// by adapters.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates the requested entity does not exist, or is not
	// visible to the requesting user.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates request input failed validation.
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates a state conflict, such as a concurrent duplicate
	// insert rejected by the store's unique constraint.
	ErrConflict = errors.New("conflict")

	// ErrProviderUnavailable indicates the external quote provider is
	// unreachable or returned malformed data.
	ErrProviderUnavailable = errors.New("quote provider unavailable")

	// ErrStoreUnavailable indicates the annotation store failed.
	ErrStoreUnavailable = errors.New("annotation store unavailable")
)

// NotFoundError provides context for not found errors.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError provides context for validation errors.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError provides context for conflict errors.
type ConflictError struct {
	Entity string
	Reason string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NewConflictError creates a conflict error with context.
func NewConflictError(entity, reason string) error {
	return &ConflictError{Entity: entity, Reason: reason}
}

// ProviderError wraps a failure of the external quote provider. A malformed
// response counts just as much as an unreachable host: either way no partial
// merge is attempted and the whole request fails.
type ProviderError struct {
	Provider string
	Reason   string
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("provider %q unavailable: %s", e.Provider, e.Reason)
	}

	return fmt.Sprintf("provider %q unavailable", e.Provider)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ProviderError) Unwrap() error {
	return ErrProviderUnavailable
}

// NewProviderError creates a provider error with context.
func NewProviderError(provider, reason string) error {
	return &ProviderError{Provider: provider, Reason: reason}
}

// StoreError wraps a persistence failure in the annotation store.
type StoreError struct {
	Op     string
	Reason string
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("annotation store: %s failed: %s", e.Op, e.Reason)
	}

	return "annotation store: " + e.Op + " failed"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *StoreError) Unwrap() error {
	return ErrStoreUnavailable
}

// NewStoreError creates a store error with context.
func NewStoreError(op, reason string) error {
	return &StoreError{Op: op, Reason: reason}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsProviderUnavailable checks if an error is a provider failure.
func IsProviderUnavailable(err error) bool {
	return errors.Is(err, ErrProviderUnavailable)
}

// IsStoreUnavailable checks if an error is a store failure.
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
