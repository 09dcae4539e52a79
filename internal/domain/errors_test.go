package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("annotation", "a-123")

	assert.True(t, IsNotFound(err))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "annotation")
	assert.Contains(t, err.Error(), "a-123")

	var nfe *NotFoundError
	assert.True(t, errors.As(err, &nfe))
	assert.Equal(t, "annotation", nfe.Entity)
}

func TestNotFoundError_NoID(t *testing.T) {
	err := NewNotFoundError("annotation", "")
	assert.Equal(t, "annotation not found", err.Error())
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("limit", "must be positive")

	assert.True(t, IsValidation(err))
	assert.False(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "limit")
	assert.Contains(t, err.Error(), "must be positive")
}

func TestConflictError(t *testing.T) {
	err := NewConflictError("annotation", "duplicate (user, external key)")

	assert.True(t, IsConflict(err))
	assert.Contains(t, err.Error(), "duplicate")
}

func TestProviderError(t *testing.T) {
	err := NewProviderError("quotable", "connection refused")

	assert.True(t, IsProviderUnavailable(err))
	assert.False(t, IsStoreUnavailable(err))
	assert.Contains(t, err.Error(), "quotable")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestStoreError(t *testing.T) {
	err := NewStoreError("insert", "connection reset")

	assert.True(t, IsStoreUnavailable(err))
	assert.False(t, IsProviderUnavailable(err))
	assert.Contains(t, err.Error(), "insert")
}

func TestErrorKindsAreDisjoint(t *testing.T) {
	kinds := []error{
		NewNotFoundError("annotation", "x"),
		NewValidationError("page", "bad"),
		NewConflictError("annotation", "dup"),
		NewProviderError("quotable", "down"),
		NewStoreError("list", "down"),
	}

	checks := []func(error) bool{
		IsNotFound,
		IsValidation,
		IsConflict,
		IsProviderUnavailable,
		IsStoreUnavailable,
	}

	for i, err := range kinds {
		for j, check := range checks {
			assert.Equal(t, i == j, check(err), "kind %d vs check %d", i, j)
		}
	}
}

func TestWrappedErrorsPreserveKind(t *testing.T) {
	err := fmt.Errorf("fetching page: %w", NewProviderError("quotable", "HTTP 502"))
	assert.True(t, IsProviderUnavailable(err))
}
