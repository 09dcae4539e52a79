// Package clients provides the instrumented HTTP client used to reach the
// upstream quote provider.
package clients

import "errors"

// Client errors are infrastructure failures. Callers translate them into
// domain errors before they cross the application boundary.
var (
	// ErrCircuitOpen is returned when the circuit breaker is open and the
	// request was blocked without reaching the provider.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded is returned after all retry attempts failed.
	// The last attempt's error is wrapped for context.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)
