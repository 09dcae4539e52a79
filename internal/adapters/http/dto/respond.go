package dto

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/quotelib/quotelib/internal/domain"
	"github.com/quotelib/quotelib/internal/platform/logging"
)

// MapDomainError maps a domain error to an HTTP status code and error response.
// Unknown errors are mapped to 500 Internal Server Error with a generic message.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, err.Error())

	case domain.IsConflict(err):
		return http.StatusConflict, NewErrorResponse(ErrorCodeConflict, err.Error())

	case domain.IsValidation(err):
		resp := NewErrorResponse(ErrorCodeValidation, err.Error())
		// Extract field details if available
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) && validationErr.Field != "" {
			resp.Error.Details = map[string]string{
				validationErr.Field: validationErr.Message,
			}
		}

		return http.StatusBadRequest, resp

	case domain.IsProviderUnavailable(err):
		return http.StatusBadGateway, NewErrorResponse(ErrorCodeProviderUnavailable, err.Error())

	case domain.IsStoreUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(ErrorCodeStoreUnavailable, err.Error())

	default:
		// Unknown errors get a generic message to avoid leaking internals
		return http.StatusInternalServerError, NewErrorResponse(
			ErrorCodeInternal,
			"an internal error occurred",
		)
	}
}

// GetTraceID returns the current request's trace ID, or empty string.
func GetTraceID(c *gin.Context) string {
	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}

	return ""
}

// HandleError writes an error response to the gin.Context. It maps domain
// errors to HTTP responses and includes the trace ID if available.
func HandleError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)

	if traceID := GetTraceID(c); traceID != "" {
		errResp.TraceID = traceID
	}

	// Log internal errors with full details
	if status == http.StatusInternalServerError {
		logger := logging.FromContext(c.Request.Context())
		logger.Error("internal error",
			"error", err.Error(),
			"trace_id", errResp.TraceID,
		)
	}

	c.JSON(status, errResp)
}

// HandleErrorCode writes an error response with a specific error code.
// Use this for adapter-level errors that don't originate from domain errors.
func HandleErrorCode(c *gin.Context, code, message string) {
	errResp := NewErrorResponse(code, message)

	if traceID := GetTraceID(c); traceID != "" {
		errResp.TraceID = traceID
	}

	c.JSON(HTTPStatusFromCode(code), errResp)
}

// HandleValidationErrors writes a 400 response with field-level validation errors.
func HandleValidationErrors(c *gin.Context, fieldErrors map[string]string) {
	errResp := NewErrorResponseWithDetails(
		ErrorCodeValidation,
		"request validation failed",
		fieldErrors,
	)

	if traceID := GetTraceID(c); traceID != "" {
		errResp.TraceID = traceID
	}

	c.JSON(http.StatusBadRequest, errResp)
}
