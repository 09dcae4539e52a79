package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/quotelib/quotelib/internal/platform/logging"
)

const (
	// HeaderCorrelationID is the header name for correlation ID. Unlike the
	// per-request ID, the correlation ID follows an entire business
	// transaction across services.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyCorrelationID is the gin context key for the correlation ID.
	ContextKeyCorrelationID = "correlation_id"
)

// CorrelationID returns middleware that handles correlation ID propagation.
// The ID is taken from the X-Correlation-ID header when propagated from
// upstream, generated when this service originates the transaction, echoed in
// response headers, and attached to the request context and context logger.
func CorrelationID() gin.HandlerFunc {
	return createIDMiddleware(idMiddlewareConfig{
		headerName: HeaderCorrelationID,
		contextKey: ContextKeyCorrelationID,
		contextEnricher: func(ctx context.Context, id string) context.Context {
			return logging.WithCorrelationID(ContextWithCorrelationID(ctx, id), id)
		},
	})
}

// GetCorrelationID extracts the correlation ID from the gin.Context.
func GetCorrelationID(c *gin.Context) string {
	return getIDFromContext(c, ContextKeyCorrelationID)
}
