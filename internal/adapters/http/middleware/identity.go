package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/quotelib/quotelib/internal/adapters/http/dto"
	"github.com/quotelib/quotelib/internal/platform/config"
	"github.com/quotelib/quotelib/internal/platform/logging"
)

const (
	// ContextKeyUserID is the gin context key for the caller's user ID.
	ContextKeyUserID = "user_id"

	// defaultUserHeader is the identity header when none is configured.
	// The gateway authenticates the caller and forwards the subject here.
	defaultUserHeader = "X-User-ID"
)

// RequireIdentity returns middleware that requires a caller identity.
// Every annotation is scoped to the user the gateway names in the identity
// header, so requests without one are rejected with 401 before they reach a
// handler.
func RequireIdentity(cfg *config.AuthConfig) gin.HandlerFunc {
	header := defaultUserHeader
	if cfg != nil && cfg.UserHeader != "" {
		header = cfg.UserHeader
	}

	return func(c *gin.Context) {
		userID := c.GetHeader(header)
		if userID == "" {
			abortWithUnauthorized(c, "caller identity required")
			return
		}

		c.Set(ContextKeyUserID, userID)

		ctx := ContextWithUserID(c.Request.Context(), userID)
		ctx = logging.WithUserID(ctx, userID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetUserID extracts the caller's user ID from the gin.Context.
// Returns empty string if RequireIdentity did not run.
func GetUserID(c *gin.Context) string {
	return getIDFromContext(c, ContextKeyUserID)
}

// abortWithUnauthorized aborts with a 401 response.
func abortWithUnauthorized(c *gin.Context, message string) {
	errResp := dto.NewErrorResponse(dto.ErrorCodeUnauthorized, message)

	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		errResp.TraceID = span.SpanContext().TraceID().String()
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, errResp)
}
