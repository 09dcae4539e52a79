package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotelib/quotelib/internal/ports"
)

// checkerFunc adapts a function to ports.HealthChecker.
type checkerFunc struct {
	name string
	fn   func(context.Context) error
}

func (c checkerFunc) Name() string                    { return c.name }
func (c checkerFunc) Check(ctx context.Context) error { return c.fn(ctx) }

func newHealthRouter(checkers ...ports.HealthChecker) *gin.Engine {
	registry := ports.NewHealthRegistry()
	for _, c := range checkers {
		registry.Register(c)
	}

	router := gin.New()
	handler := NewHealthHandler(registry, NewBuildInfo("1.2.3", "abc1234", "2026-01-01T00:00:00Z"))
	handler.RegisterHealthRoutesOnEngine(router)

	return router
}

func TestLiveness(t *testing.T) {
	router := newHealthRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/live", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestReadiness_AllHealthy(t *testing.T) {
	router := newHealthRouter(
		checkerFunc{name: "postgres", fn: func(context.Context) error { return nil }},
		checkerFunc{name: "quotable", fn: func(context.Context) error { return nil }},
	)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/ready", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status string                        `json:"status"`
		Checks map[string]*ports.CheckResult `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Len(t, resp.Checks, 2)
}

func TestReadiness_Unhealthy(t *testing.T) {
	router := newHealthRouter(
		checkerFunc{name: "postgres", fn: func(context.Context) error { return errors.New("connection refused") }},
	)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestBuildInfoEndpoint(t *testing.T) {
	router := newHealthRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/build", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"version":"1.2.3"`)
	assert.Contains(t, w.Body.String(), `"commit":"abc1234"`)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newHealthRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
