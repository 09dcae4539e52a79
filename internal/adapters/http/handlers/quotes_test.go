package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotelib/quotelib/internal/adapters/http/middleware"
	"github.com/quotelib/quotelib/internal/adapters/memory"
	"github.com/quotelib/quotelib/internal/app"
	"github.com/quotelib/quotelib/internal/domain"
	"github.com/quotelib/quotelib/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubSource serves a single canned provider page for every fetch.
type stubSource struct {
	page *domain.QuotePage
	err  error
}

func (s *stubSource) FetchPage(context.Context, int, int) (*domain.QuotePage, error) {
	if s.err != nil {
		return nil, s.err
	}

	return s.page, nil
}

func (s *stubSource) Random(context.Context) (*domain.Quote, error) {
	if s.err != nil {
		return nil, s.err
	}

	if len(s.page.Quotes) == 0 {
		return nil, domain.NewProviderError("quotable", "no quotes")
	}

	return &s.page.Quotes[0], nil
}

func newTestRouter(source ports.QuoteSource, repo ports.AnnotationRepository) *gin.Engine {
	svc := app.NewLibraryService(app.LibraryServiceConfig{
		Source: source,
		Repo:   repo,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(middleware.RequireIdentity(nil))
	NewQuoteHandler(svc).RegisterQuoteRoutes(api)

	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, userID, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestGetMergedPage(t *testing.T) {
	source := &stubSource{page: &domain.QuotePage{
		Quotes: []domain.Quote{
			{ID: "q1", Content: "first", Author: "A"},
			{ID: "q2", Content: "second", Author: "B"},
		},
		TotalCount: 50,
	}}
	repo := memory.NewAnnotationRepository()

	_, err := repo.Insert(context.Background(), &domain.Annotation{
		ExternalID: "q1", UserID: "u1", Favorite: true,
	})
	require.NoError(t, err)

	router := newTestRouter(source, repo)

	w := doRequest(t, router, http.MethodGet, "/api/v1/quotes/merged?page=1&limit=2", "u1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Page       int `json:"page"`
		Count      int `json:"count"`
		TotalCount int `json:"totalCount"`
		TotalPages int `json:"totalPages"`
		Results    []struct {
			ID         string `json:"id"`
			IsFavorite bool   `json:"isFavorite"`
			IsArchived bool   `json:"isArchived"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, 50, resp.TotalCount)
	assert.Equal(t, 25, resp.TotalPages)
	require.Len(t, resp.Results, 2)
	assert.True(t, resp.Results[0].IsFavorite)
	assert.False(t, resp.Results[1].IsFavorite)
}

func TestGetMergedPage_RequiresIdentity(t *testing.T) {
	router := newTestRouter(&stubSource{page: &domain.QuotePage{}}, memory.NewAnnotationRepository())

	w := doRequest(t, router, http.MethodGet, "/api/v1/quotes/merged", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestGetMergedPage_InvalidLimit(t *testing.T) {
	router := newTestRouter(&stubSource{page: &domain.QuotePage{}}, memory.NewAnnotationRepository())

	w := doRequest(t, router, http.MethodGet, "/api/v1/quotes/merged?limit=9999", "u1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestGetMergedPage_ProviderDown(t *testing.T) {
	source := &stubSource{err: domain.NewProviderError("quotable", "connection refused")}
	router := newTestRouter(source, memory.NewAnnotationRepository())

	w := doRequest(t, router, http.MethodGet, "/api/v1/quotes/merged", "u1", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "PROVIDER_UNAVAILABLE")
}

func TestSetState_CreateAndPrune(t *testing.T) {
	repo := memory.NewAnnotationRepository()
	router := newTestRouter(&stubSource{page: &domain.QuotePage{}}, repo)

	// Create.
	w := doRequest(t, router, http.MethodPut, "/api/v1/quotes/q3/state", "u1",
		`{"isFavorite": true, "isArchived": false}`)
	require.Equal(t, http.StatusOK, w.Code)

	var created struct {
		ID         string `json:"id"`
		ExternalID string `json:"externalId"`
		IsFavorite bool   `json:"isFavorite"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "q3", created.ExternalID)
	assert.True(t, created.IsFavorite)

	// Prune with all-false.
	w = doRequest(t, router, http.MethodPut, "/api/v1/quotes/q3/state", "u1",
		`{"isFavorite": false, "isArchived": false}`)
	require.Equal(t, http.StatusOK, w.Code)

	// The record is gone.
	w = doRequest(t, router, http.MethodGet, "/api/v1/quotes/"+created.ID, "u1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetState_MalformedBody(t *testing.T) {
	router := newTestRouter(&stubSource{page: &domain.QuotePage{}}, memory.NewAnnotationRepository())

	w := doRequest(t, router, http.MethodPut, "/api/v1/quotes/q1/state", "u1", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListAnnotations_Filtered(t *testing.T) {
	repo := memory.NewAnnotationRepository()

	for _, a := range []domain.Annotation{
		{ExternalID: "q1", UserID: "u1", Favorite: true},
		{ExternalID: "q2", UserID: "u1", Archived: true},
		{ExternalID: "q3", UserID: "u1", Favorite: true},
	} {
		_, err := repo.Insert(context.Background(), &a)
		require.NoError(t, err)
	}

	router := newTestRouter(&stubSource{page: &domain.QuotePage{}}, repo)

	w := doRequest(t, router, http.MethodGet, "/api/v1/quotes?isFavorite=true", "u1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		TotalCount int `json:"totalCount"`
		Results    []struct {
			ExternalID string `json:"externalId"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.TotalCount)
	require.Len(t, resp.Results, 2)
}

func TestDeleteAnnotation(t *testing.T) {
	repo := memory.NewAnnotationRepository()

	created, err := repo.Insert(context.Background(), &domain.Annotation{
		ExternalID: "q1", UserID: "u1", Favorite: true,
	})
	require.NoError(t, err)

	router := newTestRouter(&stubSource{page: &domain.QuotePage{}}, repo)

	w := doRequest(t, router, http.MethodDelete, "/api/v1/quotes/"+created.ID, "u1", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodDelete, "/api/v1/quotes/"+created.ID, "u1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestDeleteAnnotation_OtherUsersRecordHidden(t *testing.T) {
	repo := memory.NewAnnotationRepository()

	created, err := repo.Insert(context.Background(), &domain.Annotation{
		ExternalID: "q1", UserID: "userA", Favorite: true,
	})
	require.NoError(t, err)

	router := newTestRouter(&stubSource{page: &domain.QuotePage{}}, repo)

	w := doRequest(t, router, http.MethodDelete, "/api/v1/quotes/"+created.ID, "userB", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRandomQuote(t *testing.T) {
	source := &stubSource{page: &domain.QuotePage{
		Quotes: []domain.Quote{{ID: "q9", Content: "hello", Author: "A"}},
	}}
	router := newTestRouter(source, memory.NewAnnotationRepository())

	w := doRequest(t, router, http.MethodGet, "/api/v1/quotes/random", "u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"q9"`)
}
