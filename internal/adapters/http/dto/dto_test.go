package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotelib/quotelib/internal/domain"
)

func TestPageRequest_Defaults(t *testing.T) {
	tests := []struct {
		name      string
		req       PageRequest
		wantPage  int
		wantLimit int
	}{
		{name: "zero values", req: PageRequest{}, wantPage: 1, wantLimit: DefaultLimit},
		{name: "explicit values", req: PageRequest{Page: 3, Limit: 10}, wantPage: 3, wantLimit: 10},
		{name: "limit capped", req: PageRequest{Page: 1, Limit: 500}, wantPage: 1, wantLimit: MaxLimit},
		{name: "negative page", req: PageRequest{Page: -1}, wantPage: 1, wantLimit: DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantPage, tt.req.GetPage())
			assert.Equal(t, tt.wantLimit, tt.req.GetLimit())
		})
	}
}

func TestNewPagedResponse(t *testing.T) {
	resp := NewPagedResponse([]string{"a", "b"}, 2, 50, 9)

	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, 50, resp.TotalCount)
	assert.Equal(t, 9, resp.TotalPages)
	assert.Equal(t, []string{"a", "b"}, resp.Results)
}

func TestNewPagedResponse_NilItems(t *testing.T) {
	resp := NewPagedResponse[string](nil, 1, 0, 0)

	require.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
	assert.Zero(t, resp.Count)
}

func TestFromMergedQuote(t *testing.T) {
	merged := &domain.MergedQuote{
		Quote: domain.Quote{
			ID:      "q1",
			Content: "content",
			Author:  "Author",
			Tags:    []string{"wisdom"},
		},
		Favorite: true,
		Archived: false,
	}

	resp := FromMergedQuote(merged)

	assert.Equal(t, "q1", resp.ID)
	assert.Equal(t, "content", resp.Content)
	assert.True(t, resp.IsFavorite)
	assert.False(t, resp.IsArchived)
}

func TestFromAnnotation(t *testing.T) {
	resp := FromAnnotation(&domain.Annotation{
		ID:         "local-1",
		ExternalID: "q1",
		UserID:     "u1",
		Archived:   true,
	})

	assert.Equal(t, "local-1", resp.ID)
	assert.Equal(t, "q1", resp.ExternalID)
	assert.True(t, resp.IsArchived)
	assert.False(t, resp.IsFavorite)
}

func TestValidate_PageRequest(t *testing.T) {
	assert.NoError(t, Validate(&PageRequest{Page: 1, Limit: 6}))
	assert.NoError(t, Validate(&PageRequest{}))

	err := Validate(&PageRequest{Page: 1, Limit: 9999})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeProviderUnavailable, http.StatusBadGateway},
		{ErrorCodeStoreUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeTimeout, http.StatusGatewayTimeout},
		{ErrorCodeInternal, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromCode(tt.code))
		})
	}
}
