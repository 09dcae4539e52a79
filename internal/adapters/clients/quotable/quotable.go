// Package quotable adapts the quotable.io API to the domain's quote source
// port. External DTOs stay inside this package; only domain types cross the
// boundary, so provider schema changes never leak into the application.
package quotable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/quotelib/quotelib/internal/adapters/clients"
	"github.com/quotelib/quotelib/internal/domain"
	"github.com/quotelib/quotelib/internal/platform/logging"
)

// ClientConfig contains configuration for the quotable client.
type ClientConfig struct {
	// Client is the HTTP client to use. Its BaseURL must point at the
	// quotable API endpoint.
	Client *clients.Client

	// Logger is the structured logger. Defaults to slog.Default if nil.
	Logger *slog.Logger
}

// Client implements ports.QuoteSource against the quotable.io API.
type Client struct {
	client *clients.Client
	logger *slog.Logger
}

// NewClient creates a quotable adapter. Panics if Client is nil.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Client == nil {
		panic("quotable.Client: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		client: cfg.Client,
		logger: logger,
	}
}

// quotableQuote is the external quote DTO. Never exposed outside this package.
type quotableQuote struct {
	ID           string   `json:"_id"`
	Content      string   `json:"content"`
	Author       string   `json:"author"`
	AuthorSlug   string   `json:"authorSlug"`
	Tags         []string `json:"tags"`
	Length       int      `json:"length"`
	DateAdded    string   `json:"dateAdded"`
	DateModified string   `json:"dateModified"`
}

// quotableListResponse is the external paginated list DTO.
type quotableListResponse struct {
	Count      int             `json:"count"`
	TotalCount int             `json:"totalCount"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
	Results    []quotableQuote `json:"results"`
}

// FetchPage retrieves one provider page of quotes. Implements
// ports.QuoteSource.
func (c *Client) FetchPage(ctx context.Context, page, limit int) (*domain.QuotePage, error) {
	path := "/quotes?page=" + strconv.Itoa(page) + "&limit=" + strconv.Itoa(limit)
	c.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", path))

	resp, err := c.client.Get(ctx, path)
	if err != nil {
		return nil, c.mapClientError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Log(ctx, logging.LevelTrace, "request complete",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleErrorResponse(resp)
	}

	var external quotableListResponse
	if err := json.NewDecoder(resp.Body).Decode(&external); err != nil {
		return nil, domain.NewProviderError(providerName, fmt.Sprintf("decoding list response: %v", err))
	}

	quotes := make([]domain.Quote, 0, len(external.Results))
	for i := range external.Results {
		quotes = append(quotes, *translateQuote(&external.Results[i]))
	}

	c.logger.DebugContext(ctx, "fetched provider page",
		slog.Int("page", page),
		slog.Int("count", len(quotes)),
		slog.Int("total_count", external.TotalCount))

	return &domain.QuotePage{
		Quotes:     quotes,
		TotalCount: external.TotalCount,
	}, nil
}

// Random retrieves a single random quote. Implements ports.QuoteSource.
func (c *Client) Random(ctx context.Context) (*domain.Quote, error) {
	const path = "/random"
	c.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", path))

	resp, err := c.client.Get(ctx, path)
	if err != nil {
		return nil, c.mapClientError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Log(ctx, logging.LevelTrace, "request complete",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleErrorResponse(resp)
	}

	var external quotableQuote
	if err := json.NewDecoder(resp.Body).Decode(&external); err != nil {
		return nil, domain.NewProviderError(providerName, fmt.Sprintf("decoding quote response: %v", err))
	}

	return translateQuote(&external), nil
}

// providerName identifies the upstream in errors and health checks.
const providerName = "quotable"

// translateQuote converts the external DTO to a domain Quote.
func translateQuote(ext *quotableQuote) *domain.Quote {
	return &domain.Quote{
		ID:           ext.ID,
		Content:      ext.Content,
		Author:       ext.Author,
		AuthorSlug:   ext.AuthorSlug,
		Tags:         ext.Tags,
		Length:       ext.Length,
		DateAdded:    ext.DateAdded,
		DateModified: ext.DateModified,
	}
}

// mapClientError translates transport-layer failures to domain errors.
func (c *Client) mapClientError(err error) error {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewProviderError(providerName, "circuit breaker open")
	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return domain.NewProviderError(providerName, "max retries exceeded")
	default:
		return domain.NewProviderError(providerName, err.Error())
	}
}

// handleErrorResponse converts non-200 provider responses to domain errors.
func (c *Client) handleErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	c.logger.Warn("provider API error",
		slog.Int("status_code", resp.StatusCode),
		slog.String("body", string(body)),
	)

	return domain.NewProviderError(providerName, fmt.Sprintf("unexpected HTTP %d", resp.StatusCode))
}

// Name returns the health check name for this client.
// Implements ports.HealthChecker.
func (c *Client) Name() string {
	return providerName
}

// Check verifies provider connectivity. Implements ports.HealthChecker.
func (c *Client) Check(ctx context.Context) error {
	resp, err := c.client.Get(ctx, "/random")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	return nil
}
