package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quotelib/quotelib/internal/adapters/http/dto"
	"github.com/quotelib/quotelib/internal/adapters/http/middleware"
	"github.com/quotelib/quotelib/internal/app"
	"github.com/quotelib/quotelib/internal/ports"
)

// QuoteHandler handles the quote library HTTP endpoints.
type QuoteHandler struct {
	service *app.LibraryService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.LibraryService) *QuoteHandler {
	return &QuoteHandler{
		service: service,
	}
}

// GetMergedPage handles GET /api/v1/quotes/merged.
// Serves one provider page overlaid with the caller's flags.
func (h *QuoteHandler) GetMergedPage(c *gin.Context) {
	var req dto.PageRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		h.respondBindingError(c, err)
		return
	}

	page, err := h.service.GetMergedPage(c.Request.Context(), req.GetPage(), req.GetLimit(), middleware.GetUserID(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	results := make([]dto.MergedQuoteResponse, 0, len(page.Quotes))
	for i := range page.Quotes {
		results = append(results, dto.FromMergedQuote(&page.Quotes[i]))
	}

	c.JSON(http.StatusOK, dto.NewPagedResponse(results, page.Page, page.TotalCount, page.TotalPages))
}

// ListAnnotations handles GET /api/v1/quotes.
// Serves the caller's saved annotations without touching the provider,
// optionally filtered by flag state.
func (h *QuoteHandler) ListAnnotations(c *gin.Context) {
	var req dto.ListAnnotationsRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		h.respondBindingError(c, err)
		return
	}

	var filter *ports.AnnotationFilter
	if req.IsFavorite != nil || req.IsArchived != nil {
		filter = &ports.AnnotationFilter{
			Favorite: req.IsFavorite,
			Archived: req.IsArchived,
		}
	}

	page, err := h.service.GetLocalPage(c.Request.Context(), req.GetPage(), req.GetLimit(), middleware.GetUserID(c), filter)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	results := make([]dto.AnnotationResponse, 0, len(page.Annotations))
	for i := range page.Annotations {
		results = append(results, dto.FromAnnotation(&page.Annotations[i]))
	}

	c.JSON(http.StatusOK, dto.NewPagedResponse(results, page.Page, page.TotalCount, page.TotalPages))
}

// GetRandomQuote handles GET /api/v1/quotes/random.
func (h *QuoteHandler) GetRandomQuote(c *gin.Context) {
	quote, err := h.service.GetRandomQuote(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromQuote(quote))
}

// GetAnnotation handles GET /api/v1/quotes/:id.
// Looks up one of the caller's annotations by its local identifier.
func (h *QuoteHandler) GetAnnotation(c *gin.Context) {
	annotation, err := h.service.GetOne(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromAnnotation(annotation))
}

// SetState handles PUT /api/v1/quotes/:id/state.
// The path parameter is the provider's quote key; the body carries the
// desired flag state. The store is reconciled to match it.
func (h *QuoteHandler) SetState(c *gin.Context) {
	var req dto.StateRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		h.respondBindingError(c, err)
		return
	}

	annotation, err := h.service.SetDesiredState(
		c.Request.Context(),
		c.Param("id"),
		middleware.GetUserID(c),
		req.IsFavorite,
		req.IsArchived,
	)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromAnnotation(annotation))
}

// DeleteAnnotation handles DELETE /api/v1/quotes/:id.
func (h *QuoteHandler) DeleteAnnotation(c *gin.Context) {
	deleted, err := h.service.DeleteOne(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromAnnotation(deleted))
}

// respondBindingError maps binding and validation failures to 400 responses.
func (h *QuoteHandler) respondBindingError(c *gin.Context, err error) {
	if fieldErrors := dto.ValidationErrors(err); len(fieldErrors) > 0 {
		dto.HandleValidationErrors(c, fieldErrors)
		return
	}

	dto.HandleErrorCode(c, dto.ErrorCodeBadRequest, err.Error())
}

// RegisterQuoteRoutes registers the quote library routes on the given group.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.GET("", h.ListAnnotations)
	quotes.GET("/merged", h.GetMergedPage)
	quotes.GET("/random", h.GetRandomQuote)
	quotes.GET("/:id", h.GetAnnotation)
	quotes.PUT("/:id/state", h.SetState)
	quotes.DELETE("/:id", h.DeleteAnnotation)
}
