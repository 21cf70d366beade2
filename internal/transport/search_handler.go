package transport

import (
	"fmt"
	"net/http"
	"strconv"
	"unicode/utf8"

	"stitchfront/internal/domain"
	"stitchfront/internal/middleware"
	"stitchfront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	maxSearchLimit      = 100
	minSuggestionLength = 2
)

// SearchHandler handles HTTP requests for product search, facets and
// autocomplete suggestions
type SearchHandler struct {
	searchService service.SearchService
	logger        *zap.Logger
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(searchService service.SearchService, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// RegisterRoutes registers all search routes
func (h *SearchHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/search", func(r chi.Router) {
		r.Get("/", h.Search)
		r.Get("/filters", h.FilterOptions)
		r.Get("/suggestions", h.Suggestions)
	})
}

// Search handles GET /api/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	filters, err := parseSearchFilters(r)
	if err != nil {
		h.logger.Debug("Rejected search parameters", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.searchService.Search(r.Context(), *filters)
	if err != nil {
		h.logger.Error("Search failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Internal server error during search")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, SearchResponse{
		Success: true,
		Data:    results.Products,
		Pagination: Pagination{
			CurrentPage:   filters.Page,
			TotalPages:    results.TotalPages,
			TotalProducts: results.TotalProducts,
			HasNext:       filters.Page < results.TotalPages,
			HasPrev:       filters.Page > 1,
			Limit:         filters.Limit,
		},
		Filters: &results.AppliedFilters,
		Message: fmt.Sprintf("Found %d products matching your search", results.TotalProducts),
	})
}

// FilterOptions handles GET /api/search/filters
func (h *SearchHandler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	facets, err := h.searchService.FilterOptions(r.Context(), domain.FilterContext{
		SearchQuery: q.Get("q"),
		Category:    q.Get("category"),
		Supplier:    q.Get("supplier"),
		Color:       q.Get("color"),
		Size:        q.Get("size"),
	})
	if err != nil {
		h.logger.Error("Get filter options failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    facets,
		Message: "Filter options retrieved successfully",
	})
}

// Suggestions handles GET /api/search/suggestions. Queries shorter than two
// characters return an empty list without touching the store.
func (h *SearchHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if utf8.RuneCountInString(query) < minSuggestionLength {
		middleware.RespondWithJSON(w, http.StatusOK, Response{
			Success: true,
			Data:    []domain.Suggestion{},
			Message: "Query too short",
		})
		return
	}

	suggestions, err := h.searchService.Suggestions(r.Context(), query)
	if err != nil {
		h.logger.Error("Suggestions failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    suggestions,
		Message: "Suggestions retrieved successfully",
	})
}

// parseSearchFilters validates query parameters before the search core is
// invoked. Bad page/limit or malformed numeric bounds are client errors.
func parseSearchFilters(r *http.Request) (*domain.SearchFilters, error) {
	q := r.URL.Query()

	page := service.DefaultPage
	if raw := q.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("Invalid page or limit")
		}
		page = parsed
	}

	limit := service.DefaultLimit
	if raw := q.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("Invalid page or limit")
		}
		limit = parsed
	}

	if page < 1 || limit < 1 || limit > maxSearchLimit {
		return nil, fmt.Errorf("Invalid page or limit")
	}

	filters := &domain.SearchFilters{
		SearchQuery: q.Get("q"),
		Category:    q.Get("category"),
		Supplier:    q.Get("supplier"),
		Color:       q.Get("color"),
		Size:        q.Get("size"),
		Sort:        q.Get("sort"),
		Page:        page,
		Limit:       limit,
	}

	if raw := q.Get("minPrice"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("Invalid minPrice")
		}
		filters.MinPrice = &parsed
	}

	if raw := q.Get("maxPrice"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("Invalid maxPrice")
		}
		filters.MaxPrice = &parsed
	}

	return filters, nil
}
