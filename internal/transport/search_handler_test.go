package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"stitchfront/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubSearchService records calls and returns canned results.
type stubSearchService struct {
	searchCalls  int
	lastFilters  domain.SearchFilters
	searchResult *domain.SearchResults
	searchErr    error

	facetResult *domain.FacetOptions
	suggestions []domain.Suggestion
}

func (s *stubSearchService) Search(_ context.Context, filters domain.SearchFilters) (*domain.SearchResults, error) {
	s.searchCalls++
	s.lastFilters = filters
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	if s.searchResult != nil {
		return s.searchResult, nil
	}
	return &domain.SearchResults{Products: []domain.ProductView{}}, nil
}

func (s *stubSearchService) FilterOptions(_ context.Context, _ domain.FilterContext) (*domain.FacetOptions, error) {
	if s.facetResult != nil {
		return s.facetResult, nil
	}
	return &domain.FacetOptions{}, nil
}

func (s *stubSearchService) Suggestions(_ context.Context, query string) ([]domain.Suggestion, error) {
	s.searchCalls++
	return s.suggestions, nil
}

func newSearchTestHandler(stub *stubSearchService) *SearchHandler {
	return NewSearchHandler(stub, zap.NewNop())
}

func TestSearchHandler_RejectsInvalidPageAndLimit(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"page zero", "page=0"},
		{"negative page", "page=-2"},
		{"limit zero", "limit=0"},
		{"limit above cap", "limit=150"},
		{"non-numeric page", "page=abc"},
		{"non-numeric limit", "limit=ten"},
		{"non-numeric minPrice", "minPrice=cheap"},
		{"non-numeric maxPrice", "maxPrice=expensive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubSearchService{}
			handler := newSearchTestHandler(stub)

			req := httptest.NewRequest(http.MethodGet, "/api/search?"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.Search(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			// Validation failures never reach the search core.
			assert.Equal(t, 0, stub.searchCalls)
		})
	}
}

func TestSearchHandler_PassesParsedFilters(t *testing.T) {
	stub := &stubSearchService{}
	handler := newSearchTestHandler(stub)

	req := httptest.NewRequest(http.MethodGet,
		"/api/search?q=shirt&category=Shirts&minPrice=10.5&maxPrice=99&supplier=Vestra&color=Red&size=M&sort=price-asc&page=2&limit=10", nil)
	w := httptest.NewRecorder()

	handler.Search(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, stub.searchCalls)

	f := stub.lastFilters
	assert.Equal(t, "shirt", f.SearchQuery)
	assert.Equal(t, "Shirts", f.Category)
	require.NotNil(t, f.MinPrice)
	assert.Equal(t, 10.5, *f.MinPrice)
	require.NotNil(t, f.MaxPrice)
	assert.Equal(t, 99.0, *f.MaxPrice)
	assert.Equal(t, "Vestra", f.Supplier)
	assert.Equal(t, "Red", f.Color)
	assert.Equal(t, "M", f.Size)
	assert.Equal(t, "price-asc", f.Sort)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, 10, f.Limit)
}

func TestSearchHandler_DefaultsPageAndLimit(t *testing.T) {
	stub := &stubSearchService{}
	handler := newSearchTestHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	w := httptest.NewRecorder()

	handler.Search(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, stub.lastFilters.Page)
	assert.Equal(t, 20, stub.lastFilters.Limit)
}

func TestSearchHandler_ResponseEnvelope(t *testing.T) {
	stub := &stubSearchService{
		searchResult: &domain.SearchResults{
			Products:      []domain.ProductView{{Name: "Crimson Linen Shirt", Price: 45}},
			TotalProducts: 41,
			TotalPages:    3,
			AppliedFilters: domain.AppliedFilters{
				SearchQuery: "shirt",
				Sort:        "relevance",
			},
		},
	}
	handler := newSearchTestHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=shirt&page=2&limit=20", nil)
	w := httptest.NewRecorder()

	handler.Search(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp SearchResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	assert.True(t, resp.Success)
	assert.Equal(t, "Found 41 products matching your search", resp.Message)
	assert.Equal(t, 2, resp.Pagination.CurrentPage)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.Equal(t, int64(41), resp.Pagination.TotalProducts)
	assert.True(t, resp.Pagination.HasNext)
	assert.True(t, resp.Pagination.HasPrev)
	assert.Equal(t, 20, resp.Pagination.Limit)
	require.NotNil(t, resp.Filters)
	assert.Equal(t, "shirt", resp.Filters.SearchQuery)
}

func TestSearchHandler_ZeroMatchesIsSuccess(t *testing.T) {
	stub := &stubSearchService{
		searchResult: &domain.SearchResults{
			Products:       []domain.ProductView{},
			TotalProducts:  0,
			TotalPages:     0,
			AppliedFilters: domain.AppliedFilters{Sort: "relevance"},
		},
	}
	handler := newSearchTestHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=zeppelin", nil)
	w := httptest.NewRecorder()

	handler.Search(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp SearchResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Found 0 products matching your search", resp.Message)
	assert.False(t, resp.Pagination.HasNext)
	assert.False(t, resp.Pagination.HasPrev)
}

func TestSearchHandler_StoreFailureIs500(t *testing.T) {
	stub := &stubSearchService{searchErr: errors.New("connection reset")}
	handler := newSearchTestHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=shirt", nil)
	w := httptest.NewRecorder()

	handler.Search(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Internal server error during search", resp["message"])
}

func TestSearchHandler_ShortSuggestionQuerySkipsSearch(t *testing.T) {
	// Length is counted in runes, so a multi-byte character is still one
	tests := []struct {
		name  string
		query string
	}{
		{"empty", ""},
		{"single ascii rune", "a"},
		{"single multibyte rune", "é"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubSearchService{}
			handler := newSearchTestHandler(stub)

			req := httptest.NewRequest(http.MethodGet, "/api/search/suggestions?q="+url.QueryEscape(tt.query), nil)
			w := httptest.NewRecorder()

			handler.Suggestions(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, 0, stub.searchCalls)

			var resp struct {
				Success bool                `json:"success"`
				Data    []domain.Suggestion `json:"data"`
			}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.True(t, resp.Success)
			assert.Empty(t, resp.Data)
		})
	}
}

func TestSearchHandler_TwoRuneSuggestionQueryReachesSearch(t *testing.T) {
	stub := &stubSearchService{}
	handler := newSearchTestHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/search/suggestions?q="+url.QueryEscape("éé"), nil)
	w := httptest.NewRecorder()

	handler.Suggestions(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, stub.searchCalls)
}

func TestSearchHandler_SuggestionsReturned(t *testing.T) {
	stub := &stubSearchService{
		suggestions: []domain.Suggestion{
			{Name: "Crimson Linen Shirt", Price: 45},
			{Name: "Navy Oxford Shirt", Price: 59.5},
		},
	}
	handler := newSearchTestHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/search/suggestions?q=shirt", nil)
	w := httptest.NewRecorder()

	handler.Suggestions(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                `json:"success"`
		Data    []domain.Suggestion `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Crimson Linen Shirt", resp.Data[0].Name)
}

func TestSearchHandler_FilterOptions(t *testing.T) {
	stub := &stubSearchService{
		facetResult: &domain.FacetOptions{
			Suppliers:     []string{"Northloom"},
			Sizes:         []string{"S", "M"},
			Colors:        []string{"Red"},
			PriceRange:    domain.PriceRange{Min: 0, Max: 1000},
			TotalProducts: 7,
		},
	}
	handler := newSearchTestHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/search/filters?q=shirt", nil)
	w := httptest.NewRecorder()

	handler.FilterOptions(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                `json:"success"`
		Data    domain.FacetOptions `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 7, resp.Data.TotalProducts)
	assert.Equal(t, []string{"S", "M"}, resp.Data.Sizes)
}
