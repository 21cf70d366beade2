package transport

import "stitchfront/internal/domain"

// Response is the success envelope shared by all endpoints.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Pagination describes the page position of a search or listing response.
type Pagination struct {
	CurrentPage   int   `json:"currentPage"`
	TotalPages    int   `json:"totalPages"`
	TotalProducts int64 `json:"totalProducts"`
	HasNext       bool  `json:"hasNext"`
	HasPrev       bool  `json:"hasPrev"`
	Limit         int   `json:"limit"`
}

// SearchResponse is the envelope for search results. Filters is nil on
// plain listings, which carry no applied filter state.
type SearchResponse struct {
	Success    bool                   `json:"success"`
	Data       interface{}            `json:"data"`
	Pagination Pagination             `json:"pagination"`
	Filters    *domain.AppliedFilters `json:"filters,omitempty"`
	Message    string                 `json:"message"`
}
