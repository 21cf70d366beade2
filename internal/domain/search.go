package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// SearchFilters is the request-scoped filter context for a product search.
// It is built fresh for every request and never persisted.
type SearchFilters struct {
	SearchQuery string
	Category    string
	MinPrice    *float64
	MaxPrice    *float64
	Supplier    string
	Color       string
	Size        string
	Sort        string
	Page        int
	Limit       int
}

// AppliedFilters is the normalized filter context echoed back with results
// so the UI can display and restore the active search.
type AppliedFilters struct {
	SearchQuery string   `json:"searchQuery"`
	Category    string   `json:"category,omitempty"`
	MinPrice    *float64 `json:"minPrice,omitempty"`
	MaxPrice    *float64 `json:"maxPrice,omitempty"`
	Supplier    string   `json:"supplier,omitempty"`
	Color       string   `json:"color,omitempty"`
	Size        string   `json:"size,omitempty"`
	Sort        string   `json:"sort"`
}

// SearchResults is one page of matched products plus totals.
type SearchResults struct {
	Products       []ProductView
	TotalProducts  int64
	TotalPages     int
	AppliedFilters AppliedFilters
}

// FilterContext is the (possibly partial) context the facet pass runs
// against. Supplier, Color and Size are accepted at the HTTP boundary but do
// not constrain the facet predicate.
type FilterContext struct {
	SearchQuery string
	Category    string
	Supplier    string
	Color       string
	Size        string
}

// CategoryOption is a category facet entry. IsSelected marks the active
// category so the UI can highlight it; it is not a filter.
type CategoryOption struct {
	ID         primitive.ObjectID `json:"_id"`
	Name       string             `json:"name"`
	IsSelected bool               `json:"isSelected"`
}

// PriceRange is the min/max price over a matched set, floored and ceiled to
// whole units.
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FacetOptions is the refinement panel computed for a filter context.
type FacetOptions struct {
	Categories    []CategoryOption `json:"categories"`
	Suppliers     []string         `json:"suppliers"`
	Sizes         []string         `json:"sizes"`
	Colors        []string         `json:"colors"`
	PriceRange    PriceRange       `json:"priceRange"`
	TotalProducts int              `json:"totalProducts"`
}

// Suggestion is one autocomplete entry.
type Suggestion struct {
	Name     string    `json:"name"`
	Category Reference `json:"category"`
	Price    float64   `json:"price"`
}
