package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"

	"stitchfront/internal/domain"
	"stitchfront/internal/repository"
	"stitchfront/internal/search"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20

	// Price range reported when the facet pass matches nothing.
	fallbackMinPrice = 0
	fallbackMaxPrice = 1000
)

// SearchService defines the interface for product search and faceting
type SearchService interface {
	Search(ctx context.Context, filters domain.SearchFilters) (*domain.SearchResults, error)
	FilterOptions(ctx context.Context, fc domain.FilterContext) (*domain.FacetOptions, error)
	Suggestions(ctx context.Context, query string) ([]domain.Suggestion, error)
}

type searchService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
}

// NewSearchService creates a new instance of SearchService
func NewSearchService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	suppliers repository.SupplierRepository,
) SearchService {
	return &searchService{
		products:   products,
		categories: categories,
		suppliers:  suppliers,
	}
}

// Search builds the filter predicate, runs the page fetch and the total
// count concurrently, and returns the page with references expanded.
// Page/limit bounds are the caller's responsibility.
func (s *searchService) Search(ctx context.Context, f domain.SearchFilters) (*domain.SearchResults, error) {
	page := f.Page
	if page == 0 {
		page = DefaultPage
	}
	limit := f.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	sortKey := f.Sort
	if sortKey == "" {
		sortKey = search.SortRelevance
	}

	trimmed := strings.TrimSpace(f.SearchQuery)
	hasTextSearch := trimmed != ""

	clauses := []search.Clause{}

	if hasTextSearch {
		categoryIDs, err := s.categories.FindIDsByNameContains(ctx, trimmed)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, search.TextMatch{Term: trimmed, CategoryIDs: categoryIDs})
	}

	// An unresolved category or supplier name contributes no clause: the
	// filter is dropped, not turned into an empty result set.
	if f.Category != "" {
		category, err := s.categories.FindByName(ctx, f.Category)
		switch {
		case err == nil:
			clauses = append(clauses, search.CategoryEq{ID: category.ID})
		case errors.Is(err, repository.ErrCategoryNotFound):
		default:
			return nil, err
		}
	}

	if f.MinPrice != nil || f.MaxPrice != nil {
		clauses = append(clauses, search.PriceRange{Min: f.MinPrice, Max: f.MaxPrice})
	}

	if f.Supplier != "" {
		supplier, err := s.suppliers.FindByName(ctx, f.Supplier)
		switch {
		case err == nil:
			clauses = append(clauses, search.SupplierEq{ID: supplier.ID})
		case errors.Is(err, repository.ErrSupplierNotFound):
		default:
			return nil, err
		}
	}

	if f.Size != "" {
		clauses = append(clauses, search.SizeEq{Label: f.Size})
	}

	// Color is echoed in the applied filters but never applied as a
	// predicate.

	clauses = append(clauses, search.StockFloor{})

	filter := search.And(clauses...)
	sortSpec, withScore := search.SortSpec(sortKey, hasTextSearch)
	skip := int64(page-1) * int64(limit)

	// Page fetch and count are independent reads; they are issued
	// concurrently and are not transactionally consistent with each other.
	var (
		matched []domain.Product
		total   int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matched, err = s.products.Find(gctx, filter, repository.FindOptions{
			Sort:      sortSpec,
			Skip:      skip,
			Limit:     int64(limit),
			WithScore: withScore,
		})
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.products.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	views, err := expandProducts(ctx, s.categories, s.suppliers, matched)
	if err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return &domain.SearchResults{
		Products:      views,
		TotalProducts: total,
		TotalPages:    totalPages,
		AppliedFilters: domain.AppliedFilters{
			SearchQuery: trimmed,
			Category:    f.Category,
			MinPrice:    f.MinPrice,
			MaxPrice:    f.MaxPrice,
			Supplier:    f.Supplier,
			Color:       f.Color,
			Size:        f.Size,
			Sort:        sortKey,
		},
	}, nil
}

// FilterOptions computes the refinement panel for a filter context. Only the
// free-text term and category constrain the predicate; the entire matched
// set is loaded and aggregated in a single pass, so the reported price range
// covers every match.
func (s *searchService) FilterOptions(ctx context.Context, fc domain.FilterContext) (*domain.FacetOptions, error) {
	clauses := []search.Clause{}

	trimmed := strings.TrimSpace(fc.SearchQuery)
	if trimmed != "" {
		clauses = append(clauses, search.TextContains{Term: trimmed})
	}

	if fc.Category != "" {
		category, err := s.categories.FindByName(ctx, fc.Category)
		switch {
		case err == nil:
			clauses = append(clauses, search.CategoryEq{ID: category.ID})
		case errors.Is(err, repository.ErrCategoryNotFound):
		default:
			return nil, err
		}
	}

	matched, err := s.products.FindAll(ctx, search.And(clauses...))
	if err != nil {
		return nil, err
	}

	allCategories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	supIDs := distinctIDs(matched, func(p domain.Product) primitive.ObjectID { return p.SupplierID })
	matchedSuppliers, err := s.suppliers.ListByIDs(ctx, supIDs)
	if err != nil {
		return nil, err
	}
	supplierName := make(map[primitive.ObjectID]string, len(matchedSuppliers))
	for _, sup := range matchedSuppliers {
		supplierName[sup.ID] = sup.Name
	}

	supplierSet := make(map[string]struct{})
	sizeSet := make(map[string]struct{})
	colorSet := make(map[string]struct{})
	minPrice := math.Inf(1)
	maxPrice := math.Inf(-1)

	for _, p := range matched {
		if name, ok := supplierName[p.SupplierID]; ok {
			supplierSet[name] = struct{}{}
		}

		for _, sz := range p.Sizes {
			if sz.Size != "" {
				sizeSet[sz.Size] = struct{}{}
			}
		}

		if p.Price < minPrice {
			minPrice = p.Price
		}
		if p.Price > maxPrice {
			maxPrice = p.Price
		}

		for _, color := range search.DetectColors(p.Name + " " + p.Description) {
			colorSet[color] = struct{}{}
		}
	}

	// The selection marker highlights the active facet in the UI; it does
	// not filter.
	categories := make([]domain.CategoryOption, 0, len(allCategories))
	for _, cat := range allCategories {
		selected := false
		if fc.Category != "" {
			selected = strings.EqualFold(cat.Name, fc.Category)
		} else if trimmed != "" {
			selected = strings.EqualFold(cat.Name, trimmed)
		}
		categories = append(categories, domain.CategoryOption{
			ID:         cat.ID,
			Name:       cat.Name,
			IsSelected: selected,
		})
	}

	sizes := setToSlice(sizeSet)
	search.SortSizes(sizes)

	suppliers := setToSlice(supplierSet)
	sort.Strings(suppliers)

	colors := setToSlice(colorSet)
	sort.Strings(colors)

	priceRange := domain.PriceRange{Min: fallbackMinPrice, Max: fallbackMaxPrice}
	if len(matched) > 0 {
		priceRange = domain.PriceRange{
			Min: int(math.Floor(minPrice)),
			Max: int(math.Ceil(maxPrice)),
		}
	}

	return &domain.FacetOptions{
		Categories:    categories,
		Suppliers:     suppliers,
		Sizes:         sizes,
		Colors:        colors,
		PriceRange:    priceRange,
		TotalProducts: len(matched),
	}, nil
}

// Suggestions runs a five-result search for the term and maps each match to
// an autocomplete entry. Short-query handling belongs to the HTTP surface.
func (s *searchService) Suggestions(ctx context.Context, query string) ([]domain.Suggestion, error) {
	results, err := s.Search(ctx, domain.SearchFilters{
		SearchQuery: query,
		Page:        1,
		Limit:       5,
	})
	if err != nil {
		return nil, err
	}

	suggestions := make([]domain.Suggestion, 0, len(results.Products))
	for _, p := range results.Products {
		suggestions = append(suggestions, domain.Suggestion{
			Name:     p.Name,
			Category: p.Category,
			Price:    p.Price,
		})
	}

	return suggestions, nil
}

func setToSlice(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	return out
}
