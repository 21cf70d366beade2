package service

import (
	"context"
	"math"
	"time"

	"stitchfront/internal/domain"
	"stitchfront/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListParams carries pagination and ordering for catalog listings.
type ListParams struct {
	Page  int
	Limit int
	Sort  string
	Order string
}

// ProductPage is one page of catalog products with totals.
type ProductPage struct {
	Products   []domain.ProductView
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ProductService defines the interface for catalog product management
type ProductService interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProductView, error)
	List(ctx context.Context, params ListParams) (*ProductPage, error)
}

type productService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	suppliers repository.SupplierRepository,
) ProductService {
	return &productService{
		products:   products,
		categories: categories,
		suppliers:  suppliers,
	}
}

// listSortFields are the orderings a catalog listing accepts.
var listSortFields = map[string]bool{
	"name":       true,
	"price":      true,
	"created_at": true,
	"stock":      true,
}

// Create stores a new product, applying the default size list when none is
// given. Aggregate stock and per-size stock are independently authoritative;
// neither is derived from the other.
func (s *productService) Create(ctx context.Context, product *domain.Product) error {
	if len(product.Sizes) == 0 {
		product.Sizes = domain.DefaultSizes()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}

	return s.products.Create(ctx, product)
}

// Update replaces an existing product
func (s *productService) Update(ctx context.Context, product *domain.Product) error {
	return s.products.Update(ctx, product)
}

// Delete removes a product
func (s *productService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.products.Delete(ctx, id)
}

// GetByID retrieves a product with references expanded
func (s *productService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProductView, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	views, err := expandProducts(ctx, s.categories, s.suppliers, []domain.Product{*product})
	if err != nil {
		return nil, err
	}

	return &views[0], nil
}

// List returns a page of the catalog ordered by the requested field
func (s *productService) List(ctx context.Context, params ListParams) (*ProductPage, error) {
	page := params.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := params.Limit
	if limit < 1 {
		limit = DefaultLimit
	}

	sortField := params.Sort
	if !listSortFields[sortField] {
		sortField = "created_at"
	}
	order := -1
	if params.Order == "asc" {
		order = 1
	}

	total, err := s.products.Count(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	products, err := s.products.Find(ctx, bson.D{}, repository.FindOptions{
		Sort:  bson.D{{Key: sortField, Value: order}},
		Skip:  int64(page-1) * int64(limit),
		Limit: int64(limit),
	})
	if err != nil {
		return nil, err
	}

	views, err := expandProducts(ctx, s.categories, s.suppliers, products)
	if err != nil {
		return nil, err
	}

	return &ProductPage{
		Products:   views,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}
