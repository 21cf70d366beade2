package service

import (
	"context"
	"time"

	"stitchfront/internal/domain"
	"stitchfront/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryService defines the interface for category management
type CategoryService interface {
	Create(ctx context.Context, name string) (*domain.Category, error)
	Update(ctx context.Context, id primitive.ObjectID, name string) (*domain.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error)
}

type categoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	category := &domain.Category{
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id primitive.ObjectID, name string) (*domain.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.categories.Delete(ctx, id)
}

func (s *categoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *categoryService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	return s.categories.FindByID(ctx, id)
}

// SupplierService defines the interface for supplier management
type SupplierService interface {
	Create(ctx context.Context, supplier *domain.Supplier) error
	Update(ctx context.Context, supplier *domain.Supplier) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context) ([]domain.Supplier, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Supplier, error)
}

type supplierService struct {
	suppliers repository.SupplierRepository
}

// NewSupplierService creates a new instance of SupplierService
func NewSupplierService(suppliers repository.SupplierRepository) SupplierService {
	return &supplierService{suppliers: suppliers}
}

func (s *supplierService) Create(ctx context.Context, supplier *domain.Supplier) error {
	if supplier.CreatedAt.IsZero() {
		supplier.CreatedAt = time.Now()
	}
	return s.suppliers.Create(ctx, supplier)
}

func (s *supplierService) Update(ctx context.Context, supplier *domain.Supplier) error {
	return s.suppliers.Update(ctx, supplier)
}

func (s *supplierService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.suppliers.Delete(ctx, id)
}

func (s *supplierService) List(ctx context.Context) ([]domain.Supplier, error) {
	return s.suppliers.List(ctx)
}

func (s *supplierService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Supplier, error) {
	return s.suppliers.FindByID(ctx, id)
}
