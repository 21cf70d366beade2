package repository

import (
	"context"
	"errors"
	"fmt"

	"stitchfront/internal/domain"
	"stitchfront/internal/search"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// FindOptions carries the sort/pagination parameters for a product query.
// WithScore requests the text match score projection required for relevance
// sorting.
type FindOptions struct {
	Sort      bson.D
	Skip      int64
	Limit     int64
	WithScore bool
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	Find(ctx context.Context, filter bson.D, opts FindOptions) ([]domain.Product, error)
	FindAll(ctx context.Context, filter bson.D) ([]domain.Product, error)
	Count(ctx context.Context, filter bson.D) (int64, error)
}

type productRepository struct {
	col *mongo.Collection
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *mongo.Database) ProductRepository {
	return &productRepository{col: db.Collection("products")}
}

// Create inserts a new product and backfills the generated id
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}

	if _, err := r.col.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update replaces an existing product document
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	result, err := r.col.ReplaceOne(ctx, bson.D{{Key: "_id", Value: product.ID}}, product)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a product
func (r *productRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindByID retrieves a product by id
func (r *productRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	product := &domain.Product{}
	err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// Find runs a filter with sort, skip and limit applied
func (r *productRepository) Find(ctx context.Context, filter bson.D, opts FindOptions) ([]domain.Product, error) {
	findOpts := options.Find()
	if len(opts.Sort) > 0 {
		findOpts.SetSort(opts.Sort)
	}
	if opts.Skip > 0 {
		findOpts.SetSkip(opts.Skip)
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}
	if opts.WithScore {
		findOpts.SetProjection(search.ScoreProjection())
	}

	cursor, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []domain.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

// FindAll loads every product matching the filter with no pagination. The
// facet pass depends on seeing the entire matched set.
func (r *productRepository) FindAll(ctx context.Context, filter bson.D) ([]domain.Product, error) {
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []domain.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

// Count counts products matching the filter, ignoring pagination
func (r *productRepository) Count(ctx context.Context, filter bson.D) (int64, error) {
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return total, nil
}
