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
	ErrSupplierNotFound = errors.New("supplier not found")
)

// SupplierRepository defines the interface for supplier data access
type SupplierRepository interface {
	Create(ctx context.Context, supplier *domain.Supplier) error
	Update(ctx context.Context, supplier *domain.Supplier) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context) ([]domain.Supplier, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Supplier, error)
	FindByName(ctx context.Context, name string) (*domain.Supplier, error)
	ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Supplier, error)
}

type supplierRepository struct {
	col *mongo.Collection
}

// NewSupplierRepository creates a new instance of SupplierRepository
func NewSupplierRepository(db *mongo.Database) SupplierRepository {
	return &supplierRepository{col: db.Collection("suppliers")}
}

// Create inserts a new supplier
func (r *supplierRepository) Create(ctx context.Context, supplier *domain.Supplier) error {
	if supplier.ID.IsZero() {
		supplier.ID = primitive.NewObjectID()
	}

	if _, err := r.col.InsertOne(ctx, supplier); err != nil {
		return fmt.Errorf("failed to create supplier: %w", err)
	}

	return nil
}

// Update replaces an existing supplier document
func (r *supplierRepository) Update(ctx context.Context, supplier *domain.Supplier) error {
	result, err := r.col.ReplaceOne(ctx, bson.D{{Key: "_id", Value: supplier.ID}}, supplier)
	if err != nil {
		return fmt.Errorf("failed to update supplier: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrSupplierNotFound
	}

	return nil
}

// Delete removes a supplier
func (r *supplierRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrSupplierNotFound
	}

	return nil
}

// List retrieves all suppliers sorted by name
func (r *supplierRepository) List(ctx context.Context) ([]domain.Supplier, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer cursor.Close(ctx)

	suppliers := []domain.Supplier{}
	if err := cursor.All(ctx, &suppliers); err != nil {
		return nil, fmt.Errorf("failed to decode suppliers: %w", err)
	}

	return suppliers, nil
}

// FindByID retrieves a supplier by id
func (r *supplierRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Supplier, error) {
	supplier := &domain.Supplier{}
	err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(supplier)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("failed to find supplier by ID: %w", err)
	}

	return supplier, nil
}

// FindByName resolves a supplier by case-insensitive exact name match
func (r *supplierRepository) FindByName(ctx context.Context, name string) (*domain.Supplier, error) {
	supplier := &domain.Supplier{}
	filter := bson.D{{Key: "name", Value: search.AnchoredName(name)}}
	err := r.col.FindOne(ctx, filter).Decode(supplier)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("failed to find supplier by name: %w", err)
	}

	return supplier, nil
}

// ListByIDs retrieves the suppliers for a set of ids
func (r *supplierRepository) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Supplier, error) {
	if len(ids) == 0 {
		return []domain.Supplier{}, nil
	}

	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers by ids: %w", err)
	}
	defer cursor.Close(ctx)

	suppliers := []domain.Supplier{}
	if err := cursor.All(ctx, &suppliers); err != nil {
		return nil, fmt.Errorf("failed to decode suppliers: %w", err)
	}

	return suppliers, nil
}
