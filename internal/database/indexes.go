package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ProductIndexes returns the index models for the products collection. The
// text index backs relevance search; categoryId keeps the text-or-category
// disjunction fully index-covered.
func ProductIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "description", Value: "text"},
			},
			Options: options.Index().SetName("product_text_search"),
		},
		{
			Keys: bson.D{{Key: "categoryId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "supplierId", Value: 1}},
		},
	}
}

// CategoryIndexes returns the index models for the categories collection.
func CategoryIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
}

// UserIndexes returns the index models for the users collection.
func UserIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
}

// EnsureIndexes creates all collection indexes, bringing storage to a known
// state at boot
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	collections := map[string][]mongo.IndexModel{
		"products":   ProductIndexes(),
		"categories": CategoryIndexes(),
		"users":      UserIndexes(),
	}

	for name, models := range collections {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", name, err)
		}
		logger.Info("Indexes ensured",
			zap.String("collection", name),
			zap.Int("count", len(models)),
		)
	}

	return nil
}
