package database

import (
	"context"
	"fmt"
	"time"

	"stitchfront/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Service wraps the Mongo client and the storefront database handle
type Service struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to the document store and verifies the connection
func New(ctx context.Context, cfg config.MongoConfig) (*Service, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &Service{
		client: client,
		db:     client.Database(cfg.Database),
	}, nil
}

// DB returns the database handle
func (s *Service) DB() *mongo.Database {
	return s.db
}

// Health reports connection status for the health endpoint
func (s *Service) Health(ctx context.Context) map[string]string {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.client.Ping(pingCtx, nil); err != nil {
		return map[string]string{
			"status": "down",
			"error":  err.Error(),
		}
	}

	return map[string]string{"status": "up"}
}

// Close disconnects the client
func (s *Service) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
