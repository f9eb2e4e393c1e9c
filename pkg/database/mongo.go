package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/tair/retail-dashboard/pkg/apperror"
	"github.com/tair/retail-dashboard/pkg/logger"
)

// MongoConfig holds document store connection settings
type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// NewMongoConnection connects, pings the primary and returns the database handle
func NewMongoConnection(ctx context.Context, cfg MongoConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.Timeout))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %v: %w", err, apperror.ErrConnection)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongo: %v: %w", err, apperror.ErrConnection)
	}

	logger.Logger.Info().
		Str("database", cfg.Database).
		Msg("Connected to MongoDB")
	return client, client.Database(cfg.Database), nil
}

// MapMongoError tags driver network and timeout errors as connection failures
func MapMongoError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return fmt.Errorf("%v: %w", err, apperror.ErrConnection)
	}
	return err
}
