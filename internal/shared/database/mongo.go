package database

import (
	"context"
	"fmt"
	"time"

	"synagogue-manager/internal/shared/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoConfig holds connection settings for the document store.
type MongoConfig struct {
	URI             string        `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	DatabaseName    string        `env:"MONGODB_DATABASE" envDefault:"synagogue_manager"`
	ConnectTimeout  time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"30s"`
	MaxPoolSize     uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"100"`
	MinPoolSize     uint64        `env:"MONGODB_MIN_POOL_SIZE" envDefault:"2"`
	MaxConnIdleTime time.Duration `env:"MONGODB_MAX_CONN_IDLE" envDefault:"5m"`
}

// Connect opens a MongoDB client with pooling configured and verifies the
// connection with a ping before returning it.
func Connect(ctx context.Context, cfg MongoConfig, log logger.Logger) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime)

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	if log != nil {
		log.WithFields(map[string]interface{}{
			"database": cfg.DatabaseName,
		}).Info("MongoDB connection established")
	}

	return client, nil
}

// Disconnect closes the client, logging rather than returning late errors.
func Disconnect(client *mongo.Client, log logger.Logger) {
	if client == nil {
		return
	}
	if err := client.Disconnect(context.Background()); err != nil && log != nil {
		log.Errorf("Failed to disconnect MongoDB: %v", err)
	}
}
