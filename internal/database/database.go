// Package database owns the MongoDB client.
//
// It handles:
//   - building client options from config
//   - wiring the command monitor (slow/failed command logs, latency metrics)
//   - connecting and pinging before the HTTP listener starts
//   - disconnecting on shutdown
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/tweteroo/internal/config"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Database wraps the driver client and the application database handle.
// Both are safe for concurrent use by every request.
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
	log    *zerolog.Logger
}

// New connects to MongoDB and pings it so startup fails fast when the
// database is unreachable.
func New(cfg *config.Config, logger *zerolog.Logger) (*Database, error) {
	connectTimeout := time.Duration(cfg.Database.ConnectTimeout) * time.Second

	opts := options.Client().
		ApplyURI(cfg.Database.URL).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(connectTimeout).
		SetMonitor(NewCommandMonitor(logger, cfg.Observability.Logging.SlowQueryThreshold))
	if cfg.Database.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.Database.MaxPoolSize)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Str("database", cfg.Database.Name).Msg("connected to the database")

	return &Database{
		Client: client,
		DB:     client.Database(cfg.Database.Name),
		log:    logger,
	}, nil
}

// Ping checks the primary is reachable.
func (db *Database) Ping(ctx context.Context) error {
	return db.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client, waiting for in-use connections until ctx ends.
func (db *Database) Close(ctx context.Context) error {
	db.log.Info().Msg("closing database connection")
	return db.Client.Disconnect(ctx)
}
