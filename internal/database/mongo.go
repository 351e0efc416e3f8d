// Package database manages the process-wide MongoDB connection.
// The connection is opened once at startup and handed to the store;
// the store itself never manages connection lifecycle.
package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/todovault/todovault/internal/config"
	"github.com/todovault/todovault/internal/errors"
)

const connectTimeout = 10 * time.Second

// Connect opens a MongoDB client for the configured URI and verifies the
// connection with a ping against the primary.
func Connect(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to mongodb at %s", cfg.MongoURI)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "failed to ping mongodb at %s", cfg.MongoURI)
	}

	return client, nil
}

// Disconnect tears down the client, bounded by the connect timeout.
func Disconnect(ctx context.Context, client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}
