package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// defaultMongoDatabase is used when neither the config nor the URI names one.
const defaultMongoDatabase = "fundbridge"

// Mongo is a Handle backed by a MongoDB client.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

func connectMongo(ctx context.Context, cfg Config) (*Mongo, error) {
	cs, err := connstring.ParseAndValidate(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mongodb URI: %w", err)
	}

	name := mongoDatabaseName(cfg.Name, cs.Database)

	opts := options.Client().ApplyURI(cfg.URL)
	if cfg.Timeout > 0 {
		opts.SetServerSelectionTimeout(cfg.Timeout)
		opts.SetConnectTimeout(cfg.Timeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongodb client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Mongo{client: client, db: client.Database(name)}, nil
}

func mongoDatabaseName(configured, fromURI string) string {
	switch {
	case configured != "":
		return configured
	case fromURI != "":
		return fromURI
	default:
		return defaultMongoDatabase
	}
}

// Driver returns DriverMongo.
func (m *Mongo) Driver() string { return DriverMongo }

// Ping checks connectivity against the primary.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Database returns the application database.
func (m *Mongo) Database() *mongo.Database {
	return m.db
}
