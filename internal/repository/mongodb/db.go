package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// DB is an explicitly constructed handle over the mongo database.
// It is created once at process start and injected into repositories.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to mongo at uri and returns a handle over database name.
func New(ctx context.Context, uri, name string) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &DB{client: client, db: client.Database(name)}, nil
}

// Collection returns named collection handle
func (d *DB) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

// EnsureIndexes creates the indexes the queries rely on. It is safe to call
// on every start.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	_, err := d.db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	_, err = d.db.Collection("orders").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "trackingNumber", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("orders indexes: %w", err)
	}

	return nil
}

// Close disconnects the underlying client.
func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}
