package library

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoConfig configures the MongoDB-backed library store.
type MongoConfig struct {
	URI        string        // Connection URI, default mongodb://localhost:27017
	Database   string        // Database name, default "gridlock"
	Collection string        // Collection name, default "puzzles"
	Timeout    time.Duration // Per-operation timeout, default 5s
}

// MongoStore keeps library documents in a MongoDB collection, one
// document per puzzle keyed by name. Safe for concurrent use.
type MongoStore struct {
	client  *mongo.Client
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoStore connects to MongoDB and verifies the connection with a
// ping before returning.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		cfg.URI = "mongodb://localhost:27017"
	}
	if cfg.Database == "" {
		cfg.Database = "gridlock"
	}
	if cfg.Collection == "" {
		cfg.Collection = "puzzles"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &MongoStore{
		client:  client,
		coll:    client.Database(cfg.Database).Collection(cfg.Collection),
		timeout: cfg.Timeout,
	}, nil
}

func (s *MongoStore) Get(ctx context.Context, name string) (*Document, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var doc Document
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find puzzle %q: %w", name, err)
	}
	return &doc, nil
}

func (s *MongoStore) Put(ctx context.Context, doc Document) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.Name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("store puzzle %q: %w", doc.Name, err)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]Document, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list puzzles: %w", err)
	}
	var docs []Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode puzzles: %w", err)
	}
	return docs, nil
}

func (s *MongoStore) Delete(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": name}); err != nil {
		return fmt.Errorf("delete puzzle %q: %w", name, err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
