// Package mongo implements storage.Storage on top of MongoDB using the
// official driver. A single client (and therefore a single connection pool)
// is shared by all requests.
package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"sentiment/pkg/domain"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Options defines the configuration parameters for the MongoDB connection.
type Options struct {
	// URI is the MongoDB connection string (mongodb:// or mongodb+srv://)
	URI string
	// Database is the name of the database holding the posts collection
	Database string
	// Collection is the name of the posts collection
	Collection string
	// MaxPoolSize is the maximum number of connections kept per server
	MaxPoolSize uint64
	// MinPoolSize is the number of connections kept open while idle
	MinPoolSize uint64
	// ConnectTimeout bounds establishing a single connection
	ConnectTimeout time.Duration
	// ServerSelectionTimeout bounds finding a server able to serve an operation
	ServerSelectionTimeout time.Duration
	// Logger receives the driver's log events; nil disables driver logging
	Logger *slog.Logger
}

// Mongo implements storage.Storage for MongoDB.
type Mongo struct {
	// Client is the underlying driver client owning the connection pool.
	Client *mongo.Client
	// Collection is the posts collection all queries run against.
	Collection *mongo.Collection
}

// New creates a MongoDB client from options. The driver connects lazily, so
// an unreachable server surfaces on the first query (or Ping) rather than
// here; an invalid URI is reported immediately.
func New(ctx context.Context, opts Options) (*Mongo, error) {
	clientOpts := options.Client().ApplyURI(opts.URI)
	if opts.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(opts.MaxPoolSize)
	}
	if opts.MinPoolSize > 0 {
		clientOpts.SetMinPoolSize(opts.MinPoolSize)
	}
	if opts.ConnectTimeout > 0 {
		clientOpts.SetConnectTimeout(opts.ConnectTimeout)
	}
	if opts.ServerSelectionTimeout > 0 {
		clientOpts.SetServerSelectionTimeout(opts.ServerSelectionTimeout)
	}
	if opts.Logger != nil {
		clientOpts.SetLoggerOptions(options.Logger().
			SetSink(&logSink{logger: opts.Logger}).
			SetComponentLevel(options.LogComponentCommand, options.LogLevelDebug).
			SetComponentLevel(options.LogComponentConnection, options.LogLevelInfo))
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("could not create mongo client: %w", err)
	}

	return &Mongo{
		Client:     client,
		Collection: client.Database(opts.Database).Collection(opts.Collection),
	}, nil
}

// Ping checks that the primary is reachable.
func (m *Mongo) Ping(ctx context.Context) error {
	if err := m.Client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("could not ping mongo: %w", err)
	}

	return nil
}

// Close disconnects the client, closing every pooled connection.
func (m *Mongo) Close(ctx context.Context) error {
	if err := m.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("could not disconnect mongo client: %w", err)
	}

	return nil
}

// EnsureIndexes creates the index backing ticker lookups. It is idempotent.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	_, err := m.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: domain.TickerField, Value: 1}},
		Options: options.Index().SetName("ticker_1"),
	})
	if err != nil {
		return fmt.Errorf("could not create ticker index: %w", err)
	}

	return nil
}
