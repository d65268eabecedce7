package store

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	gerr "github.com/kingfoodmart/kfm-insights/internal/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Config defines configurations to connect to the product document store.
type Config struct {
	URI                    string        `mapstructure:"uri"`
	Database               string        `mapstructure:"database"`
	Collection             string        `mapstructure:"collection"`
	ConnectTimeout         time.Duration `mapstructure:"connect_timeout"`
	ServerSelectionTimeout time.Duration `mapstructure:"server_selection_timeout"`
	FetchTimeout           time.Duration `mapstructure:"fetch_timeout"`
}

// MongoStore implements methods to read product documents from MongoDB.
type MongoStore struct {
	client *mongo.Client
	c      Config
}

// New connects to the document store and verifies the connection with a
// ping before returning the store.
func New(ctx context.Context, cfg Config) (*MongoStore, error) {
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
	if cfg.ServerSelectionTimeout == 0 {
		cfg.ServerSelectionTimeout = 10 * time.Second
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = 2 * time.Minute
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("couldn't open document store: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ServerSelectionTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: ping failed: %v", gerr.ErrSourceUnavailable, err)
	}

	slog.Default().InfoContext(ctx, "connected to product document store",
		slog.String("database", cfg.Database),
		slog.String("collection", cfg.Collection),
	)

	return &MongoStore{client: client, c: cfg}, nil
}

// Identity keys the snapshot cache by source.
func (ms *MongoStore) Identity() string {
	return ms.c.Database + "/" + ms.c.Collection
}

func (ms *MongoStore) Close(ctx context.Context) error {
	return ms.client.Disconnect(ctx)
}

func (ms *MongoStore) collection() *mongo.Collection {
	return ms.client.Database(ms.c.Database).Collection(ms.c.Collection)
}
