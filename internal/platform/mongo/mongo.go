// Package mongo connects to the document store and manages its indexes.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Collection names.
const (
	CollectionUsers      = "users"
	CollectionCategories = "categories"
	CollectionAuthors    = "authors"
	CollectionContent    = "content_items"
)

const (
	defaultConnectTimeout = 30 * time.Second
	retryBase             = 500 * time.Millisecond
	serverSelection       = 5 * time.Second
)

// Config holds the connection settings.
type Config struct {
	URL            string
	Database       string
	ConnectTimeout time.Duration
}

// Store owns the client for the process lifetime.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect creates a client and pings the primary with fibonacci backoff
// until it answers or ConnectTimeout elapses.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	client, err := mongo.Connect(options.Client().
		ApplyURI(cfg.URL).
		SetServerSelectionTimeout(serverSelection))
	if err != nil {
		return nil, fmt.Errorf("invalid mongo configuration: %w", err)
	}

	attempt := 0
	backoff := retry.WithMaxDuration(timeout, retry.NewFibonacci(retryBase))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			slog.WarnContext(ctx, "mongo ping failed, retrying", "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo connect failed after %d attempts: %w", attempt, err)
	}

	slog.InfoContext(ctx, "mongo connection successful", "database", cfg.Database)
	return &Store{client: client, db: client.Database(cfg.Database)}, nil
}

// NewStore wraps an existing client.
func NewStore(client *mongo.Client, database string) *Store {
	return &Store{client: client, db: client.Database(database)}
}

// Database returns the handle passed to every adapter.
func (s *Store) Database() *mongo.Database {
	return s.db
}

// Ping checks that the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Indexer is implemented by adapters that declare indexes on their collection.
type Indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// EnsureIndexes runs every indexer and joins their failures.
func EnsureIndexes(ctx context.Context, indexers ...Indexer) error {
	var errs []error
	for _, ix := range indexers {
		if err := ix.EnsureIndexes(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// IsDuplicateKey reports whether err is a unique index violation.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// IsNoDocuments reports whether err means no document matched.
func IsNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
