// Package mongo is the document-store catalog backend.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/catalogo/service-catalog/internal/core/ports"
)

const (
	defaultTimeout = 10 * time.Second
	appName        = "service-catalog"

	collectionUsers    = "users"
	collectionServices = "services"
	collectionCounters = "counters"
)

// Config selects the server and database holding the catalog.
type Config struct {
	URI      string
	Database string
	// Timeout bounds server selection and the initial ping.
	Timeout time.Duration
}

// Open connects to cfg.URI and returns a Store over cfg.Database. The
// connection is verified with a ping before returning.
func Open(ctx context.Context, cfg Config, hasher ports.PasswordHasher) (*Store, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}

	store := NewStore(client.Database(cfg.Database), hasher)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("mongo: ping %s: %w", cfg.Database, err)
	}
	return store, nil
}

// Store bundles the Mongo repositories around one database.
type Store struct {
	db       *mongo.Database
	Users    *UserRepository
	Services *ServiceRepository
}

func NewStore(db *mongo.Database, hasher ports.PasswordHasher) *Store {
	seq := newSequencer(db)
	users := NewUserRepository(db, hasher, seq)
	return &Store{
		db:       db,
		Users:    users,
		Services: NewServiceRepository(db, users, seq),
	}
}

// Migrate creates the collection indexes. Safe to run repeatedly.
func (s *Store) Migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.Users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	if err := s.Services.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("service indexes: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return s.db.Client().Disconnect(ctx)
}
