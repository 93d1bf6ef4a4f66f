// Package db selects and opens the catalog storage backend.
package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/catalogo/service-catalog/internal/core/ports"
	"github.com/catalogo/service-catalog/internal/infrastructure/db/gormdb"
	"github.com/catalogo/service-catalog/internal/infrastructure/db/mongo"
	"github.com/catalogo/service-catalog/internal/pkg/config"
)

type backend interface {
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// Store exposes the repositories of whichever backend DB_DRIVER selects.
type Store struct {
	Users    ports.UserRepository
	Services ports.ServiceRepository
	driver   string
	backend  backend
}

// Open connects to the configured backend. It never migrates.
func Open(ctx context.Context, cfg *config.Config, hasher ports.PasswordHasher, log zerolog.Logger) (*Store, error) {
	log = log.With().Str("component", "store").Str("driver", cfg.Database.Driver).Logger()

	switch cfg.Database.Driver {
	case config.DriverMongo:
		s, err := mongo.Open(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database}, hasher)
		if err != nil {
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected")
		return &Store{Users: s.Users, Services: s.Services, driver: cfg.Database.Driver, backend: s}, nil

	case config.DriverMySQL, config.DriverPostgres, config.DriverSQLite:
		gdb, err := gormdb.Open(ctx, gormdb.Config{
			Driver:   cfg.Database.Driver,
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Name:     cfg.Database.Name,
			DSN:      cfg.Database.DSN,
		}, log)
		if err != nil {
			return nil, err
		}
		s := gormdb.NewStore(gdb, hasher)
		log.Info().Str("database", cfg.Database.Name).Msg("connected")
		return &Store{Users: s.Users, Services: s.Services, driver: cfg.Database.Driver, backend: s}, nil

	default:
		return nil, fmt.Errorf("db: unsupported driver %q", cfg.Database.Driver)
	}
}

func (s *Store) Driver() string { return s.driver }

// Migrate creates or updates the schema (tables or indexes).
func (s *Store) Migrate(ctx context.Context) error { return s.backend.Migrate(ctx) }

func (s *Store) Ping(ctx context.Context) error { return s.backend.Ping(ctx) }

func (s *Store) Close() error { return s.backend.Close() }
