package db

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogo/service-catalog/internal/core/domain"
	"github.com/catalogo/service-catalog/internal/infrastructure/security"
	"github.com/catalogo/service-catalog/internal/pkg/config"
)

func sqliteConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.DSN = ":memory:"
	return cfg
}

func TestOpen_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, sqliteConfig(), security.NewBcryptHasher(security.MinBcryptCost), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	assert.Equal(t, config.DriverSQLite, store.Driver())
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Migrate(ctx), "migrate is idempotent")
	require.NoError(t, store.Ping(ctx))

	u := &domain.User{Name: "Ana", Email: "ana@example.com", Password: "Secret1", Role: domain.RoleClient, Active: true}
	require.NoError(t, store.Users.Create(ctx, u))

	got, err := store.Users.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret1", got.PasswordHash)
	assert.True(t, security.NewBcryptHasher(security.MinBcryptCost).Verify("Secret1", got.PasswordHash))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	cfg := sqliteConfig()
	cfg.Database.Driver = "cassandra"
	_, err := Open(context.Background(), cfg, nil, zerolog.Nop())
	assert.ErrorContains(t, err, "unsupported driver")
}
