// Package cli implements the catalog command line: serve, migrate,
// create-superadmin and seed.
package cli

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/catalogo/service-catalog/internal/infrastructure/db"
	"github.com/catalogo/service-catalog/internal/infrastructure/security"
	"github.com/catalogo/service-catalog/internal/pkg/config"
	"github.com/catalogo/service-catalog/pkg/logger"
)

const serviceName = "service-catalog"

// NewRootCommand assembles the catalog binary.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "catalog",
		Short: "Multi-tenant service catalog API",
		Long: `Service catalog backend: user accounts with superadmin, admin and client
roles, and a catalog of services owned by admins.

Configuration is read from the environment (PORT, JWT_SECRET, DB_DRIVER, ...).

Examples:
  catalog migrate                                  # create tables or indexes
  catalog create-superadmin --email root@acme.io   # first superadmin
  catalog seed                                     # sample catalog
  catalog serve                                    # start the HTTP API`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newCreateSuperadminCommand())
	root.AddCommand(newSeedCommand())
	return root
}

// env is what every command needs before doing its work.
type env struct {
	cfg    *config.Config
	log    zerolog.Logger
	hasher *security.BcryptHasher
}

func setup(ctx context.Context, cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
		Output:  cmd.ErrOrStderr(),
	})
	log := logger.Get()
	return &env{
		cfg:    cfg,
		log:    log.With().Str("command", cmd.Name()).Logger(),
		hasher: security.NewBcryptHasher(cfg.BcryptCost),
	}, nil
}

func (e *env) openStore(ctx context.Context) (*db.Store, error) {
	return db.Open(ctx, e.cfg, e.hasher, e.log)
}
