package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/catalogo/service-catalog/internal/api"
	"github.com/catalogo/service-catalog/internal/api/handler"
	"github.com/catalogo/service-catalog/internal/core/service"
	"github.com/catalogo/service-catalog/internal/infrastructure/db/redis"
	"github.com/catalogo/service-catalog/internal/infrastructure/security"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API on PORT. The schema is not touched: run
"catalog migrate" beforehand.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	cfg, log := e.cfg, e.log
	if err := cfg.ValidateServer(); err != nil {
		log.Error().Err(err).Msg("refusing to start")
		return err
	}

	tokens, err := security.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	store, err := e.openStore(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to open store")
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("closing store")
		}
	}()

	checks := map[string]handler.Pinger{"database": store}

	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("failed to connect to redis")
			return err
		}
		defer rdb.Close()
		checks["redis"] = redis.NewHealthCheck(rdb)
	}

	authService := service.NewAuthService(store.Users, e.hasher, tokens)
	catalogService := service.NewCatalogService(store.Services, store.Users)

	router := api.NewRouter(api.Deps{
		Config:  cfg,
		Log:     log,
		Auth:    authService,
		Catalog: catalogService,
		Redis:   rdb,
		Checks:  checks,
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().
			Str("addr", srv.Addr).
			Str("env", cfg.Env).
			Str("driver", store.Driver()).
			Bool("redis", rdb != nil).
			Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("http server stopped with error")
		return err
	}
	log.Info().Msg("http server stopped")
	return nil
}
