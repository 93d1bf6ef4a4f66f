package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/catalogo/service-catalog/internal/infrastructure/db/redis"
)

// NewRateLimiterStore returns a Redis-backed store shared across instances,
// or a per-process token bucket sized to the same budget when client is nil.
func NewRateLimiterStore(client *goredis.Client, scope string, limit int, window time.Duration, log zerolog.Logger) echomiddleware.RateLimiterStore {
	if client != nil {
		return failOpen{store: redis.NewRateLimitStore(client, scope, limit, window), log: log}
	}
	return echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(limit) / window.Seconds()),
		Burst:     limit,
		ExpiresIn: window,
	})
}

// failOpen admits requests while the shared store is unreachable.
type failOpen struct {
	store echomiddleware.RateLimiterStore
	log   zerolog.Logger
}

func (f failOpen) Allow(identifier string) (bool, error) {
	ok, err := f.store.Allow(identifier)
	if err != nil {
		f.log.Warn().Err(err).Msg("rate limit store unavailable")
		return true, nil
	}
	return ok, nil
}

// RateLimit limits requests per client IP using store.
func RateLimit(store echomiddleware.RateLimiterStore, message string) echo.MiddlewareFunc {
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "unable to identify client").SetInternal(err)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, message)
		},
	})
}
