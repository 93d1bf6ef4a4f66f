// Package redis holds the Redis connection and the shared rate-limit store.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dialTimeout = 5 * time.Second

// Config points at the Redis instance shared by every API replica.
type Config struct {
	Addr     string
	Password string
	DB       int
	// Timeout bounds dialing and the initial ping.
	Timeout time.Duration
}

// Connect returns a client for cfg once the server answers a ping.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = dialTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.Timeout,
		// Rate-limit checks sit on the request path.
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// HealthCheck reports whether client still answers.
type HealthCheck struct {
	client *redis.Client
}

func NewHealthCheck(client *redis.Client) HealthCheck {
	return HealthCheck{client: client}
}

func (h HealthCheck) Ping(ctx context.Context) error {
	return h.client.Ping(ctx).Err()
}
