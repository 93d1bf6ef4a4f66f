package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// countTimeout bounds one counter round trip on the request path.
const countTimeout = time.Second

// RateLimitStore is a fixed-window request counter shared by every API
// instance. It satisfies echo's middleware.RateLimiterStore.
// Key format: ratelimit:<scope>:<identifier>:<window_index>
type RateLimitStore struct {
	client *redis.Client
	scope  string
	limit  int64
	window time.Duration
	now    func() time.Time
}

// NewRateLimitStore allows limit requests per identifier in each window.
func NewRateLimitStore(client *redis.Client, scope string, limit int, window time.Duration) *RateLimitStore {
	return &RateLimitStore{
		client: client,
		scope:  scope,
		limit:  int64(limit),
		window: window,
		now:    time.Now,
	}
}

// Allow counts one request for identifier and reports whether it is still
// within the current window's budget.
func (s *RateLimitStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), countTimeout)
	defer cancel()

	key := s.key(identifier, s.now())

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, s.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit count: %w", err)
	}
	return incr.Val() <= s.limit, nil
}

func (s *RateLimitStore) key(identifier string, now time.Time) string {
	idx := now.UnixNano() / int64(s.window)
	return fmt.Sprintf("ratelimit:%s:%s:%d", s.scope, identifier, idx)
}
