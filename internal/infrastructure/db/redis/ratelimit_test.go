package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMini(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	return miniredis.RunT(t)
}

func TestRateLimitStore_FixedWindow(t *testing.T) {
	mr := newMini(t)
	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewRateLimitStore(client, "auth", 2, 15*time.Minute)
	store.now = func() time.Time { return clock }

	for i := 0; i < 2; i++ {
		ok, err := store.Allow("10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok, "request %d should pass", i+1)
	}
	ok, err := store.Allow("10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok, "third request in the window must be refused")

	ok, err = store.Allow("10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok, "other clients keep their own budget")

	clock = clock.Add(15 * time.Minute)
	ok, err = store.Allow("10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok, "next window starts a fresh budget")
}

func TestRateLimitStore_KeysExpire(t *testing.T) {
	mr := newMini(t)
	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	store := NewRateLimitStore(client, "api", 10, time.Minute)
	_, err = store.Allow("c1")
	require.NoError(t, err)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.Contains(t, keys[0], "ratelimit:api:c1:")
	assert.Equal(t, time.Minute, mr.TTL(keys[0]))
}

func TestRateLimitStore_BackendDown(t *testing.T) {
	mr := newMini(t)
	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	mr.Close()
	store := NewRateLimitStore(client, "api", 10, time.Minute)
	_, err = store.Allow("c1")
	assert.Error(t, err)
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	assert.ErrorContains(t, err, "redis: ping 127.0.0.1:1")
}

func TestHealthCheck(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	check := NewHealthCheck(client)
	require.NoError(t, check.Ping(context.Background()))

	mr.Close()
	assert.Error(t, check.Ping(context.Background()))
}
