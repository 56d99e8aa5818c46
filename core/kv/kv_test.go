package kv

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client, err := Connect(context.Background(), Config{Addr: addr})
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestConfig_Enabled(t *testing.T) {
	assert.False(t, Config{}.Enabled())
	assert.True(t, Config{Addr: "localhost:6379"}.Enabled())
}

func TestIdempotency_SeenAfterMark(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	guard := NewIdempotency(client, "test:webhook:", time.Minute)
	key := uuid.NewString()
	defer client.Del(ctx, "test:webhook:"+key)

	seen, err := guard.Seen(ctx, key)
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, guard.Mark(ctx, key))

	seen, err = guard.Seen(ctx, key)
	require.NoError(t, err)
	assert.True(t, seen)

	ttl, err := client.TTL(ctx, "test:webhook:"+key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestLocker_WithLock(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	locker := NewLocker(client, time.Minute)
	key := "test:lock:" + uuid.NewString()

	ran := false
	err := locker.WithLock(ctx, key, func(ctx context.Context) error {
		// A second holder is refused while the first runs.
		inner := locker.WithLock(ctx, key, func(context.Context) error { return nil })
		assert.True(t, errors.Is(inner, ErrLocked))
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)

	// Released afterwards.
	err = locker.WithLock(ctx, key, func(context.Context) error { return nil })
	assert.NoError(t, err)
}
