package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// ErrLocked is returned when another process holds the lock.
var ErrLocked = errors.New("lock held by another process")

// Connect opens a Redis client and verifies it with a ping.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// Idempotency remembers keys for a fixed TTL.
type Idempotency struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewIdempotency creates an idempotency guard storing keys under prefix.
func NewIdempotency(client *redis.Client, prefix string, ttl time.Duration) *Idempotency {
	return &Idempotency{client: client, prefix: prefix, ttl: ttl}
}

// Seen reports whether key has been marked and not yet expired.
func (i *Idempotency) Seen(ctx context.Context, key string) (bool, error) {
	n, err := i.client.Exists(ctx, i.prefix+key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Mark remembers key for the configured TTL.
func (i *Idempotency) Mark(ctx context.Context, key string) error {
	return i.client.Set(ctx, i.prefix+key, 1, i.ttl).Err()
}

// Locker serialises work across processes sharing one Redis.
type Locker struct {
	locker *redislock.Client
	ttl    time.Duration
}

// NewLocker creates a locker whose locks expire after ttl.
func NewLocker(client *redis.Client, ttl time.Duration) *Locker {
	return &Locker{locker: redislock.New(client), ttl: ttl}
}

// WithLock runs fn while holding key. It returns ErrLocked without running fn
// when the lock is already taken.
func (l *Locker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	lock, err := l.locker.Obtain(ctx, key, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return ErrLocked
	}
	if err != nil {
		return fmt.Errorf("failed to obtain lock %s: %w", key, err)
	}
	defer func() {
		_ = lock.Release(context.WithoutCancel(ctx))
	}()

	return fn(ctx)
}
