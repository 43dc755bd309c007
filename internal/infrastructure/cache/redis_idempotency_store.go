package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	appmsg "github.com/sobitas/backend/internal/application/messaging"
	"github.com/sobitas/backend/internal/infrastructure/config"
)

// RedisIdempotencyStore implements the notification IdempotencyStore using
// Redis SETNX. Suitable for distributed deployments where several instances
// must agree on which notifications already went out.
type RedisIdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisIdempotencyStore creates a new Redis-based idempotency store
func NewRedisIdempotencyStore(cfg config.RedisConfig) (*RedisIdempotencyStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisIdempotencyStore{
		client: client,
		ttl:    30 * 24 * time.Hour,
	}, nil
}

// NewRedisIdempotencyStoreWithClient creates a store with an existing Redis
// client. Useful for testing or when sharing a client across components.
func NewRedisIdempotencyStoreWithClient(client *redis.Client, ttl time.Duration) *RedisIdempotencyStore {
	if ttl == 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &RedisIdempotencyStore{
		client: client,
		ttl:    ttl,
	}
}

// Claim marks the notification key as dispatched. Returns true if this call
// won the claim, false if the key was already taken. SETNX makes the check
// and set a single atomic operation.
func (s *RedisIdempotencyStore) Claim(ctx context.Context, key string) (bool, error) {
	result, err := s.client.SetNX(ctx, key, "1", s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim notification key: %w", err)
	}
	return result, nil
}

// Close closes the Redis client
func (s *RedisIdempotencyStore) Close() error {
	return s.client.Close()
}

// Ensure RedisIdempotencyStore implements IdempotencyStore
var _ appmsg.IdempotencyStore = (*RedisIdempotencyStore)(nil)
