package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisIdempotencyStoreWithClient_DefaultTTL(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisIdempotencyStoreWithClient(client, 0)
	assert.Equal(t, 30*24*time.Hour, store.ttl)

	store = NewRedisIdempotencyStoreWithClient(client, time.Minute)
	assert.Equal(t, time.Minute, store.ttl)
}

func TestRedisIdempotencyStore_ClaimWrapsConnectionError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisIdempotencyStoreWithClient(client, time.Minute)
	claimed, err := store.Claim(context.Background(), "notif:test:new")

	require.Error(t, err)
	assert.False(t, claimed)
	assert.Contains(t, err.Error(), "failed to claim notification key")
}
