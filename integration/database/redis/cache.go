package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/docuware/core/cache"
)

// Compile-time check that Cache implements cache.Cache.
var _ cache.Cache = (*Cache)(nil)

// Client is the subset of redis.Cmdable used by Cache.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Cache stores values in Redis with native key expiry.
type Cache struct {
	client Client
	prefix string
}

// CacheOption configures Cache.
type CacheOption func(*Cache)

// WithKeyPrefix namespaces every key.
func WithKeyPrefix(prefix string) CacheOption {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// NewCache wraps a Redis client as a cache.Cache.
func NewCache(client Client, opts ...CacheOption) *Cache {
	c := &Cache{client: client}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value for key or cache.ErrNotFound.
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", cache.ErrEmptyKey
	}

	v, err := c.client.Get(ctx, c.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", cache.ErrNotFound
		}
		return "", fmt.Errorf("redis get %q: %w", key, err)
	}
	return v, nil
}

// Set stores value under key. A non-positive ttl stores without expiry.
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if key == "" {
		return cache.ErrEmptyKey
	}
	if ttl < 0 {
		ttl = 0
	}

	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if key == "" {
		return cache.ErrEmptyKey
	}

	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}
