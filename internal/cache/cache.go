package cache

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"errors"        // Error inspection
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache is a JSON read-through cache in Redis. A nil *Cache is valid and
// never hits, so callers can run without Redis.
type Cache struct {
	rdb    *redis.Client // Redis client
	prefix string        // Namespace prepended to every key
	ttl    time.Duration // Lifetime of cached entries
}

// New returns a Cache storing keys under prefix for ttl
func New(rdb *redis.Client, prefix string, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (c *Cache) key(k string) string {
	return c.prefix + k // Namespaced key
}

// Get retrieves a value from Redis and unmarshals it into dest
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil {
		return false, nil // Caching disabled
	}
	val, err := c.rdb.Get(ctx, c.key(key)).Bytes() // Get value from Redis
	if errors.Is(err, redis.Nil) {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, err // Corrupt entry
	}
	return true, nil
}

// Set stores a value in Redis with the cache TTL
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	if c == nil {
		return nil // Caching disabled
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return c.rdb.Set(ctx, c.key(key), b, c.ttl).Err() // Set value in Redis with TTL
}

// Delete removes keys from Redis
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil // Nothing to do
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k) // Namespace each key
	}
	return c.rdb.Del(ctx, full...).Err() // Delete keys from Redis
}
