package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements Cache backed by Redis, for server deployments that
// run more than one texrig instance behind the same analysis workspace —
// the cache must be shared so instance B can reuse a report that instance
// A already computed.
type RedisCache struct {
	client *redis.Client
}

// RedisConfig configures a RedisCache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisCache connects to Redis and returns a Cache backed by it.
// The connection is verified with a PING before returning.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, wrapRedisErr(err)
	}
	return &RedisCache{client: client}, nil
}

// Get retrieves a value from Redis.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, wrapRedisErr(err)
	}
	return data, true, nil
}

// Set stores a value in Redis. A ttl of zero stores it without expiration.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return wrapRedisErr(err)
	}
	return nil
}

// Delete removes a value from Redis.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return wrapRedisErr(err)
	}
	return nil
}

// Close closes the underlying Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// wrapRedisErr marks err as a backend failure so RetryWithBackoff will
// retry it; Redis-specific transient errors stay distinguishable from
// permanent cache misses (redis.Nil, handled separately above).
func wrapRedisErr(err error) error {
	if err == nil {
		return nil
	}
	return Retryable(err)
}

// Ensure RedisCache implements Cache.
var _ Cache = (*RedisCache)(nil)
