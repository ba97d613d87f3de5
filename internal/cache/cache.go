// Package cache stores JSON-encoded read results in Redis with a TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Taichi-iskw/tagscribe/internal/logger"
)

// Cache is a best-effort key/value store for read models
type Cache interface {
	// Get decodes the cached value into dst and reports whether it was found
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Incr atomically increments an integer key and returns the new value
	Incr(ctx context.Context, key string) (int64, error)
	Close() error
}

type redisCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
}

// NewRedis connects to the Redis server at url (redis://host:port/db) and pings it
func NewRedis(ctx context.Context, log *logger.Logger, url string) (Cache, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}

	rdb := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisCache{
		log:    log.With("component", "RedisCache"),
		rdb:    rdb,
		prefix: "tagscribe:",
	}, nil
}

func (c *redisCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// A stale shape is treated as a miss
		c.log.Warn("discarding undecodable cache entry", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.prefix+key, raw, ttl).Err()
}

func (c *redisCache) Incr(ctx context.Context, key string) (int64, error) {
	return c.rdb.Incr(ctx, c.prefix+key).Result()
}

func (c *redisCache) Close() error {
	return c.rdb.Close()
}

// Nop is a cache that never stores anything
type Nop struct{}

func (Nop) Get(context.Context, string, any) (bool, error)        { return false, nil }
func (Nop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Nop) Incr(context.Context, string) (int64, error)           { return 0, nil }
func (Nop) Close() error                                          { return nil }
