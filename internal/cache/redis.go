package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"toolrental-backend/internal/config"
	"toolrental-backend/internal/logger"
)

// RedisCache adapts a Redis server to the Cache interface. Every call runs
// under its own timeout; a timeout is treated like any other failure and
// surfaces as an error the caller degrades on.
type RedisCache struct {
	client  *redis.Client
	timeout time.Duration
}

// NewRedisCache connects to Redis and verifies the connection with a ping.
// A server that cannot be reached returns an error; callers fall back to a
// Disabled cache rather than failing the service.
func NewRedisCache(cfg config.RedisConfig, callTimeout time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("unable to connect to the cache at %s: %w", cfg.Addr, err)
	}

	return &RedisCache{client: client, timeout: callTimeout}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	logger.CacheCall("get", key)
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	if err != nil {
		logger.CacheResult("get", key, err)
		return "", err
	}
	logger.CacheResult("get", key, nil)
	return value, nil
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	logger.CacheCall("set", key, "ttl", ttl)
	err := c.client.Set(ctx, key, value, ttl).Err()
	logger.CacheResult("set", key, err)
	return err
}

// Close releases the underlying client
func (c *RedisCache) Close() error {
	return c.client.Close()
}
