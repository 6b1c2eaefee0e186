package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss indicates the key is absent from the distributed cache.
// An expired entry is indistinguishable from one that never existed.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the distributed key/value tier. Implementations are best-effort:
// any failure is reported as an error but callers treat it like a miss and
// fall through to the next tier.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Disabled is a Cache that always misses. It stands in for the distributed
// tier when the cache server is unreachable at startup.
type Disabled struct{}

func (Disabled) Get(ctx context.Context, key string) (string, error) {
	return "", ErrCacheMiss
}

func (Disabled) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return nil
}
