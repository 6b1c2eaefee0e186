package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Loader is the in-process cache tier: a TTL map with stampede protection.
// Concurrent gets for the same missing key share a single in-flight load;
// failed loads are never cached, so a later write to the source is observed
// promptly.
type Loader[K comparable, V any] struct {
	ttl  time.Duration
	load func(ctx context.Context, key K) (V, error)

	mu      sync.RWMutex
	entries map[K]entry[V]
	group   singleflight.Group

	now func() time.Time // test hook
}

// NewLoader builds a Loader over the given load function. Entries expire
// ttl after they were written; an expired entry is equivalent to absence.
func NewLoader[K comparable, V any](ttl time.Duration, load func(ctx context.Context, key K) (V, error)) *Loader[K, V] {
	return &Loader[K, V]{
		ttl:     ttl,
		load:    load,
		entries: make(map[K]entry[V]),
		now:     time.Now,
	}
}

// Get returns the cached value for key, loading it through at most one
// concurrent call to the load function on a miss.
func (l *Loader[K, V]) Get(ctx context.Context, key K) (V, error) {
	if value, ok := l.lookup(key); ok {
		return value, nil
	}

	result, err, _ := l.group.Do(fmt.Sprint(key), func() (any, error) {
		// Re-check under the flight: another caller may have completed the
		// load between our miss and acquiring the flight.
		if value, ok := l.lookup(key); ok {
			return value, nil
		}

		value, err := l.load(ctx, key)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.entries[key] = entry[V]{value: value, expiresAt: l.now().Add(l.ttl)}
		l.mu.Unlock()
		return value, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return result.(V), nil
}

func (l *Loader[K, V]) lookup(key K) (V, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	e, ok := l.entries[key]
	if !ok || l.now().After(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}
