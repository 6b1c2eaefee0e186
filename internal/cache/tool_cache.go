package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/logger"
)

// ToolCache stores tools in the distributed tier under namespaced keys
type ToolCache struct {
	cache Cache
	ttl   time.Duration
}

func NewToolCache(cache Cache, ttl time.Duration) *ToolCache {
	return &ToolCache{cache: cache, ttl: ttl}
}

func (c *ToolCache) Get(ctx context.Context, code domain.ToolCode) (*domain.Tool, error) {
	value, err := c.cache.Get(ctx, toolKey(code))
	if err != nil {
		return nil, err
	}
	tool := &domain.Tool{}
	if err := json.Unmarshal([]byte(value), tool); err != nil {
		// A corrupt entry behaves like a miss so the durable source can
		// repopulate it.
		logger.Warn("Discarding corrupt cached tool", "code", code, "error", err)
		return nil, ErrCacheMiss
	}
	return tool, nil
}

func (c *ToolCache) Store(ctx context.Context, tool *domain.Tool) error {
	data, err := json.Marshal(tool)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, toolKey(tool.Code), string(data), c.ttl)
}

func toolKey(code domain.ToolCode) string {
	return fmt.Sprintf("tool-%s", code)
}
