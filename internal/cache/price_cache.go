package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/logger"
)

// RentalPriceCache stores price rows in the distributed tier
type RentalPriceCache struct {
	cache Cache
	ttl   time.Duration
}

func NewRentalPriceCache(cache Cache, ttl time.Duration) *RentalPriceCache {
	return &RentalPriceCache{cache: cache, ttl: ttl}
}

func (c *RentalPriceCache) Get(ctx context.Context, toolType domain.ToolType) (*domain.RentalPrice, error) {
	value, err := c.cache.Get(ctx, priceKey(toolType))
	if err != nil {
		return nil, err
	}
	price := &domain.RentalPrice{}
	if err := json.Unmarshal([]byte(value), price); err != nil {
		logger.Warn("Discarding corrupt cached rental price", "type", toolType, "error", err)
		return nil, ErrCacheMiss
	}
	return price, nil
}

func (c *RentalPriceCache) Store(ctx context.Context, price *domain.RentalPrice) error {
	data, err := json.Marshal(price)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, priceKey(price.Type), string(data), c.ttl)
}

func priceKey(toolType domain.ToolType) string {
	return fmt.Sprintf("rentalPrice-%s", toolType)
}
