package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/logger"
)

// HolidayCache stores the holiday set for a calendar year
type HolidayCache struct {
	cache Cache
	ttl   time.Duration
}

func NewHolidayCache(cache Cache, ttl time.Duration) *HolidayCache {
	return &HolidayCache{cache: cache, ttl: ttl}
}

func (c *HolidayCache) Get(ctx context.Context, year int) ([]domain.Holiday, error) {
	value, err := c.cache.Get(ctx, holidayKey(year))
	if err != nil {
		return nil, err
	}
	var holidays []domain.Holiday
	if err := json.Unmarshal([]byte(value), &holidays); err != nil {
		logger.Warn("Discarding corrupt cached holidays", "year", year, "error", err)
		return nil, ErrCacheMiss
	}
	return holidays, nil
}

func (c *HolidayCache) Store(ctx context.Context, year int, holidays []domain.Holiday) error {
	data, err := json.Marshal(holidays)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, holidayKey(year), string(data), c.ttl)
}

func holidayKey(year int) string {
	return fmt.Sprintf("holidays-%d", year)
}
