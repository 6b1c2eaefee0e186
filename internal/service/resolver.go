package service

import (
	"context"
	"errors"
	"time"

	"toolrental-backend/internal/cache"
	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/logger"
	"toolrental-backend/internal/repository"
)

type rentalResolver struct {
	tools  *cache.Loader[domain.ToolCode, *domain.Tool]
	prices *cache.Loader[domain.ToolType, *domain.RentalPrice]
}

// NewRentalResolver builds the tiered tool/price resolver. Each lookup
// consults the in-process loader, then the distributed cache, then the
// durable store; store hits are written back to the distributed cache
// best-effort. A miss at every tier is repository.ErrNotFound and is never
// cached, so a later inventory write is observed promptly.
func NewRentalResolver(repo repository.ToolRepository, toolCache *cache.ToolCache, priceCache *cache.RentalPriceCache, localTTL time.Duration) RentalResolver {
	r := &rentalResolver{}

	r.tools = cache.NewLoader(localTTL, func(ctx context.Context, code domain.ToolCode) (*domain.Tool, error) {
		tool, err := toolCache.Get(ctx, code)
		if err == nil {
			return tool, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.Warn("Distributed cache unavailable for tool lookup", "code", code, "error", err)
		}

		tool, err = repo.GetTool(ctx, code)
		if err != nil {
			return nil, err
		}
		if storeErr := toolCache.Store(ctx, tool); storeErr != nil {
			logger.Warn("Failed to write tool back to the distributed cache", "code", code, "error", storeErr)
		}
		return tool, nil
	})

	r.prices = cache.NewLoader(localTTL, func(ctx context.Context, toolType domain.ToolType) (*domain.RentalPrice, error) {
		price, err := priceCache.Get(ctx, toolType)
		if err == nil {
			return price, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.Warn("Distributed cache unavailable for price lookup", "type", toolType, "error", err)
		}

		price, err = repo.GetRentalPrice(ctx, toolType)
		if err != nil {
			return nil, err
		}
		if storeErr := priceCache.Store(ctx, price); storeErr != nil {
			logger.Warn("Failed to write rental price back to the distributed cache", "type", toolType, "error", storeErr)
		}
		return price, nil
	})

	return r
}

func (r *rentalResolver) GetTool(ctx context.Context, code domain.ToolCode) (*domain.Tool, error) {
	return r.tools.Get(ctx, code)
}

func (r *rentalResolver) GetRentalPrice(ctx context.Context, toolType domain.ToolType) (*domain.RentalPrice, error) {
	return r.prices.Get(ctx, toolType)
}

func (r *rentalResolver) IsValidTool(ctx context.Context, tool domain.Tool) bool {
	resolved, err := r.GetTool(ctx, tool.Code)
	if err != nil {
		return false
	}
	return resolved.Equal(tool)
}
