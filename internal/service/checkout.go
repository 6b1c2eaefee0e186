package service

import (
	"context"
	"fmt"
	"time"

	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/logger"
	"toolrental-backend/internal/repository"
)

type checkoutService struct {
	repo     repository.ToolRepository
	resolver RentalResolver
	builder  *AgreementBuilder
}

func NewCheckoutService(repo repository.ToolRepository, resolver RentalResolver, builder *AgreementBuilder) CheckoutService {
	return &checkoutService{repo: repo, resolver: resolver, builder: builder}
}

// Reserve resolves the tool and its price, then claims one available unit
// with a single conditional update. The store's atomicity is the only
// mutual exclusion: no in-process lock, no retry.
func (s *checkoutService) Reserve(ctx context.Context, code domain.ToolCode) (*domain.Reservation, error) {
	tool, err := s.resolver.GetTool(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve %s: %w", code, err)
	}
	price, err := s.resolver.GetRentalPrice(ctx, tool.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve %s: %w", code, err)
	}

	id := domain.NewReservationID()
	if err := s.repo.Reserve(ctx, code, id, time.Now().UTC()); err != nil {
		logger.Warn("Reservation not granted", "code", code, "error", err)
		return nil, err
	}

	logger.Info("Tool reserved", "code", code)
	return &domain.Reservation{ID: id, Tool: *tool, RentalPrice: *price}, nil
}

// Checkout validates the rental terms into an agreement and, only when
// fully valid, consumes the reservation with a single conditional update.
func (s *checkoutService) Checkout(ctx context.Context, reservation *domain.Reservation, checkout time.Time, duration time.Duration, discountPercent int) (*domain.RentalAgreement, error) {
	agreement, violations := s.builder.Build(ctx, reservation.Tool, checkout, duration, discountPercent)
	if len(violations) > 0 {
		return nil, violations
	}

	if err := s.repo.Checkout(ctx, reservation.ID, reservation.Tool.Type); err != nil {
		logger.Warn("Checkout not granted", "code", reservation.Tool.Code, "error", err)
		return nil, err
	}

	logger.Info("Tool checked out", "code", reservation.Tool.Code, "charge_days", agreement.ChargeDays)
	return agreement, nil
}
