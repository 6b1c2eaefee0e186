package service

import (
	"context"
	"time"

	"toolrental-backend/internal/domain"
)

// RentalResolver answers tool and price lookups through the tiered cache:
// in-process TTL cache, then distributed cache, then the durable store.
type RentalResolver interface {
	GetTool(ctx context.Context, code domain.ToolCode) (*domain.Tool, error)
	GetRentalPrice(ctx context.Context, toolType domain.ToolType) (*domain.RentalPrice, error)

	// IsValidTool reports whether the tool's full identity matches the
	// currently resolvable record for its code.
	IsValidTool(ctx context.Context, tool domain.Tool) bool
}

// Holidays resolves the observed-holiday set for a calendar year through
// the tiered cache, backed by the external holiday provider.
type Holidays interface {
	HolidaysFor(ctx context.Context, year int) ([]domain.Holiday, error)
	IsHoliday(ctx context.Context, date time.Time) bool
}

// CheckoutService owns the reserve/checkout lifecycle of a rental
type CheckoutService interface {
	// Reserve claims one available unit of the tool code and returns the
	// reservation carrying the resolved tool and price.
	Reserve(ctx context.Context, code domain.ToolCode) (*domain.Reservation, error)

	// Checkout validates the rental terms and, only when fully valid,
	// consumes the reservation. Validation failures are returned as
	// domain.ValidationErrors carrying every violation.
	Checkout(ctx context.Context, reservation *domain.Reservation, checkout time.Time, duration time.Duration, discountPercent int) (*domain.RentalAgreement, error)
}
