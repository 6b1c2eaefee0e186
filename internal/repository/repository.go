package repository

import (
	"context"
	"time"

	"toolrental-backend/internal/domain"
)

// ToolRepository is the durable source for tool inventory and prices, and
// the authority for reservation state transitions. Reserve and Checkout
// must be executed as single conditional statements so that no two callers
// can claim the same row.
type ToolRepository interface {
	GetTool(ctx context.Context, code domain.ToolCode) (*domain.Tool, error)
	GetRentalPrice(ctx context.Context, toolType domain.ToolType) (*domain.RentalPrice, error)

	// Reserve claims one available unit of the given tool code for the
	// reservation id. Returns ErrReservationFailed when no unit is free and
	// ErrInvalidState when more than one row was affected.
	Reserve(ctx context.Context, code domain.ToolCode, id domain.ReservationID, at time.Time) error

	// Checkout marks the unit reserved by id as no longer available.
	// Returns ErrCheckoutFailed when no row matches both the reservation id
	// and the tool type, and ErrInvalidState when more than one row was
	// affected.
	Checkout(ctx context.Context, id domain.ReservationID, toolType domain.ToolType) error
}
