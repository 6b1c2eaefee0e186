package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/logger"
	"toolrental-backend/internal/repository"
)

type toolRepository struct {
	db      *sql.DB
	timeout time.Duration
}

// NewToolRepository wraps the database handle. Every call runs under the
// given timeout; a timeout on a mutating call surfaces as the failure
// signal and is never retried.
func NewToolRepository(db *sql.DB, timeout time.Duration) repository.ToolRepository {
	return &toolRepository{db: db, timeout: timeout}
}

func (r *toolRepository) GetTool(ctx context.Context, code domain.ToolCode) (*domain.Tool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	t := &domain.Tool{}
	query := `SELECT brand, code, type FROM tools WHERE code = $1 LIMIT 1`
	logger.DatabaseCall("get_tool", query, "code", code)
	err := r.db.QueryRowContext(ctx, query, code).Scan(&t.Brand, &t.Code, &t.Type)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tool %s: %w", code, err)
	}
	return t, nil
}

func (r *toolRepository) GetRentalPrice(ctx context.Context, toolType domain.ToolType) (*domain.RentalPrice, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	p := &domain.RentalPrice{}
	var daily string
	query := `SELECT type, daily_charge, weekday_charge, weekend_charge, holiday_charge FROM prices WHERE type = $1`
	logger.DatabaseCall("get_rental_price", query, "type", toolType)
	err := r.db.QueryRowContext(ctx, query, toolType).Scan(&p.Type, &daily, &p.WeekdayCharge, &p.WeekendCharge, &p.HolidayCharge)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rental price for %s: %w", toolType, err)
	}
	p.DailyCharge, err = decimal.NewFromString(daily)
	if err != nil {
		return nil, fmt.Errorf("invalid daily charge %q for %s: %w", daily, toolType, err)
	}
	return p, nil
}

// Reserve claims one available unit in a single conditional UPDATE: the
// nested SELECT re-checks availability in the same statement, so row
// selection and the claim are one atomic operation against the store.
func (r *toolRepository) Reserve(ctx context.Context, code domain.ToolCode, id domain.ReservationID, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `UPDATE tools SET reserved_by = $1, reserved_at = $2
	          WHERE id = (SELECT id FROM tools WHERE reserved_by IS NULL AND code = $3 AND available = TRUE LIMIT 1)`
	logger.DatabaseCall("reserve", query, "code", code)
	res, err := r.db.ExecContext(ctx, query, string(id), at, code)
	if err != nil {
		logger.DatabaseResult("reserve", 0, err, "code", code)
		return fmt.Errorf("failed to reserve tool %s: %w", code, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to reserve tool %s: %w", code, err)
	}
	logger.DatabaseResult("reserve", affected, nil, "code", code)
	switch {
	case affected == 1:
		return nil
	case affected == 0:
		return repository.ErrReservationFailed
	default:
		return repository.ErrInvalidState
	}
}

// Checkout flips availability on the row matching both the reservation id
// and the tool type, again as a single conditional UPDATE.
func (r *toolRepository) Checkout(ctx context.Context, id domain.ReservationID, toolType domain.ToolType) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `UPDATE tools SET available = FALSE WHERE reserved_by = $1 AND type = $2 AND available = TRUE`
	logger.DatabaseCall("checkout", query, "type", toolType)
	res, err := r.db.ExecContext(ctx, query, string(id), toolType)
	if err != nil {
		logger.DatabaseResult("checkout", 0, err, "type", toolType)
		return fmt.Errorf("failed to checkout reservation for %s: %w", toolType, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to checkout reservation for %s: %w", toolType, err)
	}
	logger.DatabaseResult("checkout", affected, nil, "type", toolType)
	switch {
	case affected == 1:
		return nil
	case affected == 0:
		return repository.ErrCheckoutFailed
	default:
		return repository.ErrInvalidState
	}
}
