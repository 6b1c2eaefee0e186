package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"toolrental-backend/internal/utils"
)

var (
	ErrInvalidRentalDuration = errors.New("the rental duration must be 1 day or greater")
	ErrInvalidRentalDiscount = errors.New("the rental discount must be between 0 and 100")
	ErrInvalidTool           = errors.New("the tool being rented is invalid")
)

// PriceUnavailableError reports that no rental price could be resolved for
// a tool type.
type PriceUnavailableError struct {
	Type ToolType
}

func (e PriceUnavailableError) Error() string {
	return fmt.Sprintf("failed to get the rental price for %s", e.Type)
}

// RentalDatesError reports that the rental period could not be enumerated
// for the requested checkout date and duration.
type RentalDatesError struct {
	Checkout time.Time
	Days     int
}

func (e RentalDatesError) Error() string {
	return fmt.Sprintf("failed to get the rental dates for %d days from %s", e.Days, utils.ShortDate(e.Checkout))
}

// ValidationErrors is the ordered set of agreement violations. All checks
// are evaluated independently; the set is never truncated to the first
// failure.
type ValidationErrors []error

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, err := range v {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// RentalAgreement is the priced outcome of a checkout. Fully derived and
// immutable once built.
type RentalAgreement struct {
	ToolBrand         ToolBrand       `json:"tool_brand"`
	ToolCode          ToolCode        `json:"tool_code"`
	ToolType          ToolType        `json:"tool_type"`
	Checkout          time.Time       `json:"checkout"`
	Due               time.Time       `json:"due"`
	RentalDays        int             `json:"rental_days"`
	ChargeDays        int             `json:"charge_days"`
	DailyCharge       decimal.Decimal `json:"daily_charge"`
	PrediscountCharge decimal.Decimal `json:"prediscount_charge"`
	DiscountPercent   int             `json:"discount_percent"`
	DiscountAmount    decimal.Decimal `json:"discount_amount"`
	FinalCharge       decimal.Decimal `json:"final_charge"`
}

// NewRentalAgreement prices a validated rental. Chargeable days are the
// weekday bucket (when the price charges weekdays) plus the weekend bucket
// (when it charges weekends), minus any holiday when the price does not
// charge holidays. The discount is computed at 3 fractional digits half-up,
// then settled to the currency's 2-digit precision before subtraction so
// that finalCharge = prediscountCharge - discountAmount holds exactly at
// display precision.
func NewRentalAgreement(tool Tool, dates RentalDates, price RentalPrice, discountPercent int) RentalAgreement {
	holidays := make(map[time.Time]bool, len(dates.Holidays))
	for _, day := range dates.Holidays {
		holidays[day] = true
	}

	var chargeable []time.Time
	if price.WeekdayCharge {
		chargeable = append(chargeable, dates.Weekdays...)
	}
	if price.WeekendCharge {
		chargeable = append(chargeable, dates.Weekends...)
	}

	chargeDays := 0
	for _, day := range chargeable {
		if !price.HolidayCharge && holidays[day] {
			continue
		}
		chargeDays++
	}

	prediscount := price.DailyCharge.Mul(decimal.NewFromInt(int64(chargeDays)))
	discount := prediscount.
		Mul(decimal.NewFromInt(int64(discountPercent))).
		Div(decimal.NewFromInt(100)).
		Round(3).
		Round(2)

	return RentalAgreement{
		ToolBrand:         tool.Brand,
		ToolCode:          tool.Code,
		ToolType:          tool.Type,
		Checkout:          dates.Checkout,
		Due:               dates.Due,
		RentalDays:        dates.TotalDays(),
		ChargeDays:        chargeDays,
		DailyCharge:       price.DailyCharge,
		PrediscountCharge: prediscount,
		DiscountPercent:   discountPercent,
		DiscountAmount:    discount,
		FinalCharge:       prediscount.Sub(discount),
	}
}

// String renders the printable agreement summary
func (a RentalAgreement) String() string {
	lines := []string{
		fmt.Sprintf("Tool code: %s", a.ToolCode),
		fmt.Sprintf("Tool type: %s", a.ToolType),
		fmt.Sprintf("Tool brand: %s", a.ToolBrand),
		fmt.Sprintf("Rental days: %d", a.RentalDays),
		fmt.Sprintf("Checkout date: %s", utils.ShortDate(a.Checkout)),
		fmt.Sprintf("Due date: %s", utils.ShortDate(a.Due)),
		fmt.Sprintf("Daily charge: %s", utils.FormatUSD(a.DailyCharge)),
		fmt.Sprintf("Charge days: %d", a.ChargeDays),
		fmt.Sprintf("Pre-discount charge: %s", utils.FormatUSD(a.PrediscountCharge)),
		fmt.Sprintf("Discount percent: %d%%", a.DiscountPercent),
		fmt.Sprintf("Discount amount: %s", utils.FormatUSD(a.DiscountAmount)),
		fmt.Sprintf("Final charge: %s", utils.FormatUSD(a.FinalCharge)),
	}
	return strings.Join(lines, "\n")
}
