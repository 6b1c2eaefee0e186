package domain

import "github.com/shopspring/decimal"

// RentalPrice is the daily price policy for a tool type. The charge flags
// control which day classes are billable.
type RentalPrice struct {
	Type          ToolType        `json:"type"`
	DailyCharge   decimal.Decimal `json:"daily_charge"`
	WeekdayCharge bool            `json:"weekday_charge"`
	WeekendCharge bool            `json:"weekend_charge"`
	HolidayCharge bool            `json:"holiday_charge"`
}
