package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

// FormatUSD renders an amount at the currency's native 2-digit display
// precision, e.g. "$3.58". Rounding is half-up.
func FormatUSD(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// ShortDate renders a date as MM/dd/yy, e.g. "07/02/20"
func ShortDate(date time.Time) string {
	return date.Format("01/02/06")
}
