package service

import (
	"context"
	"time"

	"toolrental-backend/internal/domain"
)

type dayClassifier struct {
	holidays Holidays
}

// NewDayClassifier builds a day classifier over the holiday resolver.
// Weekends are Saturday and Sunday.
func NewDayClassifier(holidays Holidays) domain.DayClassifier {
	return &dayClassifier{holidays: holidays}
}

func (c *dayClassifier) IsWeekend(date time.Time) bool {
	day := date.Weekday()
	return day == time.Saturday || day == time.Sunday
}

func (c *dayClassifier) IsHoliday(ctx context.Context, date time.Time) bool {
	return c.holidays.IsHoliday(ctx, date)
}
