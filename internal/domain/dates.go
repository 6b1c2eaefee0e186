package domain

import (
	"context"
	"time"
)

// DayClassifier answers weekend/holiday status for a calendar date.
// Holiday classification may require a resolver call, hence the context.
type DayClassifier interface {
	IsWeekend(date time.Time) bool
	IsHoliday(ctx context.Context, date time.Time) bool
}

// RentalDates is the day partition of a rental period. It is derived once
// per agreement attempt and never persisted. The period is the half-open
// range (checkout, checkout+duration]: the checkout day itself is not
// rented, the due day is.
type RentalDates struct {
	Checkout time.Time
	Due      time.Time
	Weekdays []time.Time
	Weekends []time.Time
	Holidays []time.Time
}

// BuildRentalDates enumerates the rental period and partitions each day
// into weekday/weekend buckets, with holidays tracked as an overlapping
// third bucket. Returns false when the period is empty.
func BuildRentalDates(ctx context.Context, classifier DayClassifier, checkout time.Time, days int) (RentalDates, bool) {
	if days < 1 {
		return RentalDates{}, false
	}

	dates := RentalDates{
		Checkout: checkout,
		Due:      checkout.AddDate(0, 0, days),
	}
	for i := 1; i <= days; i++ {
		day := checkout.AddDate(0, 0, i)
		if classifier.IsWeekend(day) {
			dates.Weekends = append(dates.Weekends, day)
		} else {
			dates.Weekdays = append(dates.Weekdays, day)
		}
		if classifier.IsHoliday(ctx, day) {
			dates.Holidays = append(dates.Holidays, day)
		}
	}
	return dates, true
}

// TotalDays is the number of rented days in the period
func (d RentalDates) TotalDays() int {
	return len(d.Weekdays) + len(d.Weekends)
}
