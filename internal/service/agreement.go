package service

import (
	"context"
	"time"

	"toolrental-backend/internal/domain"
)

// AgreementBuilder validates rental terms and prices them into a
// RentalAgreement. Every validation runs independently so the caller gets
// the complete ordered set of violations, never just the first.
type AgreementBuilder struct {
	resolver   RentalResolver
	classifier domain.DayClassifier
}

func NewAgreementBuilder(resolver RentalResolver, classifier domain.DayClassifier) *AgreementBuilder {
	return &AgreementBuilder{resolver: resolver, classifier: classifier}
}

// Build returns the priced agreement, or the full list of violations. No
// partial agreement is ever returned alongside violations.
func (b *AgreementBuilder) Build(ctx context.Context, tool domain.Tool, checkout time.Time, duration time.Duration, discountPercent int) (*domain.RentalAgreement, domain.ValidationErrors) {
	var violations domain.ValidationErrors

	price, priceErr := b.resolver.GetRentalPrice(ctx, tool.Type)
	if priceErr != nil {
		violations = append(violations, domain.PriceUnavailableError{Type: tool.Type})
	}

	days := int(duration / (24 * time.Hour))
	var dates domain.RentalDates
	datesValid := false
	if days < 1 {
		violations = append(violations, domain.ErrInvalidRentalDuration)
	} else {
		var ok bool
		dates, ok = domain.BuildRentalDates(ctx, b.classifier, checkout, days)
		switch {
		case !ok:
			violations = append(violations, domain.RentalDatesError{Checkout: checkout, Days: days})
		case dates.TotalDays() != days:
			// The classifier enumerated a different number of days than
			// requested; the calendar and day classifier disagree.
			violations = append(violations, domain.ErrInvalidRentalDuration)
		default:
			datesValid = true
		}
	}

	if !b.resolver.IsValidTool(ctx, tool) {
		violations = append(violations, domain.ErrInvalidTool)
	}

	if discountPercent < 0 || discountPercent > 100 {
		violations = append(violations, domain.ErrInvalidRentalDiscount)
	}

	if len(violations) > 0 || !datesValid {
		return nil, violations
	}

	agreement := domain.NewRentalAgreement(tool, dates, *price, discountPercent)
	return &agreement, nil
}
