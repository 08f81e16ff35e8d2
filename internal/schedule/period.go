// Package schedule holds the calendar arithmetic behind recurring charges:
// rolling a due date forward by one period and classifying how close a due
// date is. Everything here is pure; callers supply "now".
package schedule

import (
	"fmt"
	"time"

	apperrors "projectdesk/internal/errors"
	"projectdesk/internal/models"
)

const (
	// ISODateLayout is the wire and storage format for calendar days.
	ISODateLayout = "2006-01-02"
	// DisplayDateLayout is how due dates appear in notification text.
	DisplayDateLayout = "Jan 2, 2006"
)

// Date truncates t to midnight UTC of its UTC calendar day. Stored days are
// UTC midnight, so the same instant read back in another zone maps to the
// same day.
func Date(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(ISODateLayout, s)
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrValidation, fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s))
	}
	return t, nil
}

// FormatISO renders a calendar day as YYYY-MM-DD.
func FormatISO(t time.Time) string {
	return Date(t).Format(ISODateLayout)
}

// FormatDisplay renders a calendar day for humans, e.g. "Mar 1, 2024".
func FormatDisplay(t time.Time) string {
	return Date(t).Format(DisplayDateLayout)
}

// ValidatePeriod checks a period/custom-days combination before any date
// arithmetic runs. customDays only matters for the custom period.
func ValidatePeriod(period models.ChargePeriod, customDays *int) error {
	if !period.IsValid() {
		return apperrors.WithMessage(apperrors.ErrInvalidPeriodConfig, fmt.Sprintf("unsupported period %q", period))
	}
	if period == models.ChargePeriodCustom && (customDays == nil || *customDays <= 0) {
		return apperrors.WithMessage(apperrors.ErrInvalidPeriodConfig, "custom period requires a positive custom_period_days")
	}
	return nil
}

// Advance returns the due date one period after anchor.
//
// Month and year steps use time.AddDate, so a day that does not exist in the
// target month rolls over into the next one (Jan 31 + 1 month = Mar 2 or 3).
func Advance(period models.ChargePeriod, anchor time.Time, customDays *int) (time.Time, error) {
	if err := ValidatePeriod(period, customDays); err != nil {
		return time.Time{}, err
	}

	anchor = Date(anchor)
	switch period {
	case models.ChargePeriodMonthly:
		return anchor.AddDate(0, 1, 0), nil
	case models.ChargePeriodQuarterly:
		return anchor.AddDate(0, 3, 0), nil
	case models.ChargePeriodAnnual:
		return anchor.AddDate(1, 0, 0), nil
	default:
		return anchor.AddDate(0, 0, *customDays), nil
	}
}
