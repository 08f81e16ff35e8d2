package schedule

import (
	"fmt"
	"time"
)

// Lookahead windows, in days. The reminder badge and notifications use the
// short window; the dashboard aggregate counts over the long one.
const (
	ReminderWindowDays  = 7
	DashboardWindowDays = 30
)

// DaysUntil returns the number of calendar days from now to due.
// Negative values mean the due date has passed.
func DaysUntil(due, now time.Time) int {
	return int(Date(due).Sub(Date(now)).Hours() / 24)
}

// IsDueSoon reports whether due falls inside [today, today+windowDays].
// Overdue dates are not due soon.
func IsDueSoon(due, now time.Time, windowDays int) bool {
	days := DaysUntil(due, now)
	return days >= 0 && days <= windowDays
}

// Humanize renders a DaysUntil result for badges and messages.
func Humanize(days int) string {
	switch {
	case days < 0:
		return "overdue"
	case days == 0:
		return "due today"
	case days == 1:
		return "due tomorrow"
	default:
		return fmt.Sprintf("%d days", days)
	}
}
