package response

import (
	"fmt"
	"time"
)

// Presentation-only date/time formatting. These fields are derived for
// display and never accepted as input.

// FormatDate renders an ISO date, YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatClock renders a 24-hour HH:MM time.
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// FormatLongDate renders a date like "January 2, 2026".
func FormatLongDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// DayName renders the weekday name, "Monday".
func DayName(t time.Time) string {
	return t.Format("Monday")
}

// FormatTimeRange renders a 12-hour range like "2 PM - 3 PM" or
// "2:30 PM - 3:15 PM" when minutes are non-zero.
func FormatTimeRange(start, end time.Time) string {
	return fmt.Sprintf("%s - %s", formatHour12(start), formatHour12(end))
}

// FormatCompletedAt renders a completion stamp like
// "January 2, 2026 at 3:04 PM".
func FormatCompletedAt(t time.Time) string {
	return fmt.Sprintf("%s at %s", FormatLongDate(t), t.Format("3:04 PM"))
}

func formatHour12(t time.Time) string {
	if t.Minute() == 0 {
		return t.Format("3 PM")
	}
	return t.Format("3:04 PM")
}
