package utils

import (
	"time"
)

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// ParseClock parses a 24-hour HH:MM string.
func ParseClock(value string) (time.Time, error) {
	return time.Parse("15:04", value)
}

// CombineDateClock places a clock time on a calendar date, UTC.
func CombineDateClock(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, time.UTC)
}

// Today returns the current date at UTC midnight.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
