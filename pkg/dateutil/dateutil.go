// Package dateutil provides day-granularity calendar helpers for the
// projection engine. All dates are interpreted in UTC and rendered in
// ISO-8601 (YYYY-MM-DD); weekday and week-of-month arithmetic is done on
// the UTC calendar date so results never drift with the host timezone.
package dateutil

import (
	"time"
)

// ISOFormat is the wire format for dates throughout the system.
const ISOFormat = "2006-01-02"

// Parse parses an ISO-8601 date string into a midnight-UTC time.
// An empty or malformed string returns the zero time and an error.
func Parse(s string) (time.Time, error) {
	return time.ParseInLocation(ISOFormat, s, time.UTC)
}

// Format renders t as an ISO-8601 date string using its UTC calendar date.
func Format(t time.Time) string {
	return t.UTC().Format(ISOFormat)
}

// Midnight truncates t to midnight UTC of its UTC calendar date.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n days after t, normalized to midnight UTC.
func AddDays(t time.Time, n int) time.Time {
	return Midnight(t).AddDate(0, 0, n)
}

// DaysBetween returns the number of whole calendar days from a to b.
// Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(Midnight(b).Sub(Midnight(a)) / (24 * time.Hour))
}

// WeekOfMonth returns the ordinal week of the month for t: days 1-7 are
// week 1, days 8-14 week 2, and so on up to week 5.
func WeekOfMonth(t time.Time) int {
	return (t.UTC().Day()-1)/7 + 1
}

// SameDate reports whether a and b fall on the same UTC calendar date.
func SameDate(a, b time.Time) bool {
	return Midnight(a).Equal(Midnight(b))
}
