// Package timeutil provides calendar day arithmetic used by the goal tracking
// and achievement rules (streaks, update cadence, deadline proximity).
// All calculations are done in UTC. No external dependencies - uses only
// standard library.
package timeutil

import (
	"time"
)

// StartOfDay returns the start of the calendar day (00:00:00) in UTC.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the end of the calendar day (23:59:59.999999999) in UTC.
func EndOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 23, 59, 59, 999999999, time.UTC)
}

// SameDay reports whether a and b fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	au, bu := a.UTC(), b.UTC()
	return au.Year() == bu.Year() && au.YearDay() == bu.YearDay()
}

// CalendarDaysBetween returns the number of whole calendar days from a to b
// (midnight-to-midnight in UTC). The result is negative when b is before a.
func CalendarDaysBetween(a, b time.Time) int {
	return int(StartOfDay(b).Sub(StartOfDay(a)).Hours() / 24)
}

// DaysUntil returns the number of whole days from now until t.
// Truncates toward zero, matching a duration-based day count.
func DaysUntil(now, t time.Time) int {
	return int(t.Sub(now).Hours() / 24)
}

// DaysSince returns the number of whole days elapsed from t until now.
func DaysSince(now, t time.Time) int {
	return int(now.Sub(t).Hours() / 24)
}

// ElapsedDays returns the elapsed time from start to t expressed in
// fractional days. Used as the x-axis of the trend regression.
func ElapsedDays(start, t time.Time) float64 {
	return t.Sub(start).Hours() / 24
}

// AddDays adds a fractional number of days to t.
func AddDays(t time.Time, days float64) time.Time {
	return t.Add(time.Duration(days * 24 * float64(time.Hour)))
}

// IsFuture reports whether t is strictly after now.
func IsFuture(now, t time.Time) bool {
	return t.After(now)
}
