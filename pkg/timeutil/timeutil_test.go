package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2026, 3, 10, 15, 30, 45, 123, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), StartOfDay(ts))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 3, 10, 0, 0, 1, 0, time.UTC)
	b := time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)
	c := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(b, c))
}

func TestCalendarDaysBetween(t *testing.T) {
	// Wall-clock times do not matter, only the calendar day does.
	a := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
	b := time.Date(2026, 3, 11, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, CalendarDaysBetween(a, b))
	assert.Equal(t, -1, CalendarDaysBetween(b, a))
	assert.Equal(t, 0, CalendarDaysBetween(a, a))
}

func TestDaysUntilAndSince(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 5, DaysUntil(now, now.AddDate(0, 0, 5)))
	assert.Equal(t, -3, DaysUntil(now, now.AddDate(0, 0, -3)))
	// Truncation toward zero: 36 hours is one day.
	assert.Equal(t, 1, DaysUntil(now, now.Add(36*time.Hour)))

	assert.Equal(t, 4, DaysSince(now, now.AddDate(0, 0, -4)))
}

func TestElapsedDaysAndAddDays(t *testing.T) {
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 1.5, ElapsedDays(start, start.Add(36*time.Hour)))
	assert.Equal(t, start.Add(36*time.Hour), AddDays(start, 1.5))
}

func TestIsFuture(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.True(t, IsFuture(now, now.Add(time.Second)))
	assert.False(t, IsFuture(now, now))
	assert.False(t, IsFuture(now, now.Add(-time.Second)))
}
