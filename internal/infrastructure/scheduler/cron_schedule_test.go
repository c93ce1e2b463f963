package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCronSchedule(t *testing.T) {
	s, err := NewCronSchedule("0 8 * * *")
	assert.NoError(t, err)
	assert.Equal(t, "0 8 * * *", s.String())

	from := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	next := s.Next(from)
	assert.Equal(t, time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC), next)
}

func TestNewCronSchedule_SameDay(t *testing.T) {
	s, err := NewCronSchedule("30 14 * * *")
	assert.NoError(t, err)

	from := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC), s.Next(from))
}

func TestNewCronSchedule_Invalid(t *testing.T) {
	_, err := NewCronSchedule("not a cron expr")
	assert.Error(t, err)
}

func TestMustCronSchedule_PanicsOnBadExpr(t *testing.T) {
	assert.Panics(t, func() { MustCronSchedule("* * *") })
	assert.NotPanics(t, func() { MustCronSchedule("*/5 * * * *") })
}

func TestIntervalSchedule(t *testing.T) {
	s := NewIntervalSchedule(15 * time.Minute)

	from := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, from.Add(15*time.Minute), s.Next(from))
	assert.Equal(t, "@every 15m0s", s.String())
}
