package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// CronSchedule schedules a job with a standard five-field cron expression.
// Parsing and next-run calculation are delegated to robfig/cron.
type CronSchedule struct {
	expr     string
	schedule cron.Schedule
}

// NewCronSchedule parses a cron expression such as "0 8 * * *".
func NewCronSchedule(expr string) (*CronSchedule, error) {
	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("scheduler: invalid cron expression %q: %w", expr, err)
	}
	return &CronSchedule{expr: expr, schedule: sched}, nil
}

// MustCronSchedule is NewCronSchedule that panics on a bad expression.
// Intended for compile-time constant expressions in wiring code.
func MustCronSchedule(expr string) *CronSchedule {
	s, err := NewCronSchedule(expr)
	if err != nil {
		panic(err)
	}
	return s
}

// Next returns the next scheduled time after t.
func (s *CronSchedule) Next(t time.Time) time.Time {
	return s.schedule.Next(t)
}

// String returns the cron expression.
func (s *CronSchedule) String() string {
	return s.expr
}

// IntervalSchedule schedules a job to run at a fixed interval.
type IntervalSchedule struct {
	Interval time.Duration
}

// NewIntervalSchedule creates a new IntervalSchedule.
func NewIntervalSchedule(interval time.Duration) *IntervalSchedule {
	return &IntervalSchedule{Interval: interval}
}

// Next returns the next scheduled time.
func (s *IntervalSchedule) Next(t time.Time) time.Time {
	return t.Add(s.Interval)
}

// String returns the string representation of the schedule.
func (s *IntervalSchedule) String() string {
	return fmt.Sprintf("@every %s", s.Interval.String())
}
