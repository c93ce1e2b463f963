// Package jobs contains implementations of scheduled jobs for FitSphere.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fitsphere/fitsphere-api/internal/domain/goal"
	"github.com/fitsphere/fitsphere-api/internal/domain/notification"
)

// ══════════════════════════════════════════════════════════════════════════════
// DEADLINE SWEEP JOB
// ══════════════════════════════════════════════════════════════════════════════

// DeadlineSweepJob reminds owners about in-progress goals whose deadline is
// approaching. Each sweep writes a reminder for every matching goal; a goal
// inside the lead window is reminded on every run until it completes or its
// deadline passes.
type DeadlineSweepJob struct {
	goals         goal.Repository
	notifications notification.Repository
	logger        *slog.Logger
	config        DeadlineSweepConfig
}

// DeadlineSweepConfig contains configuration for the deadline sweep job.
type DeadlineSweepConfig struct {
	// LeadDays is how many days before the deadline a reminder starts firing.
	LeadDays int

	// Timeout is the maximum duration for one sweep.
	Timeout time.Duration
}

// DefaultDeadlineSweepConfig returns sensible defaults.
func DefaultDeadlineSweepConfig() DeadlineSweepConfig {
	return DeadlineSweepConfig{
		LeadDays: 3,
		Timeout:  5 * time.Minute,
	}
}

// NewDeadlineSweepJob creates a new DeadlineSweepJob.
func NewDeadlineSweepJob(
	goals goal.Repository,
	notifications notification.Repository,
	config DeadlineSweepConfig,
	logger *slog.Logger,
) *DeadlineSweepJob {
	if config.LeadDays <= 0 {
		config.LeadDays = 3
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Minute
	}

	return &DeadlineSweepJob{
		goals:         goals,
		notifications: notifications,
		logger:        logger.With("job", "deadline_sweep"),
		config:        config,
	}
}

// Name returns the job name.
func (j *DeadlineSweepJob) Name() string {
	return "deadline_sweep"
}

// Description returns a human-readable description.
func (j *DeadlineSweepJob) Description() string {
	return fmt.Sprintf("reminds owners about goals due within %d days", j.config.LeadDays)
}

// Run executes one sweep. Failures on individual goals are logged and do not
// abort the rest of the sweep.
func (j *DeadlineSweepJob) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	now := time.Now().UTC()
	lead := time.Duration(j.config.LeadDays) * 24 * time.Hour

	goals, err := j.goals.ListWithDeadlineWithin(ctx, now, lead)
	if err != nil {
		return fmt.Errorf("deadline sweep: list goals: %w", err)
	}

	var sent, failed int
	for _, g := range goals {
		days := g.TimeRemainingDays(now)
		if days == nil {
			continue
		}

		n, err := notification.New(
			g.OwnerID,
			"Goal Deadline Approaching",
			fmt.Sprintf("Your goal '%s' is due in %d days!", g.Title, *days),
			notification.TypeDeadline,
			g.ID,
			"",
			now,
		)
		if err != nil {
			j.logger.Warn("failed to build deadline reminder", "goal_id", g.ID, "error", err)
			failed++
			continue
		}

		if err := j.notifications.Create(ctx, n); err != nil {
			j.logger.Warn("failed to write deadline reminder", "goal_id", g.ID, "error", err)
			failed++
			continue
		}
		sent++
	}

	j.logger.Info("deadline sweep finished",
		"candidates", len(goals),
		"sent", sent,
		"failed", failed,
	)

	return nil
}
