package command

import (
	"context"
	"log/slog"
	"time"

	"github.com/fitsphere/fitsphere-api/internal/application"
	"github.com/fitsphere/fitsphere-api/internal/domain/achievement"
	"github.com/fitsphere/fitsphere-api/internal/domain/goal"
	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECORD PROGRESS COMMAND
//
// Appends a dated progress entry to a goal. This is the workflow at the heart
// of the system: the entry insert, the derived completion recompute, the
// automatic status flip when the value reaches the target, and the resulting
// achievement mints all happen inside ONE database transaction. A failed mint
// rolls back the status flip; a failed flip rolls back the entry. Notification
// writes are NOT part of the transaction - they run as best-effort event
// handlers after commit.
// ══════════════════════════════════════════════════════════════════════════════

// RecordProgressCommand contains the data to record a progress entry.
type RecordProgressCommand struct {
	// GoalID is the goal to record progress against.
	GoalID string

	// UserID is the acting user; must own the goal.
	UserID string

	// Date is the measurement date (defaults to now if zero, never future).
	Date time.Time

	// Value is the measured progress value.
	Value float64

	// Note is an optional free-form note.
	Note string
}

// Validate validates the command.
func (c RecordProgressCommand) Validate() error {
	if c.GoalID == "" {
		return shared.NewDomainError("progress", "Record", shared.ErrInvalidInput, "goal_id is required")
	}
	if c.UserID == "" {
		return shared.NewDomainError("progress", "Record", shared.ErrInvalidInput, "user_id is required")
	}
	return nil
}

// RecordProgressResult is an immutable snapshot of the outcome. The derived
// fields (goal title, target, completion percent) are copied into the result
// instead of being attached to the entry itself.
type RecordProgressResult struct {
	Entry             *goal.Entry
	GoalTitle         string
	TargetValue       *float64
	CompletionPercent float64

	// GoalCompleted is true when this entry flipped the goal to completed.
	GoalCompleted bool

	// Minted lists achievements unlocked by this entry (including those
	// triggered by the automatic completion).
	Minted []*achievement.Achievement
}

// RecordProgressHandler handles the RecordProgressCommand.
type RecordProgressHandler struct {
	store     application.Store
	evaluator *achievement.Evaluator
	publisher shared.EventPublisher
	logger    *slog.Logger
}

// NewRecordProgressHandler creates a new RecordProgressHandler.
func NewRecordProgressHandler(
	store application.Store,
	evaluator *achievement.Evaluator,
	publisher shared.EventPublisher,
	logger *slog.Logger,
) *RecordProgressHandler {
	return &RecordProgressHandler{
		store:     store,
		evaluator: evaluator,
		publisher: publisher,
		logger:    logger.With("handler", "record_progress"),
	}
}

// Handle executes the record progress command.
func (h *RecordProgressHandler) Handle(ctx context.Context, cmd RecordProgressCommand) (*RecordProgressResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	var (
		result *RecordProgressResult
		events []shared.Event
	)

	err := h.store.WithinTx(ctx, func(tx application.Store) error {
		g, err := tx.Goals().GetByID(ctx, cmd.GoalID)
		if err != nil {
			return err
		}
		if !g.IsOwnedBy(cmd.UserID) {
			return shared.ErrNotGoalOwner
		}
		if g.Status != goal.StatusInProgress {
			return shared.ErrGoalNotInProgress
		}

		entry, err := goal.NewEntry(g.ID, cmd.Date, cmd.Value, cmd.Note, now)
		if err != nil {
			return err
		}
		if err := tx.Progress().Create(ctx, entry); err != nil {
			return shared.WrapError("progress", "Record", err)
		}

		// Derived completion is recomputed from the latest entry BY DATE,
		// which is not necessarily the entry just inserted (backdated
		// entries land in the middle of the history).
		entries, err := tx.Progress().ListByGoal(ctx, g.ID)
		if err != nil {
			return shared.WrapError("progress", "Record", err)
		}
		latest := goal.LatestEntry(entries)
		percent := goal.CompletionPercent(g.TargetValue, latest)

		// Baseline is the second-latest entry by date, not the pre-insert
		// latest, so a backdated entry can re-announce already-crossed
		// milestones.
		var prevPercent float64
		if len(entries) > 1 {
			prevPercent = goal.CompletionPercentOf(g.TargetValue, entries[len(entries)-2].Value)
		}

		events = append(events, shared.NewProgressRecordedEvent(entry.ID, g.ID, g.OwnerID, entry.Value, percent))
		for _, m := range goal.CrossedMilestones(prevPercent, percent) {
			events = append(events, shared.NewMilestoneReachedEvent(g.ID, g.OwnerID, g.Title, m))
		}

		result = &RecordProgressResult{
			Entry:             entry,
			GoalTitle:         g.Title,
			TargetValue:       g.TargetValue,
			CompletionPercent: percent,
		}

		ev := h.evaluator.WithRepositories(tx.Goals(), tx.Progress(), tx.Achievements())

		// The flip checks the NEW entry's value against the target, matching
		// the milestone semantics of "this measurement reached the goal".
		if g.TargetReachedBy(entry.Value) {
			changed, err := g.MarkCompleted(now)
			if err != nil {
				return err
			}
			if changed {
				if err := tx.Goals().Update(ctx, g); err != nil {
					return shared.WrapError("goal", "Complete", err)
				}
				result.GoalCompleted = true
				events = append(events, shared.NewGoalCompletedEvent(g.ID, g.OwnerID, g.Title, true))

				minted, err := ev.OnGoalCompleted(ctx, g, now)
				if err != nil {
					return err
				}
				result.Minted = append(result.Minted, minted...)
			}
		}

		streak, err := ev.OnProgressRecorded(ctx, g, now)
		if err != nil {
			return err
		}
		if streak != nil {
			result.Minted = append(result.Minted, streak)
		}

		for _, a := range result.Minted {
			events = append(events, shared.NewAchievementUnlockedEvent(a.ID, a.OwnerID, a.Title, a.GoalID))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "progress recorded",
		"goal_id", cmd.GoalID,
		"entry_id", result.Entry.ID,
		"completion_percent", result.CompletionPercent,
		"goal_completed", result.GoalCompleted,
		"achievements_minted", len(result.Minted),
	)

	// Events are published only after the transaction commits, so handlers
	// never observe state that later rolled back.
	for _, e := range events {
		_ = h.publisher.Publish(e)
	}

	return result, nil
}
