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
// UPDATE PROGRESS COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// UpdateProgressCommand contains a partial progress entry update.
type UpdateProgressCommand struct {
	EntryID string
	UserID  string

	Date  *time.Time
	Value *float64
	Note  *string
}

// Validate validates the command.
func (c UpdateProgressCommand) Validate() error {
	if c.EntryID == "" {
		return shared.NewDomainError("progress", "Update", shared.ErrInvalidInput, "entry_id is required")
	}
	if c.UserID == "" {
		return shared.NewDomainError("progress", "Update", shared.ErrInvalidInput, "user_id is required")
	}
	return nil
}

// UpdateProgressResult contains the updated entry with derived fields.
type UpdateProgressResult struct {
	Entry             *goal.Entry
	GoalTitle         string
	TargetValue       *float64
	CompletionPercent float64
	GoalCompleted     bool
	Minted            []*achievement.Achievement
}

// UpdateProgressHandler handles the UpdateProgressCommand.
type UpdateProgressHandler struct {
	store     application.Store
	evaluator *achievement.Evaluator
	publisher shared.EventPublisher
	logger    *slog.Logger
}

// NewUpdateProgressHandler creates a new UpdateProgressHandler.
func NewUpdateProgressHandler(
	store application.Store,
	evaluator *achievement.Evaluator,
	publisher shared.EventPublisher,
	logger *slog.Logger,
) *UpdateProgressHandler {
	return &UpdateProgressHandler{
		store:     store,
		evaluator: evaluator,
		publisher: publisher,
		logger:    logger.With("handler", "update_progress"),
	}
}

// Handle executes the update progress command. An updated value reaching the
// target of a still-active goal flips it to completed, in the same
// transaction as the entry update.
func (h *UpdateProgressHandler) Handle(ctx context.Context, cmd UpdateProgressCommand) (*UpdateProgressResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	var (
		result *UpdateProgressResult
		events []shared.Event
	)

	err := h.store.WithinTx(ctx, func(tx application.Store) error {
		entry, err := tx.Progress().GetByID(ctx, cmd.EntryID)
		if err != nil {
			return err
		}
		g, err := tx.Goals().GetByID(ctx, entry.GoalID)
		if err != nil {
			return err
		}
		if !g.IsOwnedBy(cmd.UserID) {
			return shared.ErrNotGoalOwner
		}

		if err := entry.Apply(goal.EntryUpdate{Date: cmd.Date, Value: cmd.Value, Note: cmd.Note}, now); err != nil {
			return err
		}
		if err := tx.Progress().Update(ctx, entry); err != nil {
			return shared.WrapError("progress", "Update", err)
		}

		result = &UpdateProgressResult{
			Entry:             entry,
			GoalTitle:         g.Title,
			TargetValue:       g.TargetValue,
			CompletionPercent: goal.CompletionPercentOf(g.TargetValue, entry.Value),
		}
		events = append(events, shared.NewProgressChangedEvent(shared.EventProgressUpdated, entry.ID, g.ID, g.OwnerID))

		// Only an explicit new value can flip the goal, and only while it
		// is still in progress.
		if cmd.Value != nil && g.Status == goal.StatusInProgress && g.TargetReachedBy(*cmd.Value) {
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

				ev := h.evaluator.WithRepositories(tx.Goals(), tx.Progress(), tx.Achievements())
				minted, err := ev.OnGoalCompleted(ctx, g, now)
				if err != nil {
					return err
				}
				result.Minted = minted
				for _, a := range minted {
					events = append(events, shared.NewAchievementUnlockedEvent(a.ID, a.OwnerID, a.Title, a.GoalID))
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "progress updated",
		"entry_id", cmd.EntryID,
		"goal_completed", result.GoalCompleted,
	)

	for _, e := range events {
		_ = h.publisher.Publish(e)
	}

	return result, nil
}
