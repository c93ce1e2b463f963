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
// UPDATE GOAL COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// UpdateGoalCommand contains a partial goal update. Nil fields are left
// unchanged.
type UpdateGoalCommand struct {
	GoalID string
	UserID string

	Title       *string
	Description *string
	Category    *string
	TargetValue *float64
	Deadline    *time.Time
	Status      *string
	IsPublic    *bool
}

// Validate validates the command.
func (c UpdateGoalCommand) Validate() error {
	if c.GoalID == "" {
		return shared.NewDomainError("goal", "Update", shared.ErrInvalidInput, "goal_id is required")
	}
	if c.UserID == "" {
		return shared.NewDomainError("goal", "Update", shared.ErrInvalidInput, "user_id is required")
	}
	return nil
}

func (c UpdateGoalCommand) toDomain() goal.Update {
	u := goal.Update{
		Title:       c.Title,
		Description: c.Description,
		TargetValue: c.TargetValue,
		Deadline:    c.Deadline,
		IsPublic:    c.IsPublic,
	}
	if c.Category != nil {
		cat := goal.Category(*c.Category)
		u.Category = &cat
	}
	if c.Status != nil {
		st := goal.Status(*c.Status)
		u.Status = &st
	}
	return u
}

// UpdateGoalResult contains the result of updating a goal.
type UpdateGoalResult struct {
	Goal *goal.Goal

	// Completed is true when this update transitioned the goal to completed.
	Completed bool

	// Minted lists achievements unlocked by a completing update.
	Minted []*achievement.Achievement
}

// UpdateGoalHandler handles the UpdateGoalCommand.
type UpdateGoalHandler struct {
	store     application.Store
	evaluator *achievement.Evaluator
	publisher shared.EventPublisher
	logger    *slog.Logger
}

// NewUpdateGoalHandler creates a new UpdateGoalHandler.
func NewUpdateGoalHandler(
	store application.Store,
	evaluator *achievement.Evaluator,
	publisher shared.EventPublisher,
	logger *slog.Logger,
) *UpdateGoalHandler {
	return &UpdateGoalHandler{
		store:     store,
		evaluator: evaluator,
		publisher: publisher,
		logger:    logger.With("handler", "update_goal"),
	}
}

// Handle executes the update goal command. A status change to completed runs
// the achievement evaluator inside the same transaction as the update.
func (h *UpdateGoalHandler) Handle(ctx context.Context, cmd UpdateGoalCommand) (*UpdateGoalResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	var (
		result *UpdateGoalResult
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

		completed, err := g.Apply(cmd.toDomain(), now)
		if err != nil {
			return err
		}
		if err := tx.Goals().Update(ctx, g); err != nil {
			return shared.WrapError("goal", "Update", err)
		}

		result = &UpdateGoalResult{Goal: g, Completed: completed}
		events = append(events, shared.NewGoalUpdatedEvent(g.ID, g.OwnerID))

		if completed {
			events = append(events, shared.NewGoalCompletedEvent(g.ID, g.OwnerID, g.Title, false))

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
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "goal updated",
		"goal_id", cmd.GoalID,
		"completed", result.Completed,
		"achievements_minted", len(result.Minted),
	)

	for _, e := range events {
		_ = h.publisher.Publish(e)
	}

	return result, nil
}
