package command

import (
	"context"
	"log/slog"

	"github.com/fitsphere/fitsphere-api/internal/application"
	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// DELETE GOAL COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// DeleteGoalCommand contains the data to delete a goal.
type DeleteGoalCommand struct {
	GoalID string
	UserID string
}

// Validate validates the command.
func (c DeleteGoalCommand) Validate() error {
	if c.GoalID == "" {
		return shared.NewDomainError("goal", "Delete", shared.ErrInvalidInput, "goal_id is required")
	}
	if c.UserID == "" {
		return shared.NewDomainError("goal", "Delete", shared.ErrInvalidInput, "user_id is required")
	}
	return nil
}

// DeleteGoalHandler handles the DeleteGoalCommand.
type DeleteGoalHandler struct {
	store     application.Store
	publisher shared.EventPublisher
	logger    *slog.Logger
}

// NewDeleteGoalHandler creates a new DeleteGoalHandler.
func NewDeleteGoalHandler(store application.Store, publisher shared.EventPublisher, logger *slog.Logger) *DeleteGoalHandler {
	return &DeleteGoalHandler{
		store:     store,
		publisher: publisher,
		logger:    logger.With("handler", "delete_goal"),
	}
}

// Handle executes the delete goal command. Progress entries are removed by
// the storage-level cascade; already-minted achievements survive the goal.
func (h *DeleteGoalHandler) Handle(ctx context.Context, cmd DeleteGoalCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	g, err := h.store.Goals().GetByID(ctx, cmd.GoalID)
	if err != nil {
		return err
	}
	if !g.IsOwnedBy(cmd.UserID) {
		return shared.ErrNotGoalOwner
	}

	if err := h.store.Goals().Delete(ctx, g.ID); err != nil {
		return shared.WrapError("goal", "Delete", err)
	}

	h.logger.InfoContext(ctx, "goal deleted", "goal_id", g.ID, "owner_id", g.OwnerID)

	_ = h.publisher.Publish(shared.NewGoalDeletedEvent(g.ID, g.OwnerID))
	return nil
}
