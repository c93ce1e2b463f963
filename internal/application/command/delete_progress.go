package command

import (
	"context"
	"log/slog"

	"github.com/fitsphere/fitsphere-api/internal/application"
	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// DELETE PROGRESS COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// DeleteProgressCommand contains the data to delete a progress entry.
type DeleteProgressCommand struct {
	EntryID string
	UserID  string
}

// Validate validates the command.
func (c DeleteProgressCommand) Validate() error {
	if c.EntryID == "" {
		return shared.NewDomainError("progress", "Delete", shared.ErrInvalidInput, "entry_id is required")
	}
	if c.UserID == "" {
		return shared.NewDomainError("progress", "Delete", shared.ErrInvalidInput, "user_id is required")
	}
	return nil
}

// DeleteProgressHandler handles the DeleteProgressCommand.
type DeleteProgressHandler struct {
	store     application.Store
	publisher shared.EventPublisher
	logger    *slog.Logger
}

// NewDeleteProgressHandler creates a new DeleteProgressHandler.
func NewDeleteProgressHandler(store application.Store, publisher shared.EventPublisher, logger *slog.Logger) *DeleteProgressHandler {
	return &DeleteProgressHandler{
		store:     store,
		publisher: publisher,
		logger:    logger.With("handler", "delete_progress"),
	}
}

// Handle executes the delete progress command. Deleting an entry never
// reverts a completed goal: completion is a one-way transition.
func (h *DeleteProgressHandler) Handle(ctx context.Context, cmd DeleteProgressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	entry, err := h.store.Progress().GetByID(ctx, cmd.EntryID)
	if err != nil {
		return err
	}
	g, err := h.store.Goals().GetByID(ctx, entry.GoalID)
	if err != nil {
		return err
	}
	if !g.IsOwnedBy(cmd.UserID) {
		return shared.ErrNotGoalOwner
	}

	if err := h.store.Progress().Delete(ctx, entry.ID); err != nil {
		return shared.WrapError("progress", "Delete", err)
	}

	h.logger.InfoContext(ctx, "progress deleted", "entry_id", entry.ID, "goal_id", g.ID)

	_ = h.publisher.Publish(shared.NewProgressChangedEvent(shared.EventProgressDeleted, entry.ID, g.ID, g.OwnerID))
	return nil
}
