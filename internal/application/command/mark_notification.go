package command

import (
	"context"
	"log/slog"

	"github.com/fitsphere/fitsphere-api/internal/application"
	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// NOTIFICATION COMMANDS
// Marking read and deleting are the only mutations a recipient can perform.
// ══════════════════════════════════════════════════════════════════════════════

// MarkNotificationReadCommand marks a single notification as read.
type MarkNotificationReadCommand struct {
	NotificationID string
	UserID         string
}

// DeleteNotificationCommand removes a notification.
type DeleteNotificationCommand struct {
	NotificationID string
	UserID         string
}

// NotificationHandler handles notification mutations.
type NotificationHandler struct {
	store  application.Store
	logger *slog.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(store application.Store, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		store:  store,
		logger: logger.With("handler", "notification"),
	}
}

// MarkRead marks a notification as read. Marking an already-read
// notification is a no-op, not an error.
func (h *NotificationHandler) MarkRead(ctx context.Context, cmd MarkNotificationReadCommand) error {
	n, err := h.store.Notifications().GetByID(ctx, cmd.NotificationID)
	if err != nil {
		return err
	}
	if !n.IsOwnedBy(cmd.UserID) {
		return shared.ErrNotRecipient
	}
	if n.IsRead {
		return nil
	}
	return h.store.Notifications().MarkRead(ctx, n.ID)
}

// Delete removes a notification owned by the user.
func (h *NotificationHandler) Delete(ctx context.Context, cmd DeleteNotificationCommand) error {
	n, err := h.store.Notifications().GetByID(ctx, cmd.NotificationID)
	if err != nil {
		return err
	}
	if !n.IsOwnedBy(cmd.UserID) {
		return shared.ErrNotRecipient
	}
	if err := h.store.Notifications().Delete(ctx, n.ID); err != nil {
		return shared.WrapError("notification", "Delete", err)
	}
	h.logger.DebugContext(ctx, "notification deleted", "notification_id", n.ID)
	return nil
}
