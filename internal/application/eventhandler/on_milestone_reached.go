package eventhandler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fitsphere/fitsphere-api/internal/domain/notification"
	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// ON MILESTONE REACHED HANDLER
// Уведомление о первом пересечении порога прогресса (25%, 50%, 75%).
// ═══════════════════════════════════════════════════════════════════════════

// OnMilestoneReachedHandler обрабатывает событие пересечения порога.
type OnMilestoneReachedHandler struct {
	notifications notification.Repository
	logger        *slog.Logger
}

// NewOnMilestoneReachedHandler создаёт новый обработчик.
func NewOnMilestoneReachedHandler(notifications notification.Repository, logger *slog.Logger) *OnMilestoneReachedHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OnMilestoneReachedHandler{
		notifications: notifications,
		logger:        logger.With("handler", "on_milestone_reached"),
	}
}

// Handle реализует интерфейс shared.EventHandler.
func (h *OnMilestoneReachedHandler) Handle(ctx context.Context, event shared.Event) error {
	e, ok := event.(shared.MilestoneReachedEvent)
	if !ok {
		return nil
	}

	n, err := notification.New(
		e.OwnerID,
		fmt.Sprintf("%d%% Milestone Reached!", e.Milestone),
		fmt.Sprintf("You're %d%% of the way to completing '%s'", e.Milestone, e.GoalTitle),
		notification.TypeMilestone,
		e.AggregateID(),
		"",
		time.Now().UTC(),
	)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to build notification", "error", err)
		return nil
	}

	if err := h.notifications.Create(ctx, n); err != nil {
		h.logger.WarnContext(ctx, "failed to write notification",
			"goal_id", e.AggregateID(), "milestone", e.Milestone, "error", err)
	}
	return nil
}
