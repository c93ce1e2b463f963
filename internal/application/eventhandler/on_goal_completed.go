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
// ON GOAL COMPLETED HANDLER
// Поздравительное уведомление при завершении цели. Текст зависит от того,
// завершилась ли цель автоматически (прогресс достиг целевого значения)
// или явным действием владельца.
// ═══════════════════════════════════════════════════════════════════════════

// OnGoalCompletedHandler обрабатывает событие завершения цели.
type OnGoalCompletedHandler struct {
	notifications notification.Repository
	logger        *slog.Logger
}

// NewOnGoalCompletedHandler создаёт новый обработчик.
func NewOnGoalCompletedHandler(notifications notification.Repository, logger *slog.Logger) *OnGoalCompletedHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OnGoalCompletedHandler{
		notifications: notifications,
		logger:        logger.With("handler", "on_goal_completed"),
	}
}

// Handle реализует интерфейс shared.EventHandler.
func (h *OnGoalCompletedHandler) Handle(ctx context.Context, event shared.Event) error {
	e, ok := event.(shared.GoalCompletedEvent)
	if !ok {
		return nil
	}

	title := "Goal Completed!"
	content := fmt.Sprintf("Congratulations! You've completed your goal: %s", e.GoalTitle)
	if e.Automatic {
		title = "Goal Achieved!"
		content = fmt.Sprintf("Congratulations! You've reached your target for '%s'", e.GoalTitle)
	}

	n, err := notification.New(
		e.OwnerID,
		title,
		content,
		notification.TypeCompleted,
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
			"goal_id", e.AggregateID(), "error", err)
	}
	return nil
}
