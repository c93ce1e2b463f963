// Package eventhandler содержит обработчики доменных событий.
//
// Все обработчики уведомлений работают "по возможности": сбой записи
// уведомления логируется и никогда не прерывает операцию, породившую
// событие. События публикуются после коммита транзакции, поэтому
// обработчики не видят откатившихся состояний.
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
// ON GOAL CREATED HANDLER
// Создаёт приветственное уведомление владельцу новой цели.
// ═══════════════════════════════════════════════════════════════════════════

// OnGoalCreatedHandler обрабатывает событие создания цели.
type OnGoalCreatedHandler struct {
	notifications notification.Repository
	logger        *slog.Logger
}

// NewOnGoalCreatedHandler создаёт новый обработчик.
func NewOnGoalCreatedHandler(notifications notification.Repository, logger *slog.Logger) *OnGoalCreatedHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OnGoalCreatedHandler{
		notifications: notifications,
		logger:        logger.With("handler", "on_goal_created"),
	}
}

// Handle реализует интерфейс shared.EventHandler.
func (h *OnGoalCreatedHandler) Handle(ctx context.Context, event shared.Event) error {
	e, ok := event.(shared.GoalCreatedEvent)
	if !ok {
		return nil
	}

	n, err := notification.New(
		e.OwnerID,
		"Goal Created",
		fmt.Sprintf("You've created a new goal: %s", e.GoalTitle),
		notification.TypeReminder,
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
