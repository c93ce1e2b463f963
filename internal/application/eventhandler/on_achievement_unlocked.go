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
// ON ACHIEVEMENT UNLOCKED HANDLER
// Уведомление о полученном достижении. Сбой здесь никогда не откатывает
// саму чеканку - она уже зафиксирована в транзакции команды.
// ═══════════════════════════════════════════════════════════════════════════

// OnAchievementUnlockedHandler обрабатывает событие получения достижения.
type OnAchievementUnlockedHandler struct {
	notifications notification.Repository
	logger        *slog.Logger
}

// NewOnAchievementUnlockedHandler создаёт новый обработчик.
func NewOnAchievementUnlockedHandler(notifications notification.Repository, logger *slog.Logger) *OnAchievementUnlockedHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OnAchievementUnlockedHandler{
		notifications: notifications,
		logger:        logger.With("handler", "on_achievement_unlocked"),
	}
}

// Handle реализует интерфейс shared.EventHandler.
func (h *OnAchievementUnlockedHandler) Handle(ctx context.Context, event shared.Event) error {
	e, ok := event.(shared.AchievementUnlockedEvent)
	if !ok {
		return nil
	}

	n, err := notification.New(
		e.OwnerID,
		"Achievement Unlocked!",
		fmt.Sprintf("Congratulations! You've earned the '%s' achievement", e.Title),
		notification.TypeAchievementUnlocked,
		e.GoalID,
		e.AggregateID(),
		time.Now().UTC(),
	)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to build notification", "error", err)
		return nil
	}

	if err := h.notifications.Create(ctx, n); err != nil {
		h.logger.WarnContext(ctx, "failed to write notification",
			"achievement_id", e.AggregateID(), "error", err)
	}
	return nil
}
