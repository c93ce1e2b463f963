package eventhandler

import (
	"context"
	"log/slog"

	"github.com/fitsphere/fitsphere-api/internal/application/query"
	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// ON GOAL CHANGED HANDLER
// Инвалидация кеша детальной карточки цели. Подписан на все события,
// меняющие цель или её прогресс: кешированный DTO содержит производные
// поля и историю записей, поэтому устаревает при любом из них.
// ═══════════════════════════════════════════════════════════════════════════

// OnGoalChangedHandler сбрасывает кеш при изменении цели или прогресса.
type OnGoalChangedHandler struct {
	cache  query.GoalDetailCache
	logger *slog.Logger
}

// NewOnGoalChangedHandler создаёт новый обработчик.
func NewOnGoalChangedHandler(cache query.GoalDetailCache, logger *slog.Logger) *OnGoalChangedHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OnGoalChangedHandler{
		cache:  cache,
		logger: logger.With("handler", "on_goal_changed"),
	}
}

// EventTypes возвращает типы событий, на которые подписан обработчик.
func (h *OnGoalChangedHandler) EventTypes() []shared.EventType {
	return []shared.EventType{
		shared.EventGoalUpdated,
		shared.EventGoalDeleted,
		shared.EventGoalCompleted,
		shared.EventProgressRecorded,
		shared.EventProgressUpdated,
		shared.EventProgressDeleted,
	}
}

// Handle реализует интерфейс shared.EventHandler.
func (h *OnGoalChangedHandler) Handle(ctx context.Context, event shared.Event) error {
	if h.cache == nil {
		return nil
	}

	goalID := event.AggregateID()
	switch e := event.(type) {
	case shared.ProgressRecordedEvent:
		goalID = e.GoalID
	case shared.ProgressChangedEvent:
		goalID = e.GoalID
	}

	h.cache.Invalidate(ctx, goalID)
	h.logger.DebugContext(ctx, "goal cache invalidated",
		"goal_id", goalID, "event", event.EventType())
	return nil
}
