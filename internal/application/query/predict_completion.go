package query

import (
	"context"
	"log/slog"

	"github.com/fitsphere/fitsphere-api/internal/application"
	"github.com/fitsphere/fitsphere-api/internal/domain/goal"
	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PREDICT COMPLETION QUERY
// Линейная экстраполяция истории прогресса: прогноз даты достижения цели,
// метка тренда и запас относительно дедлайна.
// ══════════════════════════════════════════════════════════════════════════════

// PredictCompletionQuery содержит параметры запроса прогноза.
type PredictCompletionQuery struct {
	// GoalID - идентификатор цели.
	GoalID string

	// UserID - запрашивающий пользователь (только владелец).
	UserID string
}

// PredictCompletionHandler handles the PredictCompletionQuery.
type PredictCompletionHandler struct {
	store  application.Store
	logger *slog.Logger
}

// NewPredictCompletionHandler creates a new PredictCompletionHandler.
func NewPredictCompletionHandler(store application.Store, logger *slog.Logger) *PredictCompletionHandler {
	return &PredictCompletionHandler{
		store:  store,
		logger: logger.With("query", "predict_completion"),
	}
}

// Handle executes the query. With fewer than two entries the prediction
// degrades to the "insufficient data" label instead of failing.
func (h *PredictCompletionHandler) Handle(ctx context.Context, q PredictCompletionQuery) (*goal.Prediction, error) {
	g, err := h.store.Goals().GetByID(ctx, q.GoalID)
	if err != nil {
		return nil, err
	}
	if !g.IsOwnedBy(q.UserID) {
		return nil, shared.ErrNotGoalOwner
	}

	entries, err := h.store.Progress().ListByGoal(ctx, g.ID)
	if err != nil {
		return nil, shared.WrapError("goal", "Predict", err)
	}

	prediction := goal.Predict(g, entries)
	return &prediction, nil
}
