package query

import (
	"context"
	"log/slog"
	"time"

	"github.com/fitsphere/fitsphere-api/internal/application"
	"github.com/fitsphere/fitsphere-api/internal/domain/goal"
	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ASSESS GOAL QUERY
// Оценка темпа: сравнение процента выполнения с долей прошедшего времени,
// текстовая обратная связь и алерты. Чистое чтение - ничего не сохраняется.
// ══════════════════════════════════════════════════════════════════════════════

// AssessGoalQuery содержит параметры запроса оценки.
type AssessGoalQuery struct {
	// GoalID - идентификатор цели.
	GoalID string

	// UserID - запрашивающий пользователь (только владелец).
	UserID string
}

// AssessGoalHandler handles the AssessGoalQuery.
type AssessGoalHandler struct {
	store  application.Store
	logger *slog.Logger
}

// NewAssessGoalHandler creates a new AssessGoalHandler.
func NewAssessGoalHandler(store application.Store, logger *slog.Logger) *AssessGoalHandler {
	return &AssessGoalHandler{
		store:  store,
		logger: logger.With("query", "assess_goal"),
	}
}

// Handle executes the query.
func (h *AssessGoalHandler) Handle(ctx context.Context, q AssessGoalQuery) (*goal.Assessment, error) {
	g, err := h.store.Goals().GetByID(ctx, q.GoalID)
	if err != nil {
		return nil, err
	}
	if !g.IsOwnedBy(q.UserID) {
		return nil, shared.ErrNotGoalOwner
	}

	entries, err := h.store.Progress().ListByGoal(ctx, g.ID)
	if err != nil {
		return nil, shared.WrapError("goal", "Assess", err)
	}

	assessment := goal.Assess(g, entries, time.Now().UTC())
	return &assessment, nil
}
