package query

import (
	"context"
	"log/slog"

	"github.com/fitsphere/fitsphere-api/internal/application"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET PROGRESS DETAIL QUERY
// Одна запись прогресса с контекстом цели.
// ══════════════════════════════════════════════════════════════════════════════

// GetProgressDetailQuery содержит параметры запроса.
type GetProgressDetailQuery struct {
	// EntryID - идентификатор записи прогресса.
	EntryID string

	// UserID - запрашивающий пользователь (владелец или публичная цель).
	UserID string
}

// GetProgressDetailHandler handles the GetProgressDetailQuery.
type GetProgressDetailHandler struct {
	store  application.Store
	logger *slog.Logger
}

// NewGetProgressDetailHandler creates a new GetProgressDetailHandler.
func NewGetProgressDetailHandler(store application.Store, logger *slog.Logger) *GetProgressDetailHandler {
	return &GetProgressDetailHandler{
		store:  store,
		logger: logger.With("query", "get_progress_detail"),
	}
}

// Handle executes the query.
func (h *GetProgressDetailHandler) Handle(ctx context.Context, q GetProgressDetailQuery) (*ProgressDetailDTO, error) {
	entry, err := h.store.Progress().GetByID(ctx, q.EntryID)
	if err != nil {
		return nil, err
	}
	g, err := h.store.Goals().GetByID(ctx, entry.GoalID)
	if err != nil {
		return nil, err
	}
	if err := authorizeGoalRead(g.OwnerID, g.IsPublic, q.UserID); err != nil {
		return nil, err
	}

	dto := progressDetail(entry, g)
	return &dto, nil
}
