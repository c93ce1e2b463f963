package query

import (
	"context"
	"log/slog"

	"github.com/fitsphere/fitsphere-api/internal/application"
	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET ACHIEVEMENT QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetAchievementQuery содержит параметры запроса.
type GetAchievementQuery struct {
	// AchievementID - идентификатор достижения.
	AchievementID string

	// UserID - запрашивающий пользователь (только владелец).
	UserID string
}

// GetAchievementHandler handles the GetAchievementQuery.
type GetAchievementHandler struct {
	store  application.Store
	logger *slog.Logger
}

// NewGetAchievementHandler creates a new GetAchievementHandler.
func NewGetAchievementHandler(store application.Store, logger *slog.Logger) *GetAchievementHandler {
	return &GetAchievementHandler{
		store:  store,
		logger: logger.With("query", "get_achievement"),
	}
}

// Handle executes the query.
func (h *GetAchievementHandler) Handle(ctx context.Context, q GetAchievementQuery) (*AchievementDTO, error) {
	a, err := h.store.Achievements().GetByID(ctx, q.AchievementID)
	if err != nil {
		return nil, err
	}
	if a.OwnerID != q.UserID {
		return nil, shared.ErrForbidden
	}

	dto := AchievementDTO{
		ID:          a.ID,
		OwnerID:     a.OwnerID,
		Title:       a.Title,
		Description: a.Description,
		BadgeID:     a.BadgeID,
		IsSystem:    a.IsSystem,
		GoalID:      a.GoalID,
		AchievedAt:  a.AchievedAt,
	}
	if a.GoalID != "" {
		if g, err := h.store.Goals().GetByID(ctx, a.GoalID); err == nil {
			dto.GoalTitle = g.Title
		}
	}
	return &dto, nil
}
