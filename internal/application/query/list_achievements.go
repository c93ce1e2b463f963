package query

import (
	"context"
	"log/slog"
	"time"

	"github.com/fitsphere/fitsphere-api/internal/application"
	"github.com/fitsphere/fitsphere-api/internal/domain/achievement"
	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST ACHIEVEMENTS QUERY
// Достижения пользователя, новые первыми. Ссылка на цель (если есть)
// дополняется её названием.
// ══════════════════════════════════════════════════════════════════════════════

// ListAchievementsQuery содержит параметры запроса.
type ListAchievementsQuery struct {
	// OwnerID - чьи достижения listить.
	OwnerID string

	// Offset и Limit - пагинация.
	Offset int
	Limit  int
}

// AchievementDTO - достижение в ответе.
type AchievementDTO struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	BadgeID     string    `json:"badge_id,omitempty"`
	IsSystem    bool      `json:"is_system"`
	GoalID      string    `json:"goal_id,omitempty"`
	GoalTitle   string    `json:"goal_title,omitempty"`
	AchievedAt  time.Time `json:"achieved_at"`
}

// ListAchievementsHandler handles the ListAchievementsQuery.
type ListAchievementsHandler struct {
	store  application.Store
	logger *slog.Logger
}

// NewListAchievementsHandler creates a new ListAchievementsHandler.
func NewListAchievementsHandler(store application.Store, logger *slog.Logger) *ListAchievementsHandler {
	return &ListAchievementsHandler{
		store:  store,
		logger: logger.With("query", "list_achievements"),
	}
}

// Handle executes the query.
func (h *ListAchievementsHandler) Handle(ctx context.Context, q ListAchievementsQuery) (*shared.PagedResult[AchievementDTO], error) {
	if q.OwnerID == "" {
		return nil, shared.NewDomainError("achievement", "List", shared.ErrInvalidInput, "owner_id is required")
	}

	page := shared.Page{Offset: q.Offset, Limit: q.Limit}.Normalize()
	sort := shared.Sort{Field: "achieved_at", Order: shared.SortDesc}

	achievements, err := h.store.Achievements().ListByOwner(ctx, q.OwnerID, sort, page)
	if err != nil {
		return nil, shared.WrapError("achievement", "List", err)
	}
	total, err := h.store.Achievements().CountByOwner(ctx, q.OwnerID)
	if err != nil {
		return nil, shared.WrapError("achievement", "List", err)
	}

	items := make([]AchievementDTO, 0, len(achievements))
	for _, a := range achievements {
		dto, err := h.toDTO(ctx, a)
		if err != nil {
			return nil, err
		}
		items = append(items, dto)
	}

	result := shared.NewPagedResult(items, total, page)
	return &result, nil
}

// toDTO maps an achievement, resolving the referenced goal's title. A goal
// deleted after the mint just leaves the title empty.
func (h *ListAchievementsHandler) toDTO(ctx context.Context, a *achievement.Achievement) (AchievementDTO, error) {
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
		g, err := h.store.Goals().GetByID(ctx, a.GoalID)
		if err == nil {
			dto.GoalTitle = g.Title
		} else if !shared.IsNotFound(err) {
			return dto, err
		}
	}
	return dto, nil
}
