package query

import (
	"context"
	"log/slog"

	"github.com/fitsphere/fitsphere-api/internal/application"
	"github.com/fitsphere/fitsphere-api/internal/domain/goal"
	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST PUBLIC GOALS QUERY
// Публичная лента целей сообщества: только цели с is_public=true,
// доступна любому аутентифицированному пользователю.
// ══════════════════════════════════════════════════════════════════════════════

// ListPublicGoalsQuery содержит параметры запроса публичной ленты.
type ListPublicGoalsQuery struct {
	// Category - фильтр по категории (пустая строка = все).
	Category string

	// Search - поиск по подстроке в названии и описании.
	Search string

	// Offset и Limit - пагинация.
	Offset int
	Limit  int
}

// ListPublicGoalsHandler handles the ListPublicGoalsQuery.
type ListPublicGoalsHandler struct {
	store  application.Store
	logger *slog.Logger
}

// NewListPublicGoalsHandler creates a new ListPublicGoalsHandler.
func NewListPublicGoalsHandler(store application.Store, logger *slog.Logger) *ListPublicGoalsHandler {
	return &ListPublicGoalsHandler{
		store:  store,
		logger: logger.With("query", "list_public_goals"),
	}
}

// Handle executes the query. Newest goals first.
func (h *ListPublicGoalsHandler) Handle(ctx context.Context, q ListPublicGoalsQuery) (*shared.PagedResult[GoalSummaryDTO], error) {
	filter := goal.Filter{
		Category: goal.Category(q.Category),
		Search:   q.Search,
	}
	sort := shared.Sort{Field: "created_at", Order: shared.SortDesc}
	page := shared.Page{Offset: q.Offset, Limit: q.Limit}.Normalize()

	goals, err := h.store.Goals().ListPublic(ctx, filter, sort, page)
	if err != nil {
		return nil, shared.WrapError("goal", "ListPublic", err)
	}
	total, err := h.store.Goals().CountPublic(ctx, filter)
	if err != nil {
		return nil, shared.WrapError("goal", "ListPublic", err)
	}

	items := make([]GoalSummaryDTO, 0, len(goals))
	for _, g := range goals {
		latest, err := h.store.Progress().Latest(ctx, g.ID)
		if err != nil {
			return nil, shared.WrapError("goal", "ListPublic", err)
		}
		items = append(items, GoalSummaryDTO{
			ID:                g.ID,
			OwnerID:           g.OwnerID,
			Title:             g.Title,
			Category:          g.Category.String(),
			TargetValue:       g.TargetValue,
			StartDate:         g.StartDate,
			Deadline:          g.Deadline,
			Status:            g.Status.String(),
			IsPublic:          g.IsPublic,
			CompletionPercent: goal.CompletionPercent(g.TargetValue, latest),
			CreatedAt:         g.CreatedAt,
		})
	}

	result := shared.NewPagedResult(items, total, page)
	return &result, nil
}
