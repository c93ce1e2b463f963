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
// LIST GOALS QUERY
// Список целей пользователя с фильтрацией, сортировкой и пагинацией.
// Каждый элемент содержит производный процент выполнения.
// ══════════════════════════════════════════════════════════════════════════════

// ListGoalsQuery содержит параметры запроса списка целей.
type ListGoalsQuery struct {
	// OwnerID - чьи цели listить.
	OwnerID string

	// Status - фильтр по статусу (пустая строка = все).
	Status string

	// Category - фильтр по категории (пустая строка = все).
	Category string

	// Search - поиск по подстроке в названии и описании.
	Search string

	// SortBy - поле сортировки (created_at, deadline, title).
	SortBy string

	// SortOrder - asc или desc.
	SortOrder string

	// Offset и Limit - пагинация.
	Offset int
	Limit  int
}

// GoalSummaryDTO - элемент списка целей.
type GoalSummaryDTO struct {
	ID                string     `json:"id"`
	OwnerID           string     `json:"owner_id"`
	Title             string     `json:"title"`
	Category          string     `json:"category"`
	TargetValue       *float64   `json:"target_value,omitempty"`
	StartDate         time.Time  `json:"start_date"`
	Deadline          *time.Time `json:"deadline,omitempty"`
	Status            string     `json:"status"`
	IsPublic          bool       `json:"is_public"`
	CompletionPercent float64    `json:"completion_percentage"`
	CreatedAt         time.Time  `json:"created_at"`
}

// ListGoalsHandler handles the ListGoalsQuery.
type ListGoalsHandler struct {
	store  application.Store
	logger *slog.Logger
}

// NewListGoalsHandler creates a new ListGoalsHandler.
func NewListGoalsHandler(store application.Store, logger *slog.Logger) *ListGoalsHandler {
	return &ListGoalsHandler{
		store:  store,
		logger: logger.With("query", "list_goals"),
	}
}

// Handle executes the query.
func (h *ListGoalsHandler) Handle(ctx context.Context, q ListGoalsQuery) (*shared.PagedResult[GoalSummaryDTO], error) {
	if q.OwnerID == "" {
		return nil, shared.NewDomainError("goal", "List", shared.ErrInvalidInput, "owner_id is required")
	}

	filter := goal.Filter{
		Status:   goal.Status(q.Status),
		Category: goal.Category(q.Category),
		Search:   q.Search,
	}
	sort := goalSort(q.SortBy, q.SortOrder)
	page := shared.Page{Offset: q.Offset, Limit: q.Limit}.Normalize()

	goals, err := h.store.Goals().ListByOwner(ctx, q.OwnerID, filter, sort, page)
	if err != nil {
		return nil, shared.WrapError("goal", "List", err)
	}
	total, err := h.store.Goals().CountByOwner(ctx, q.OwnerID, filter)
	if err != nil {
		return nil, shared.WrapError("goal", "List", err)
	}

	items, err := h.summarize(ctx, goals)
	if err != nil {
		return nil, err
	}

	result := shared.NewPagedResult(items, total, page)
	return &result, nil
}

// summarize maps goals to summary DTOs, deriving completion from the latest
// entry per goal.
func (h *ListGoalsHandler) summarize(ctx context.Context, goals []*goal.Goal) ([]GoalSummaryDTO, error) {
	items := make([]GoalSummaryDTO, 0, len(goals))
	for _, g := range goals {
		latest, err := h.store.Progress().Latest(ctx, g.ID)
		if err != nil {
			return nil, shared.WrapError("goal", "List", err)
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
	return items, nil
}

// goalSort maps request sort parameters to a whitelisted shared.Sort.
func goalSort(field, order string) shared.Sort {
	switch field {
	case "deadline", "title", "start_date", "updated_at":
	default:
		field = "created_at"
	}
	o := shared.SortDesc
	if order == "asc" {
		o = shared.SortAsc
	}
	return shared.Sort{Field: field, Order: o}
}
