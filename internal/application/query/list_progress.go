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
// LIST PROGRESS QUERY
// История прогресса цели с пагинацией. Каждая запись дополнена контекстом
// цели: названием, целевым значением и процентом для этой записи.
// ══════════════════════════════════════════════════════════════════════════════

// ListProgressQuery содержит параметры запроса истории прогресса.
type ListProgressQuery struct {
	// GoalID - цель, чья история запрашивается.
	GoalID string

	// UserID - запрашивающий пользователь (владелец или публичная цель).
	UserID string

	// SortOrder - asc или desc по дате (по умолчанию desc).
	SortOrder string

	// Offset и Limit - пагинация.
	Offset int
	Limit  int
}

// ProgressDetailDTO - запись прогресса с контекстом цели.
type ProgressDetailDTO struct {
	ID                string    `json:"id"`
	GoalID            string    `json:"goal_id"`
	Date              time.Time `json:"date"`
	Value             float64   `json:"value"`
	Note              string    `json:"note,omitempty"`
	GoalTitle         string    `json:"goal_title"`
	TargetValue       *float64  `json:"target_value,omitempty"`
	CompletionPercent *float64  `json:"percentage,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ListProgressHandler handles the ListProgressQuery.
type ListProgressHandler struct {
	store  application.Store
	logger *slog.Logger
}

// NewListProgressHandler creates a new ListProgressHandler.
func NewListProgressHandler(store application.Store, logger *slog.Logger) *ListProgressHandler {
	return &ListProgressHandler{
		store:  store,
		logger: logger.With("query", "list_progress"),
	}
}

// Handle executes the query.
func (h *ListProgressHandler) Handle(ctx context.Context, q ListProgressQuery) (*shared.PagedResult[ProgressDetailDTO], error) {
	g, err := h.store.Goals().GetByID(ctx, q.GoalID)
	if err != nil {
		return nil, err
	}
	if err := authorizeGoalRead(g.OwnerID, g.IsPublic, q.UserID); err != nil {
		return nil, err
	}

	order := shared.SortDesc
	if q.SortOrder == "asc" {
		order = shared.SortAsc
	}
	page := shared.Page{Offset: q.Offset, Limit: q.Limit}.Normalize()

	entries, err := h.store.Progress().ListByGoalPaged(ctx, g.ID, shared.Sort{Field: "date", Order: order}, page)
	if err != nil {
		return nil, shared.WrapError("progress", "List", err)
	}
	total, err := h.store.Progress().CountByGoal(ctx, g.ID)
	if err != nil {
		return nil, shared.WrapError("progress", "List", err)
	}

	items := make([]ProgressDetailDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, progressDetail(e, g))
	}

	result := shared.NewPagedResult(items, total, page)
	return &result, nil
}

// progressDetail assembles the detail DTO for one entry.
func progressDetail(e *goal.Entry, g *goal.Goal) ProgressDetailDTO {
	dto := ProgressDetailDTO{
		ID:          e.ID,
		GoalID:      e.GoalID,
		Date:        e.Date,
		Value:       e.Value,
		Note:        e.Note,
		GoalTitle:   g.Title,
		TargetValue: g.TargetValue,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if g.HasTarget() {
		p := goal.CompletionPercentOf(g.TargetValue, e.Value)
		dto.CompletionPercent = &p
	}
	return dto
}
