// Package query contains read operations following CQRS pattern.
// Queries never modify state - they only read and return data.
// Each query is a self-contained use case with its own request/response types.
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
// GET GOAL DETAIL QUERY
// Возвращает цель с производными полями: процент выполнения, последнее
// значение прогресса, оставшееся время и история записей.
// ══════════════════════════════════════════════════════════════════════════════

// GetGoalDetailQuery содержит параметры запроса.
type GetGoalDetailQuery struct {
	// GoalID - идентификатор цели.
	GoalID string

	// UserID - запрашивающий пользователь. Доступ: владелец или публичная цель.
	UserID string
}

// ProgressEntryDTO - запись прогресса в ответе.
type ProgressEntryDTO struct {
	ID        string    `json:"id"`
	GoalID    string    `json:"goal_id"`
	Date      time.Time `json:"date"`
	Value     float64   `json:"value"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// GoalDetailDTO - цель со всеми производными полями. Неизменяемый снимок:
// производные значения копируются в DTO, сущность цели не обогащается.
type GoalDetailDTO struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category"`
	TargetValue *float64   `json:"target_value,omitempty"`
	StartDate   time.Time  `json:"start_date"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Status      string     `json:"status"`
	IsPublic    bool       `json:"is_public"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	CompletionPercent float64            `json:"completion_percentage"`
	LatestValue       *float64           `json:"latest_progress,omitempty"`
	TimeRemainingDays *int               `json:"time_remaining,omitempty"`
	IsOnTrack         *bool              `json:"is_on_track,omitempty"`
	ProgressHistory   []ProgressEntryDTO `json:"progress_history"`
}

// GoalDetailCache caches assembled goal detail DTOs. Implemented in the
// infrastructure layer on Redis; a nil cache disables caching.
type GoalDetailCache interface {
	Get(ctx context.Context, goalID string) (*GoalDetailDTO, bool)
	Set(ctx context.Context, dto *GoalDetailDTO)
	Invalidate(ctx context.Context, goalID string)
}

// GetGoalDetailHandler handles the GetGoalDetailQuery.
type GetGoalDetailHandler struct {
	store  application.Store
	cache  GoalDetailCache
	logger *slog.Logger
}

// NewGetGoalDetailHandler creates a new GetGoalDetailHandler.
func NewGetGoalDetailHandler(store application.Store, cache GoalDetailCache, logger *slog.Logger) *GetGoalDetailHandler {
	return &GetGoalDetailHandler{
		store:  store,
		cache:  cache,
		logger: logger.With("query", "get_goal_detail"),
	}
}

// Handle executes the query.
func (h *GetGoalDetailHandler) Handle(ctx context.Context, q GetGoalDetailQuery) (*GoalDetailDTO, error) {
	if h.cache != nil {
		if dto, ok := h.cache.Get(ctx, q.GoalID); ok {
			if err := authorizeGoalRead(dto.OwnerID, dto.IsPublic, q.UserID); err != nil {
				return nil, err
			}
			return dto, nil
		}
	}

	g, err := h.store.Goals().GetByID(ctx, q.GoalID)
	if err != nil {
		return nil, err
	}
	if err := authorizeGoalRead(g.OwnerID, g.IsPublic, q.UserID); err != nil {
		return nil, err
	}

	entries, err := h.store.Progress().ListByGoal(ctx, g.ID)
	if err != nil {
		return nil, shared.WrapError("goal", "GetDetail", err)
	}

	dto := buildGoalDetail(g, entries, time.Now().UTC())

	if h.cache != nil {
		h.cache.Set(ctx, dto)
	}
	return dto, nil
}

// authorizeGoalRead allows reads by the owner or anyone for public goals.
func authorizeGoalRead(ownerID string, isPublic bool, userID string) error {
	if isPublic || ownerID == userID {
		return nil
	}
	return shared.ErrNotGoalOwner
}

// buildGoalDetail assembles the detail DTO from the goal and its entries.
func buildGoalDetail(g *goal.Goal, entries []*goal.Entry, now time.Time) *GoalDetailDTO {
	latest := goal.LatestEntry(entries)
	percent := goal.CompletionPercent(g.TargetValue, latest)

	dto := &GoalDetailDTO{
		ID:                g.ID,
		OwnerID:           g.OwnerID,
		Title:             g.Title,
		Description:       g.Description,
		Category:          g.Category.String(),
		TargetValue:       g.TargetValue,
		StartDate:         g.StartDate,
		Deadline:          g.Deadline,
		Status:            g.Status.String(),
		IsPublic:          g.IsPublic,
		CreatedAt:         g.CreatedAt,
		UpdatedAt:         g.UpdatedAt,
		CompletionPercent: percent,
		TimeRemainingDays: g.TimeRemainingDays(now),
		ProgressHistory:   make([]ProgressEntryDTO, 0, len(entries)),
	}

	if latest != nil {
		v := latest.Value
		dto.LatestValue = &v
	}

	// On-track is only defined when there is a deadline, a target and at
	// least one measurement.
	if g.Deadline != nil && latest != nil && g.TargetValue != nil {
		total := g.Deadline.Sub(g.StartDate).Seconds()
		elapsed := now.Sub(g.StartDate).Seconds()
		elapsedPercent := 100.0
		if total > 0 {
			elapsedPercent = (elapsed / total) * 100
		}
		onTrack := percent >= elapsedPercent
		dto.IsOnTrack = &onTrack
	}

	for _, e := range entries {
		dto.ProgressHistory = append(dto.ProgressHistory, ProgressEntryDTO{
			ID:        e.ID,
			GoalID:    e.GoalID,
			Date:      e.Date,
			Value:     e.Value,
			Note:      e.Note,
			CreatedAt: e.CreatedAt,
		})
	}
	return dto
}
