package query

import (
	"context"
	"log/slog"
	"time"

	"github.com/fitsphere/fitsphere-api/internal/application"
	"github.com/fitsphere/fitsphere-api/internal/domain/notification"
	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST NOTIFICATIONS QUERY
// Уведомления пользователя, новые первыми, с фильтром по типу и флагу
// прочтения. Отдельно возвращается общее число непрочитанных.
// ══════════════════════════════════════════════════════════════════════════════

// ListNotificationsQuery содержит параметры запроса.
type ListNotificationsQuery struct {
	// UserID - получатель уведомлений.
	UserID string

	// Type - фильтр по типу (пустая строка = все).
	Type string

	// UnreadOnly - только непрочитанные.
	UnreadOnly bool

	// Offset и Limit - пагинация.
	Offset int
	Limit  int
}

// NotificationDTO - уведомление в ответе.
type NotificationDTO struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Type          string    `json:"type"`
	IsRead        bool      `json:"is_read"`
	GoalID        string    `json:"goal_id,omitempty"`
	AchievementID string    `json:"achievement_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// NotificationPageDTO - страница уведомлений с числом непрочитанных.
type NotificationPageDTO struct {
	shared.PagedResult[NotificationDTO]
	UnreadCount int64 `json:"unread_count"`
}

// ListNotificationsHandler handles the ListNotificationsQuery.
type ListNotificationsHandler struct {
	store  application.Store
	logger *slog.Logger
}

// NewListNotificationsHandler creates a new ListNotificationsHandler.
func NewListNotificationsHandler(store application.Store, logger *slog.Logger) *ListNotificationsHandler {
	return &ListNotificationsHandler{
		store:  store,
		logger: logger.With("query", "list_notifications"),
	}
}

// Handle executes the query.
func (h *ListNotificationsHandler) Handle(ctx context.Context, q ListNotificationsQuery) (*NotificationPageDTO, error) {
	if q.UserID == "" {
		return nil, shared.NewDomainError("notification", "List", shared.ErrInvalidInput, "user_id is required")
	}

	filter := notification.Filter{
		Type:       notification.Type(q.Type),
		UnreadOnly: q.UnreadOnly,
	}
	page := shared.Page{Offset: q.Offset, Limit: q.Limit}.Normalize()

	notifications, err := h.store.Notifications().ListByOwner(ctx, q.UserID, filter, page)
	if err != nil {
		return nil, shared.WrapError("notification", "List", err)
	}
	total, err := h.store.Notifications().CountByOwner(ctx, q.UserID, filter)
	if err != nil {
		return nil, shared.WrapError("notification", "List", err)
	}
	unread, err := h.store.Notifications().CountUnread(ctx, q.UserID)
	if err != nil {
		return nil, shared.WrapError("notification", "List", err)
	}

	items := make([]NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, NotificationDTO{
			ID:            n.ID,
			Title:         n.Title,
			Content:       n.Content,
			Type:          n.Type.String(),
			IsRead:        n.IsRead,
			GoalID:        n.GoalID,
			AchievementID: n.AchievementID,
			CreatedAt:     n.CreatedAt,
		})
	}

	return &NotificationPageDTO{
		PagedResult: shared.NewPagedResult(items, int(total), page),
		UnreadCount: unread,
	}, nil
}
