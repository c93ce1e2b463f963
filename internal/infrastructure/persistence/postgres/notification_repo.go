package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/fitsphere/fitsphere-api/internal/domain/notification"
	"github.com/fitsphere/fitsphere-api/internal/domain/shared"

	"github.com/jackc/pgx/v5"
)

// ══════════════════════════════════════════════════════════════════════════════
// NOTIFICATION REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

const notificationColumns = `id, user_id, title, content, type, is_read,
	   goal_id, achievement_id, created_at`

// NotificationRepository implements notification.Repository for PostgreSQL.
type NotificationRepository struct {
	q Querier
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(q Querier) *NotificationRepository {
	return &NotificationRepository{q: q}
}

// Create creates a new notification.
func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	query := `
		INSERT INTO notifications (
			id, user_id, title, content, type, is_read,
			goal_id, achievement_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.q.Exec(ctx, query,
		n.ID,
		n.OwnerID,
		n.Title,
		n.Content,
		string(n.Type),
		n.IsRead,
		nilIfEmpty(n.GoalID),
		nilIfEmpty(n.AchievementID),
		n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// GetByID returns a notification by ID.
func (r *NotificationRepository) GetByID(ctx context.Context, id string) (*notification.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`

	row := r.q.QueryRow(ctx, query, id)
	return r.scanNotification(row)
}

// MarkRead marks a notification as read.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotificationNotFound
	}
	return nil
}

// Delete removes a notification.
func (r *NotificationRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotificationNotFound
	}
	return nil
}

// ListByOwner returns the owner's notifications, newest first.
func (r *NotificationRepository) ListByOwner(ctx context.Context, ownerID string, f notification.Filter, p shared.Page) ([]*notification.Notification, error) {
	where, args := notificationFilterClauses(f, ownerID)

	query := fmt.Sprintf(
		`SELECT %s FROM notifications WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		notificationColumns,
		strings.Join(where, " AND "),
		len(args)+1,
		len(args)+2,
	)
	args = append(args, p.Limit, p.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	return r.scanNotifications(rows)
}

// CountByOwner counts the owner's notifications matching the filter.
func (r *NotificationRepository) CountByOwner(ctx context.Context, ownerID string, f notification.Filter) (int64, error) {
	where, args := notificationFilterClauses(f, ownerID)

	query := fmt.Sprintf(`SELECT COUNT(*) FROM notifications WHERE %s`, strings.Join(where, " AND "))

	var count int64
	if err := r.q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return count, nil
}

// CountUnread counts the owner's unread notifications.
func (r *NotificationRepository) CountUnread(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read`,
		ownerID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// notificationFilterClauses builds WHERE clauses for notification listings.
func notificationFilterClauses(f notification.Filter, ownerID string) ([]string, []interface{}) {
	where := []string{"user_id = $1"}
	args := []interface{}{ownerID}

	if f.Type != "" {
		args = append(args, string(f.Type))
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	if f.UnreadOnly {
		where = append(where, "NOT is_read")
	}
	return where, args
}

// scanNotification scans a single notification from a row.
func (r *NotificationRepository) scanNotification(row pgx.Row) (*notification.Notification, error) {
	var n notification.Notification
	var nType string
	var goalID, achievementID *string

	err := row.Scan(
		&n.ID,
		&n.OwnerID,
		&n.Title,
		&n.Content,
		&nType,
		&n.IsRead,
		&goalID,
		&achievementID,
		&n.CreatedAt,
	)
	if IsNoRows(err) {
		return nil, shared.ErrNotificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan notification: %w", err)
	}

	n.Type = notification.Type(nType)
	if goalID != nil {
		n.GoalID = *goalID
	}
	if achievementID != nil {
		n.AchievementID = *achievementID
	}
	return &n, nil
}

// scanNotifications scans multiple notifications from rows.
func (r *NotificationRepository) scanNotifications(rows pgx.Rows) ([]*notification.Notification, error) {
	var notifications []*notification.Notification

	for rows.Next() {
		var n notification.Notification
		var nType string
		var goalID, achievementID *string

		err := rows.Scan(
			&n.ID,
			&n.OwnerID,
			&n.Title,
			&n.Content,
			&nType,
			&n.IsRead,
			&goalID,
			&achievementID,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}

		n.Type = notification.Type(nType)
		if goalID != nil {
			n.GoalID = *goalID
		}
		if achievementID != nil {
			n.AchievementID = *achievementID
		}
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}
