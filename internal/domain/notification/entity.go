// Package notification содержит доменную модель уведомлений FitSphere.
// Уведомления — побочный эффект "по возможности": их создание никогда не
// должно ломать вызвавшую операцию.
package notification

import (
	"time"

	"github.com/fitsphere/fitsphere-api/internal/domain/shared"

	"github.com/google/uuid"
)

// ══════════════════════════════════════════════════════════════════════════════
// NOTIFICATION TYPE
// ══════════════════════════════════════════════════════════════════════════════

// Type определяет тип уведомления.
type Type string

const (
	// TypeReminder - напоминание о цели.
	// "You've created a new goal: ..."
	TypeReminder Type = "reminder"

	// TypeCompleted - цель завершена.
	// "Congratulations! You've completed your goal ..."
	TypeCompleted Type = "completed"

	// TypeDeadline - приближается дедлайн цели.
	// "Your goal '...' is due in N days!"
	TypeDeadline Type = "deadline"

	// TypeAchievementUnlocked - получено достижение.
	// "You've earned the '...' achievement"
	TypeAchievementUnlocked Type = "achievement_unlocked"

	// TypeMilestone - пересечён порог прогресса (25/50/75%).
	// "You're 50% of the way to completing '...'"
	TypeMilestone Type = "milestone"

	// TypeSystem - служебное уведомление.
	TypeSystem Type = "system"
)

// IsValid проверяет корректность типа уведомления.
func (t Type) IsValid() bool {
	switch t {
	case TypeReminder, TypeCompleted, TypeDeadline,
		TypeAchievementUnlocked, TypeMilestone, TypeSystem:
		return true
	}
	return false
}

// String возвращает строковое представление типа.
func (t Type) String() string {
	return string(t)
}

// ══════════════════════════════════════════════════════════════════════════════
// NOTIFICATION ENTITY
// ══════════════════════════════════════════════════════════════════════════════

// Notification представляет уведомление пользователя.
// Изменяется только флаг прочтения; удалить может владелец.
type Notification struct {
	ID            string
	OwnerID       string
	Title         string
	Content       string
	Type          Type
	IsRead        bool
	GoalID        string // опциональная ссылка на цель
	AchievementID string // опциональная ссылка на достижение
	CreatedAt     time.Time
}

// New создаёт новое уведомление.
func New(ownerID, title, content string, t Type, goalID, achievementID string, now time.Time) (*Notification, error) {
	if !t.IsValid() {
		return nil, shared.NewDomainError("notification", "Validate", shared.ErrInvalidInput, "invalid notification type")
	}
	if title == "" || content == "" {
		return nil, shared.NewDomainError("notification", "Validate", shared.ErrEmptyValue, "title and content are required")
	}
	return &Notification{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		Title:         title,
		Content:       content,
		Type:          t,
		IsRead:        false,
		GoalID:        goalID,
		AchievementID: achievementID,
		CreatedAt:     now,
	}, nil
}

// MarkRead помечает уведомление прочитанным.
func (n *Notification) MarkRead() {
	n.IsRead = true
}

// IsOwnedBy проверяет принадлежность уведомления пользователю.
func (n *Notification) IsOwnedBy(userID string) bool {
	return n.OwnerID == userID
}
