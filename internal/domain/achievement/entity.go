// Package achievement содержит доменную модель достижений.
// Достижение - одноразовый бейдж, привязанный к пользователю и опционально
// к цели. Чеканится идемпотентно: не больше одного достижения с данным
// названием на пользователя.
package achievement

import (
	"strings"
	"time"

	"github.com/fitsphere/fitsphere-api/internal/domain/shared"

	"github.com/google/uuid"
)

// ══════════════════════════════════════════════════════════════════════════════
// SYSTEM ACHIEVEMENT TITLES
// ══════════════════════════════════════════════════════════════════════════════

// Названия системных достижений. Пара (владелец, название) уникальна,
// поэтому названия являются фактическими ключами дедупликации.
const (
	TitleFirstGoal     = "First Goal Completed"
	TitleMultipleGoals = "Multiple Goals Master"
	TitleGoalMaster    = "Goal Master"
	TitleAheadOfTime   = "Ahead of Schedule"
	TitleConsistency   = "Consistency Champion"
	TitleStreak        = "Progress Streak"
)

// ══════════════════════════════════════════════════════════════════════════════
// ACHIEVEMENT ENTITY
// ══════════════════════════════════════════════════════════════════════════════

// Achievement представляет достижение пользователя.
// После создания не изменяется и автоматически не удаляется.
type Achievement struct {
	ID          string
	OwnerID     string
	GoalID      string // пустая строка = без привязки к цели (слабая ссылка)
	Title       string
	Description string
	BadgeID     string
	IsSystem    bool
	AchievedAt  time.Time
	CreatedAt   time.Time
}

// New создаёт новое достижение.
func New(ownerID, goalID, title, description, badgeID string, isSystem bool, now time.Time) (*Achievement, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.ErrEmptyAchievement
	}
	return &Achievement{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		GoalID:      goalID,
		Title:       title,
		Description: description,
		BadgeID:     badgeID,
		IsSystem:    isSystem,
		AchievedAt:  now,
		CreatedAt:   now,
	}, nil
}
