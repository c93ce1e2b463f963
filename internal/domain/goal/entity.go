// Package goal содержит доменную модель целей и прогресса.
// Это ядро бизнес-логики FitSphere: цели, записи прогресса, вычисление
// процента выполнения, оценка темпа и прогноз завершения.
// Здесь нет внешних зависимостей, кроме генерации UUID.
package goal

import (
	"strings"
	"time"

	"github.com/fitsphere/fitsphere-api/internal/domain/shared"

	"github.com/google/uuid"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENUMS
// ══════════════════════════════════════════════════════════════════════════════

// Category определяет категорию цели.
type Category string

const (
	CategoryWeightLoss  Category = "weight_loss"
	CategoryMuscleGain  Category = "muscle_gain"
	CategoryCardio      Category = "cardio"
	CategoryStrength    Category = "strength"
	CategoryFlexibility Category = "flexibility"
	CategoryEndurance   Category = "endurance"
	CategoryCustom      Category = "custom"
)

// Categories возвращает все допустимые категории.
func Categories() []Category {
	return []Category{
		CategoryWeightLoss,
		CategoryMuscleGain,
		CategoryCardio,
		CategoryStrength,
		CategoryFlexibility,
		CategoryEndurance,
		CategoryCustom,
	}
}

// IsValid проверяет корректность категории.
func (c Category) IsValid() bool {
	switch c {
	case CategoryWeightLoss, CategoryMuscleGain, CategoryCardio,
		CategoryStrength, CategoryFlexibility, CategoryEndurance, CategoryCustom:
		return true
	}
	return false
}

// String возвращает строковое представление категории.
func (c Category) String() string {
	return string(c)
}

// DisplayName возвращает человекочитаемое название категории
// (используется в заголовках достижений "{Category} Expert").
func (c Category) DisplayName() string {
	switch c {
	case CategoryWeightLoss:
		return "Weight Loss"
	case CategoryMuscleGain:
		return "Muscle Gain"
	case CategoryCardio:
		return "Cardio"
	case CategoryStrength:
		return "Strength"
	case CategoryFlexibility:
		return "Flexibility"
	case CategoryEndurance:
		return "Endurance"
	case CategoryCustom:
		return "Custom"
	}
	return string(c)
}

// Status определяет статус цели.
type Status string

const (
	// StatusInProgress - начальный статус, цель активна.
	StatusInProgress Status = "in_progress"

	// StatusCompleted - терминальный статус, цель достигнута.
	StatusCompleted Status = "completed"

	// StatusMissed - терминальный статус, цель провалена.
	// Устанавливается только явным действием владельца, автоматического
	// перехода по истечении дедлайна нет.
	StatusMissed Status = "missed"
)

// IsValid проверяет корректность статуса.
func (s Status) IsValid() bool {
	return s == StatusInProgress || s == StatusCompleted || s == StatusMissed
}

// IsTerminal сообщает, является ли статус терминальным.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusMissed
}

// CanTransitionTo проверяет допустимость перехода статуса.
// Переходы определены только из in_progress; повторная установка того же
// статуса переходом не считается.
func (s Status) CanTransitionTo(target Status) bool {
	if s == target {
		return true
	}
	return s == StatusInProgress && (target == StatusCompleted || target == StatusMissed)
}

// String возвращает строковое представление статуса.
func (s Status) String() string {
	return string(s)
}

// ══════════════════════════════════════════════════════════════════════════════
// GOAL ENTITY
// ══════════════════════════════════════════════════════════════════════════════

// Goal представляет цель пользователя: целевой показатель с опциональным
// числовым значением и опциональным дедлайном.
type Goal struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Category    Category
	TargetValue *float64
	StartDate   time.Time
	Deadline    *time.Time
	Status      Status
	IsPublic    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewGoal создаёт новую цель с валидацией инвариантов:
//   - длина названия 3..200 символов;
//   - целевое значение обязательно для всех категорий, кроме custom;
//   - дедлайн (если задан) строго позже даты старта и в будущем.
func NewGoal(ownerID, title, description string, category Category, target *float64, start time.Time, deadline *time.Time, isPublic bool, now time.Time) (*Goal, error) {
	title = strings.TrimSpace(title)
	if len(title) < 3 || len(title) > 200 {
		return nil, shared.ErrGoalTitleLength
	}
	if category == "" {
		category = CategoryCustom
	}
	if !category.IsValid() {
		return nil, shared.ErrInvalidGoalCategory
	}
	if category != CategoryCustom && target == nil {
		return nil, shared.ErrTargetRequired
	}
	if start.IsZero() {
		start = now
	}
	if deadline != nil {
		if !deadline.After(start) {
			return nil, shared.ErrDeadlineBeforeStart
		}
		if !deadline.After(now) {
			return nil, shared.ErrDeadlineNotFuture
		}
	}

	return &Goal{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Category:    category,
		TargetValue: target,
		StartDate:   start,
		Deadline:    deadline,
		Status:      StatusInProgress,
		IsPublic:    isPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsOwnedBy проверяет принадлежность цели пользователю.
func (g *Goal) IsOwnedBy(userID string) bool {
	return g.OwnerID == userID
}

// HasTarget сообщает, задано ли ненулевое целевое значение.
func (g *Goal) HasTarget() bool {
	return g.TargetValue != nil && *g.TargetValue != 0
}

// Update describes a partial update of goal fields. Nil pointers mean
// "leave unchanged" — the same convention the HTTP layer uses for PATCH.
type Update struct {
	Title       *string
	Description *string
	Category    *Category
	TargetValue *float64
	Deadline    *time.Time
	Status      *Status
	IsPublic    *bool
}

// Apply применяет частичное обновление с теми же инвариантами, что и NewGoal.
// Возвращает completed=true, если обновление перевело цель в статус completed
// (ровно при первом переходе — повторная установка completed изменением не является).
func (g *Goal) Apply(u Update, now time.Time) (completed bool, err error) {
	if u.Title != nil {
		t := strings.TrimSpace(*u.Title)
		if len(t) < 3 || len(t) > 200 {
			return false, shared.ErrGoalTitleLength
		}
		g.Title = t
	}
	if u.Description != nil {
		g.Description = *u.Description
	}
	if u.Category != nil {
		if !u.Category.IsValid() {
			return false, shared.ErrInvalidGoalCategory
		}
		g.Category = *u.Category
	}
	if u.TargetValue != nil {
		g.TargetValue = u.TargetValue
	}
	if g.Category != CategoryCustom && g.TargetValue == nil {
		return false, shared.ErrTargetRequired
	}
	if u.Deadline != nil {
		if !u.Deadline.After(g.StartDate) {
			return false, shared.ErrDeadlineBeforeStart
		}
		if !u.Deadline.After(now) {
			return false, shared.ErrDeadlineNotFuture
		}
		g.Deadline = u.Deadline
	}
	if u.IsPublic != nil {
		g.IsPublic = *u.IsPublic
	}
	if u.Status != nil {
		if !u.Status.IsValid() {
			return false, shared.ErrGoalStatusTransition
		}
		if !g.Status.CanTransitionTo(*u.Status) {
			return false, shared.ErrGoalStatusTransition
		}
		completed = g.Status != StatusCompleted && *u.Status == StatusCompleted
		g.Status = *u.Status
	}
	g.UpdatedAt = now
	return completed, nil
}

// MarkCompleted переводит цель в статус completed.
// Возвращает changed=false, если цель уже завершена (идемпотентность при
// повторных записях прогресса на уровне цели или выше).
// Переход из missed запрещён.
func (g *Goal) MarkCompleted(now time.Time) (changed bool, err error) {
	switch g.Status {
	case StatusCompleted:
		return false, nil
	case StatusMissed:
		return false, shared.ErrGoalStatusTransition
	}
	g.Status = StatusCompleted
	g.UpdatedAt = now
	return true, nil
}

// TargetReachedBy сообщает, достигает ли значение прогресса целевого значения.
// Для целей без целевого значения всегда false.
func (g *Goal) TargetReachedBy(value float64) bool {
	return g.TargetValue != nil && value >= *g.TargetValue
}

// TimeRemainingDays возвращает количество дней до дедлайна (минимум 0).
// Для целей без дедлайна возвращает nil.
func (g *Goal) TimeRemainingDays(now time.Time) *int {
	if g.Deadline == nil {
		return nil
	}
	days := int(g.Deadline.Sub(now).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return &days
}
