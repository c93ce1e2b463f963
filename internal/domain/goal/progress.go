// Package goal содержит доменную модель целей и прогресса.
package goal

import (
	"sort"
	"time"

	"github.com/fitsphere/fitsphere-api/internal/domain/shared"

	"github.com/google/uuid"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESS ENTRY
// ══════════════════════════════════════════════════════════════════════════════

// Entry представляет датированное измерение прогресса по цели.
// Записи неизменяемы, кроме правок самого владельца.
type Entry struct {
	ID        string
	GoalID    string
	Date      time.Time
	Value     float64
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewEntry создаёт новую запись прогресса.
// Инвариант: дата записи не может быть в будущем.
func NewEntry(goalID string, date time.Time, value float64, note string, now time.Time) (*Entry, error) {
	if date.IsZero() {
		date = now
	}
	if date.After(now) {
		return nil, shared.ErrProgressDateFuture
	}
	return &Entry{
		ID:        uuid.NewString(),
		GoalID:    goalID,
		Date:      date,
		Value:     value,
		Note:      note,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// EntryUpdate describes a partial update of a progress entry.
type EntryUpdate struct {
	Date  *time.Time
	Value *float64
	Note  *string
}

// Apply применяет частичное обновление записи. Дата по-прежнему не может
// оказаться в будущем.
func (e *Entry) Apply(u EntryUpdate, now time.Time) error {
	if u.Date != nil {
		if u.Date.After(now) {
			return shared.ErrProgressDateFuture
		}
		e.Date = *u.Date
	}
	if u.Value != nil {
		e.Value = *u.Value
	}
	if u.Note != nil {
		e.Note = *u.Note
	}
	e.UpdatedAt = now
	return nil
}

// SortEntriesByDate сортирует записи по дате по возрастанию. При равных датах
// порядок детерминирован по времени создания.
func SortEntriesByDate(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date.Equal(entries[j].Date) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].Date.Before(entries[j].Date)
	})
}

// LatestEntry возвращает самую свежую по дате запись или nil. При равных
// датах побеждает запись, созданная позже.
func LatestEntry(entries []*Entry) *Entry {
	var latest *Entry
	for _, e := range entries {
		if latest == nil || e.Date.After(latest.Date) ||
			(e.Date.Equal(latest.Date) && e.CreatedAt.After(latest.CreatedAt)) {
			latest = e
		}
	}
	return latest
}
