// Package goal содержит доменную модель целей и прогресса.
package goal

import (
	"fmt"
	"math"
	"time"

	"github.com/fitsphere/fitsphere-api/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESS ASSESSMENT
// ══════════════════════════════════════════════════════════════════════════════

// Метки статуса выполнения относительно прошедшего времени.
const (
	StatusLabelOnTrack  = "On Track"
	StatusLabelSlightly = "Slightly Behind"
	StatusLabelBehind   = "Significantly Behind"
	StatusLabelAhead    = "Ahead of Schedule"
)

// Assessment - моментальная оценка прогресса по цели: процент выполнения
// против процента прошедшего времени, статусная метка, текстовая обратная
// связь и список предупреждений. Возвращается как неизменяемый DTO, ничего
// не дописывается в сущность Goal.
type Assessment struct {
	GoalID             string   `json:"goal_id"`
	CompletionPercent  float64  `json:"completion_percentage"`
	CurrentValue       float64  `json:"current_value"`
	TargetValue        *float64 `json:"target_value"`
	TimeElapsedPercent float64  `json:"time_elapsed_percentage"`
	IsOnTrack          bool     `json:"is_on_track"`
	StatusMessage      string   `json:"status_message"`
	Feedback           string   `json:"feedback"`
	Alerts             []string `json:"alerts"`
}

// Assess строит оценку прогресса. Чистая функция от цели, истории прогресса
// и текущего момента.
func Assess(g *Goal, entries []*Entry, now time.Time) Assessment {
	sorted := make([]*Entry, len(entries))
	copy(sorted, entries)
	SortEntriesByDate(sorted)

	latest := LatestEntry(sorted)
	currentValue := 0.0
	if latest != nil {
		currentValue = latest.Value
	}

	completion := CompletionPercent(g.TargetValue, latest)

	// Процент прошедшего времени: для целей без дедлайна считается 100%.
	elapsed := 100.0
	if g.Deadline != nil {
		total := g.Deadline.Sub(g.StartDate).Seconds()
		if total > 0 {
			elapsed = now.Sub(g.StartDate).Seconds() / total * 100
		}
		if elapsed > 100 {
			elapsed = 100
		}
	}

	onTrack := completion >= elapsed

	status := StatusLabelOnTrack
	if !onTrack {
		if completion >= elapsed*0.8 {
			status = StatusLabelSlightly
		} else {
			status = StatusLabelBehind
		}
	} else if completion >= elapsed*1.2 {
		status = StatusLabelAhead
	}

	return Assessment{
		GoalID:             g.ID,
		CompletionPercent:  round2(completion),
		CurrentValue:       currentValue,
		TargetValue:        g.TargetValue,
		TimeElapsedPercent: round2(elapsed),
		IsOnTrack:          onTrack,
		StatusMessage:      status,
		Feedback:           feedback(completion, elapsed, sorted),
		Alerts:             alerts(g, completion, elapsed, sorted, now),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// feedback подбирает текст обратной связи по соотношению выполнения и
// прошедшего времени, с учётом направления трёх последних записей.
func feedback(completion, elapsed float64, sorted []*Entry) string {
	if len(sorted) == 0 {
		return "No progress has been recorded yet. Add your first progress update to get started!"
	}

	ratio := 1.0
	if elapsed > 0 {
		ratio = completion / elapsed
	}

	improving, declining := false, false
	if len(sorted) >= 3 {
		last := sorted[len(sorted)-3:]
		improving = last[2].Value > last[1].Value && last[1].Value > last[0].Value
		declining = last[2].Value < last[1].Value && last[1].Value < last[0].Value
	}

	switch {
	case ratio >= 1.2:
		if improving {
			return "Excellent progress! You're well ahead of schedule and your recent updates show continued improvement. Keep up the great work!"
		}
		return "You're ahead of schedule! Your progress is exceeding expectations. Maintain this pace to achieve your goal early."
	case ratio >= 0.9:
		if improving {
			return "You're on track to meet your goal. Your recent progress shows improvement, which is a great sign. Keep it up!"
		}
		if declining {
			return "You're currently on pace, but your recent progress is slowing down. Try to maintain your initial momentum to ensure you meet your goal."
		}
		return "You're making steady progress toward your goal. Keep up the consistent effort to stay on track."
	case ratio >= 0.7:
		if improving {
			return "You're slightly behind schedule, but your recent progress is trending in the right direction. With continued effort, you can get back on track."
		}
		return "You're falling a bit behind schedule. Consider increasing your efforts to ensure you meet your deadline."
	default:
		if improving {
			return "You're significantly behind schedule, but your recent progress shows improvement. Keep this momentum to work toward your goal."
		}
		return "You're considerably behind schedule. You may need to reassess your approach or adjust your goal to make it more achievable."
	}
}

// alerts собирает предупреждения: отсутствие записей, затишье в обновлениях,
// близость или просрочка дедлайна, серьёзное отставание, близость к финишу.
func alerts(g *Goal, completion, elapsed float64, sorted []*Entry, now time.Time) []string {
	out := []string{}

	if len(sorted) == 0 {
		return append(out, "No progress recorded yet")
	}

	latest := sorted[len(sorted)-1]
	sinceUpdate := timeutil.DaysSince(now, latest.Date)
	if sinceUpdate > 7 {
		out = append(out, fmt.Sprintf("No updates in %d days", sinceUpdate))
	}

	if g.Deadline != nil {
		toDeadline := timeutil.DaysUntil(now, *g.Deadline)
		switch {
		case toDeadline >= 0 && toDeadline <= 3:
			out = append(out, fmt.Sprintf("Deadline approaching in %d days", toDeadline))
		case toDeadline < 0:
			out = append(out, "Goal deadline has passed")
		}
	}

	ratio := 1.0
	if elapsed > 0 {
		ratio = completion / elapsed
	}
	if ratio < 0.7 && elapsed > 30 {
		out = append(out, "Significantly behind schedule")
	}

	if completion >= 90 && completion < 100 {
		out = append(out, "Almost at goal completion")
	}

	return out
}
