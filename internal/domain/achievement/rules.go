// Package achievement содержит доменную модель достижений.
package achievement

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/fitsphere/fitsphere-api/internal/domain/goal"
	"github.com/fitsphere/fitsphere-api/pkg/timeutil"
)

// ═══════════════════════════════════════════════════════════════════════════
// ACHIEVEMENT EVALUATOR
//
// Оценивает историю целей и прогресса пользователя и чеканит достижения.
// Две точки входа:
//   - OnGoalCompleted  — при переходе цели в статус completed;
//   - OnProgressRecorded — при добавлении записи прогресса.
//
// Правила независимы: в одном проходе срабатывают все применимые, ни одно
// не подавляет другое. Повторная оценка при том же состоянии не создаёт
// дубликатов — защитой служит уникальность пары (владелец, название)
// на уровне хранилища.
// ═══════════════════════════════════════════════════════════════════════════

// Пороговые константы правил.
const (
	// multipleGoalsCount и goalMasterCount проверяются на точное равенство:
	// правило срабатывает ровно на пороге, а не на каждом значении выше.
	multipleGoalsCount = 5
	goalMasterCount    = 10

	// categoryExpertCount — точное число завершённых целей в одной категории.
	categoryExpertCount = 3

	// aheadOfScheduleDays — минимальный запас до дедлайна в днях (строго больше).
	aheadOfScheduleDays = 3

	// consistencyMinEntries — минимум записей для проверки регулярности.
	consistencyMinEntries = 5

	// consistencyMaxStdDev и consistencyMaxMeanGap — пороги регулярности:
	// среднеквадратичное отклонение интервалов ≤ 1 дня, средний интервал ≤ 3 дней.
	consistencyMaxStdDev  = 1.0
	consistencyMaxMeanGap = 3.0

	// streakLength — длина серии ежедневных записей для Progress Streak.
	streakLength = 7
)

// Evaluator чеканит достижения по истории целей и прогресса.
// Работает поверх репозиториев доменного слоя; в составе команды записи
// прогресса получает их привязанными к общей транзакции.
type Evaluator struct {
	goals        goal.Repository
	progress     goal.ProgressRepository
	achievements Repository
	logger       *slog.Logger
}

// NewEvaluator создаёт новый Evaluator.
func NewEvaluator(goals goal.Repository, progress goal.ProgressRepository, achievements Repository, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{
		goals:        goals,
		progress:     progress,
		achievements: achievements,
		logger:       logger,
	}
}

// WithRepositories возвращает копию Evaluator поверх других репозиториев
// (используется для привязки к транзакции).
func (e *Evaluator) WithRepositories(goals goal.Repository, progress goal.ProgressRepository, achievements Repository) *Evaluator {
	return &Evaluator{
		goals:        goals,
		progress:     progress,
		achievements: achievements,
		logger:       e.logger,
	}
}

// OnGoalCompleted выполняет все правила, привязанные к завершению цели,
// и возвращает список отчеканенных достижений.
func (e *Evaluator) OnGoalCompleted(ctx context.Context, g *goal.Goal, now time.Time) ([]*Achievement, error) {
	if g.Status != goal.StatusCompleted {
		return nil, nil
	}

	completed, err := e.goals.ListCompletedByOwner(ctx, g.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("list completed goals: %w", err)
	}

	var minted []*Achievement

	// Правило 1: первая завершённая цель.
	if len(completed) == 1 {
		a, err := e.mint(ctx, g.OwnerID, g.ID, TitleFirstGoal,
			"Completed your first goal. The journey of a thousand miles begins with a single step!",
			"/badges/first_goal.png", now)
		if err != nil {
			return minted, err
		}
		if a != nil {
			minted = append(minted, a)
		}
	}

	// Правило 2: ровно 5 и ровно 10 завершённых целей.
	switch len(completed) {
	case multipleGoalsCount:
		a, err := e.mint(ctx, g.OwnerID, "", TitleMultipleGoals,
			"Completed 5 goals. You're on a roll!",
			"/badges/multiple_goals.png", now)
		if err != nil {
			return minted, err
		}
		if a != nil {
			minted = append(minted, a)
		}
	case goalMasterCount:
		a, err := e.mint(ctx, g.OwnerID, "", TitleGoalMaster,
			"Completed 10 goals. You're a master of achievement!",
			"/badges/goal_master.png", now)
		if err != nil {
			return minted, err
		}
		if a != nil {
			minted = append(minted, a)
		}
	}

	// Правило 3: ровно 3 завершённые цели в одной категории.
	perCategory := make(map[goal.Category]int)
	for _, cg := range completed {
		perCategory[cg.Category]++
	}
	for category, count := range perCategory {
		if count != categoryExpertCount {
			continue
		}
		name := category.DisplayName()
		a, err := e.mint(ctx, g.OwnerID, "", name+" Expert",
			fmt.Sprintf("Completed 3 goals in the %s category. You're becoming an expert!", name),
			fmt.Sprintf("/badges/%s_expert.png", category), now)
		if err != nil {
			return minted, err
		}
		if a != nil {
			minted = append(minted, a)
		}
	}

	// Правило 4: завершение больше чем за 3 дня до дедлайна.
	if g.Deadline != nil && timeutil.DaysUntil(now, *g.Deadline) > aheadOfScheduleDays {
		a, err := e.mint(ctx, g.OwnerID, g.ID, TitleAheadOfTime,
			"Completed a goal well ahead of schedule. Great planning and execution!",
			"/badges/ahead_of_schedule.png", now)
		if err != nil {
			return minted, err
		}
		if a != nil {
			minted = append(minted, a)
		}
	}

	// Правило 5: регулярность обновлений прогресса.
	entries, err := e.progress.ListByGoal(ctx, g.ID)
	if err != nil {
		return minted, fmt.Errorf("list progress entries: %w", err)
	}
	if isConsistent(entries) {
		a, err := e.mint(ctx, g.OwnerID, g.ID, TitleConsistency,
			"Consistently tracked progress toward your goal. Consistency is key to success!",
			"/badges/consistency.png", now)
		if err != nil {
			return minted, err
		}
		if a != nil {
			minted = append(minted, a)
		}
	}

	return minted, nil
}

// OnProgressRecorded выполняет проверку серии ежедневных записей.
// Возвращает отчеканенное достижение или nil.
func (e *Evaluator) OnProgressRecorded(ctx context.Context, g *goal.Goal, now time.Time) (*Achievement, error) {
	entries, err := e.progress.ListByGoal(ctx, g.ID)
	if err != nil {
		return nil, fmt.Errorf("list progress entries: %w", err)
	}
	if len(entries) < streakLength {
		return nil, nil
	}
	if longestDailyRun(entries) < streakLength {
		return nil, nil
	}

	held, err := e.achievements.Exists(ctx, g.OwnerID, TitleStreak)
	if err != nil {
		return nil, fmt.Errorf("check existing achievement: %w", err)
	}
	if held {
		return nil, nil
	}

	return e.mint(ctx, g.OwnerID, g.ID, TitleStreak,
		"Recorded progress for 7 consecutive days. What fantastic dedication!",
		"/badges/progress_streak.png", now)
}

// mint чеканит достижение. Коллизия по (владелец, название) — не ошибка:
// возвращается nil без побочных эффектов.
func (e *Evaluator) mint(ctx context.Context, ownerID, goalID, title, description, badgeID string, now time.Time) (*Achievement, error) {
	a, err := New(ownerID, goalID, title, description, badgeID, true, now)
	if err != nil {
		return nil, err
	}

	outcome, err := e.achievements.Mint(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("mint %q: %w", title, err)
	}
	if outcome == OutcomeAlreadyHeld {
		e.logger.Debug("achievement already held", "owner_id", ownerID, "title", title)
		return nil, nil
	}

	e.logger.Info("achievement minted", "owner_id", ownerID, "title", title, "goal_id", goalID)
	return a, nil
}

// isConsistent проверяет регулярность записей: при ≥5 записях интервалы между
// соседними (по дате) записями имеют среднеквадратичное отклонение ≤ 1 дня
// и среднее ≤ 3 дней.
func isConsistent(entries []*goal.Entry) bool {
	if len(entries) < consistencyMinEntries {
		return false
	}

	sorted := make([]*goal.Entry, len(entries))
	copy(sorted, entries)
	goal.SortEntriesByDate(sorted)

	gaps := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gaps = append(gaps, float64(timeutil.DaysUntil(sorted[i-1].Date, sorted[i].Date)))
	}

	var sum float64
	for _, gap := range gaps {
		sum += gap
	}
	mean := sum / float64(len(gaps))

	var variance float64
	for _, gap := range gaps {
		variance += (gap - mean) * (gap - mean)
	}
	stdDev := math.Sqrt(variance / float64(len(gaps)))

	return stdDev <= consistencyMaxStdDev && mean <= consistencyMaxMeanGap
}

// longestDailyRun возвращает длину самой длинной серии записей, сделанных
// в строго последовательные календарные дни.
func longestDailyRun(entries []*goal.Entry) int {
	if len(entries) == 0 {
		return 0
	}

	sorted := make([]*goal.Entry, len(entries))
	copy(sorted, entries)
	goal.SortEntriesByDate(sorted)

	current, best := 1, 1
	for i := 1; i < len(sorted); i++ {
		if timeutil.CalendarDaysBetween(sorted[i-1].Date, sorted[i].Date) == 1 {
			current++
			if current > best {
				best = current
			}
		} else {
			current = 1
		}
	}
	return best
}
