package achievement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fitsphere/fitsphere-api/internal/domain/goal"
	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
)

var evalNow = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

// ─────────────────────────────────────────────────────────────────────────────
// In-memory fakes
// ─────────────────────────────────────────────────────────────────────────────

type fakeGoalRepo struct {
	completed []*goal.Goal
}

func (f *fakeGoalRepo) Create(context.Context, *goal.Goal) error { return nil }
func (f *fakeGoalRepo) GetByID(context.Context, string) (*goal.Goal, error) {
	return nil, shared.ErrGoalNotFound
}
func (f *fakeGoalRepo) Update(context.Context, *goal.Goal) error { return nil }
func (f *fakeGoalRepo) Delete(context.Context, string) error { return nil }
func (f *fakeGoalRepo) ListByOwner(context.Context, string, goal.Filter, shared.Sort, shared.Page) ([]*goal.Goal, error) {
	return nil, nil
}
func (f *fakeGoalRepo) CountByOwner(context.Context, string, goal.Filter) (int, error) {
	return 0, nil
}
func (f *fakeGoalRepo) ListPublic(context.Context, goal.Filter, shared.Sort, shared.Page) ([]*goal.Goal, error) {
	return nil, nil
}
func (f *fakeGoalRepo) CountPublic(context.Context, goal.Filter) (int, error) { return 0, nil }
func (f *fakeGoalRepo) ListCompletedByOwner(context.Context, string) ([]*goal.Goal, error) {
	return f.completed, nil
}
func (f *fakeGoalRepo) ListWithDeadlineWithin(context.Context, time.Time, time.Duration) ([]*goal.Goal, error) {
	return nil, nil
}

type fakeProgressRepo struct {
	entries []*goal.Entry
}

func (f *fakeProgressRepo) Create(context.Context, *goal.Entry) error { return nil }
func (f *fakeProgressRepo) GetByID(context.Context, string) (*goal.Entry, error) {
	return nil, shared.ErrProgressNotFound
}
func (f *fakeProgressRepo) Update(context.Context, *goal.Entry) error { return nil }
func (f *fakeProgressRepo) Delete(context.Context, string) error { return nil }
func (f *fakeProgressRepo) ListByGoal(context.Context, string) ([]*goal.Entry, error) {
	return f.entries, nil
}
func (f *fakeProgressRepo) ListByGoalPaged(context.Context, string, shared.Sort, shared.Page) ([]*goal.Entry, error) {
	return f.entries, nil
}
func (f *fakeProgressRepo) CountByGoal(context.Context, string) (int, error) {
	return len(f.entries), nil
}
func (f *fakeProgressRepo) Latest(context.Context, string) (*goal.Entry, error) {
	return goal.LatestEntry(f.entries), nil
}

// fakeAchievementRepo enforces the (owner, title) uniqueness in memory,
// mirroring the storage constraint.
type fakeAchievementRepo struct {
	held map[string]bool // key: ownerID + "\x00" + title
}

func newFakeAchievementRepo() *fakeAchievementRepo {
	return &fakeAchievementRepo{held: make(map[string]bool)}
}

func (f *fakeAchievementRepo) key(ownerID, title string) string { return ownerID + "\x00" + title }

func (f *fakeAchievementRepo) Mint(_ context.Context, a *Achievement) (MintOutcome, error) {
	k := f.key(a.OwnerID, a.Title)
	if f.held[k] {
		return OutcomeAlreadyHeld, nil
	}
	f.held[k] = true
	return OutcomeMinted, nil
}

func (f *fakeAchievementRepo) GetByID(context.Context, string) (*Achievement, error) {
	return nil, shared.ErrAchievementNotFound
}

func (f *fakeAchievementRepo) Exists(_ context.Context, ownerID, title string) (bool, error) {
	return f.held[f.key(ownerID, title)], nil
}

func (f *fakeAchievementRepo) ListByOwner(context.Context, string, shared.Sort, shared.Page) ([]*Achievement, error) {
	return nil, nil
}
func (f *fakeAchievementRepo) CountByOwner(context.Context, string) (int, error) { return 0, nil }
func (f *fakeAchievementRepo) ListByGoal(context.Context, string) ([]*Achievement, error) {
	return nil, nil
}
func (f *fakeAchievementRepo) Delete(context.Context, string) error { return nil }

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func completedGoal(id string, category goal.Category, deadline *time.Time) *goal.Goal {
	target := 100.0
	return &goal.Goal{
		ID:          id,
		OwnerID:     "owner-1",
		Title:       "Goal " + id,
		Category:    category,
		TargetValue: &target,
		StartDate:   evalNow.AddDate(0, -1, 0),
		Deadline:    deadline,
		Status:      goal.StatusCompleted,
	}
}

func dailyEntries(goalID string, days int) []*goal.Entry {
	entries := make([]*goal.Entry, days)
	for i := 0; i < days; i++ {
		entries[i] = &goal.Entry{
			ID:     goalID + "-e",
			GoalID: goalID,
			Date:   evalNow.AddDate(0, 0, -days+i+1),
			Value:  float64(i + 1),
		}
	}
	return entries
}

func newEvaluatorWith(goals *fakeGoalRepo, progress *fakeProgressRepo, achievements *fakeAchievementRepo) *Evaluator {
	return NewEvaluator(goals, progress, achievements, nil)
}

func mintedTitles(minted []*Achievement) []string {
	titles := make([]string, 0, len(minted))
	for _, a := range minted {
		titles = append(titles, a.Title)
	}
	return titles
}

// ─────────────────────────────────────────────────────────────────────────────
// OnGoalCompleted
// ─────────────────────────────────────────────────────────────────────────────

func TestOnGoalCompleted_IgnoresNonCompletedGoal(t *testing.T) {
	e := newEvaluatorWith(&fakeGoalRepo{}, &fakeProgressRepo{}, newFakeAchievementRepo())
	g := completedGoal("g1", goal.CategoryCardio, nil)
	g.Status = goal.StatusInProgress

	minted, err := e.OnGoalCompleted(context.Background(), g, evalNow)
	assert.NoError(t, err)
	assert.Nil(t, minted)
}

func TestOnGoalCompleted_FirstGoal(t *testing.T) {
	g := completedGoal("g1", goal.CategoryCardio, nil)
	goals := &fakeGoalRepo{completed: []*goal.Goal{g}}
	e := newEvaluatorWith(goals, &fakeProgressRepo{}, newFakeAchievementRepo())

	minted, err := e.OnGoalCompleted(context.Background(), g, evalNow)
	assert.NoError(t, err)
	assert.Equal(t, []string{TitleFirstGoal}, mintedTitles(minted))
	assert.Equal(t, "g1", minted[0].GoalID)
	assert.True(t, minted[0].IsSystem)
}

func TestOnGoalCompleted_FifthGoal(t *testing.T) {
	var completed []*goal.Goal
	categories := []goal.Category{
		goal.CategoryCardio, goal.CategoryStrength, goal.CategoryEndurance,
		goal.CategoryCustom, goal.CategoryFlexibility,
	}
	for i, c := range categories {
		completed = append(completed, completedGoal(string(rune('a'+i)), c, nil))
	}
	goals := &fakeGoalRepo{completed: completed}
	e := newEvaluatorWith(goals, &fakeProgressRepo{}, newFakeAchievementRepo())

	minted, err := e.OnGoalCompleted(context.Background(), completed[4], evalNow)
	assert.NoError(t, err)
	assert.Equal(t, []string{TitleMultipleGoals}, mintedTitles(minted))
}

func TestOnGoalCompleted_SixthGoalMintsNothing(t *testing.T) {
	// Six distinct categories, so no category reaches exactly three.
	categories := []goal.Category{
		goal.CategoryCardio, goal.CategoryStrength, goal.CategoryEndurance,
		goal.CategoryCustom, goal.CategoryFlexibility, goal.CategoryMuscleGain,
	}
	var completed []*goal.Goal
	for i, c := range categories {
		completed = append(completed, completedGoal(string(rune('a'+i)), c, nil))
	}
	goals := &fakeGoalRepo{completed: completed}
	e := newEvaluatorWith(goals, &fakeProgressRepo{}, newFakeAchievementRepo())

	minted, err := e.OnGoalCompleted(context.Background(), completed[5], evalNow)
	assert.NoError(t, err)
	assert.Empty(t, minted)
}

func TestOnGoalCompleted_CategoryExpert(t *testing.T) {
	completed := []*goal.Goal{
		completedGoal("a", goal.CategoryCardio, nil),
		completedGoal("b", goal.CategoryCardio, nil),
		completedGoal("c", goal.CategoryCardio, nil),
	}
	goals := &fakeGoalRepo{completed: completed}
	e := newEvaluatorWith(goals, &fakeProgressRepo{}, newFakeAchievementRepo())

	minted, err := e.OnGoalCompleted(context.Background(), completed[2], evalNow)
	assert.NoError(t, err)
	assert.Contains(t, mintedTitles(minted), "Cardio Expert")
}

func TestOnGoalCompleted_AheadOfSchedule(t *testing.T) {
	deadline := evalNow.AddDate(0, 0, 10)
	g := completedGoal("g1", goal.CategoryCardio, &deadline)
	goals := &fakeGoalRepo{completed: []*goal.Goal{g}}
	e := newEvaluatorWith(goals, &fakeProgressRepo{}, newFakeAchievementRepo())

	minted, err := e.OnGoalCompleted(context.Background(), g, evalNow)
	assert.NoError(t, err)
	assert.Contains(t, mintedTitles(minted), TitleAheadOfTime)
}

func TestOnGoalCompleted_BarelyBeforeDeadlineNoBonus(t *testing.T) {
	deadline := evalNow.AddDate(0, 0, 2)
	g := completedGoal("g1", goal.CategoryCardio, &deadline)
	goals := &fakeGoalRepo{completed: []*goal.Goal{g}}
	e := newEvaluatorWith(goals, &fakeProgressRepo{}, newFakeAchievementRepo())

	minted, err := e.OnGoalCompleted(context.Background(), g, evalNow)
	assert.NoError(t, err)
	assert.NotContains(t, mintedTitles(minted), TitleAheadOfTime)
}

func TestOnGoalCompleted_ConsistencyChampion(t *testing.T) {
	g := completedGoal("g1", goal.CategoryCardio, nil)
	goals := &fakeGoalRepo{completed: []*goal.Goal{g}}
	progress := &fakeProgressRepo{entries: dailyEntries("g1", 6)}
	e := newEvaluatorWith(goals, progress, newFakeAchievementRepo())

	minted, err := e.OnGoalCompleted(context.Background(), g, evalNow)
	assert.NoError(t, err)
	assert.Contains(t, mintedTitles(minted), TitleConsistency)
}

func TestOnGoalCompleted_IrregularEntriesNoConsistency(t *testing.T) {
	g := completedGoal("g1", goal.CategoryCardio, nil)
	goals := &fakeGoalRepo{completed: []*goal.Goal{g}}
	// Wildly uneven gaps: 1, 14, 1, 20 days.
	entries := []*goal.Entry{
		{GoalID: "g1", Date: evalNow.AddDate(0, 0, -36)},
		{GoalID: "g1", Date: evalNow.AddDate(0, 0, -35)},
		{GoalID: "g1", Date: evalNow.AddDate(0, 0, -21)},
		{GoalID: "g1", Date: evalNow.AddDate(0, 0, -20)},
		{GoalID: "g1", Date: evalNow},
	}
	progress := &fakeProgressRepo{entries: entries}
	e := newEvaluatorWith(goals, progress, newFakeAchievementRepo())

	minted, err := e.OnGoalCompleted(context.Background(), g, evalNow)
	assert.NoError(t, err)
	assert.NotContains(t, mintedTitles(minted), TitleConsistency)
}

func TestOnGoalCompleted_ReEvaluationDoesNotDuplicate(t *testing.T) {
	g := completedGoal("g1", goal.CategoryCardio, nil)
	goals := &fakeGoalRepo{completed: []*goal.Goal{g}}
	repo := newFakeAchievementRepo()
	e := newEvaluatorWith(goals, &fakeProgressRepo{}, repo)

	minted, err := e.OnGoalCompleted(context.Background(), g, evalNow)
	assert.NoError(t, err)
	assert.Len(t, minted, 1)

	minted, err = e.OnGoalCompleted(context.Background(), g, evalNow)
	assert.NoError(t, err)
	assert.Empty(t, minted)
}

// ─────────────────────────────────────────────────────────────────────────────
// OnProgressRecorded
// ─────────────────────────────────────────────────────────────────────────────

func TestOnProgressRecorded_SevenDayStreak(t *testing.T) {
	g := completedGoal("g1", goal.CategoryCardio, nil)
	g.Status = goal.StatusInProgress
	progress := &fakeProgressRepo{entries: dailyEntries("g1", 7)}
	e := newEvaluatorWith(&fakeGoalRepo{}, progress, newFakeAchievementRepo())

	a, err := e.OnProgressRecorded(context.Background(), g, evalNow)
	assert.NoError(t, err)
	assert.NotNil(t, a)
	assert.Equal(t, TitleStreak, a.Title)
}

func TestOnProgressRecorded_ShortStreak(t *testing.T) {
	g := completedGoal("g1", goal.CategoryCardio, nil)
	progress := &fakeProgressRepo{entries: dailyEntries("g1", 6)}
	e := newEvaluatorWith(&fakeGoalRepo{}, progress, newFakeAchievementRepo())

	a, err := e.OnProgressRecorded(context.Background(), g, evalNow)
	assert.NoError(t, err)
	assert.Nil(t, a)
}

func TestOnProgressRecorded_BrokenStreak(t *testing.T) {
	g := completedGoal("g1", goal.CategoryCardio, nil)
	entries := dailyEntries("g1", 8)
	// Remove one day from the middle so no run reaches seven.
	entries = append(entries[:4], entries[5:]...)
	progress := &fakeProgressRepo{entries: entries}
	e := newEvaluatorWith(&fakeGoalRepo{}, progress, newFakeAchievementRepo())

	a, err := e.OnProgressRecorded(context.Background(), g, evalNow)
	assert.NoError(t, err)
	assert.Nil(t, a)
}

func TestOnProgressRecorded_AlreadyHeld(t *testing.T) {
	g := completedGoal("g1", goal.CategoryCardio, nil)
	repo := newFakeAchievementRepo()
	repo.held[repo.key("owner-1", TitleStreak)] = true
	progress := &fakeProgressRepo{entries: dailyEntries("g1", 7)}
	e := newEvaluatorWith(&fakeGoalRepo{}, progress, repo)

	a, err := e.OnProgressRecorded(context.Background(), g, evalNow)
	assert.NoError(t, err)
	assert.Nil(t, a)
}
