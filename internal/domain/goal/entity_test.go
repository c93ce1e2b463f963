package goal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestGoal(t *testing.T) *Goal {
	t.Helper()
	deadline := testNow.AddDate(0, 2, 0)
	g, err := NewGoal("owner-1", "Lose 5 kg", "spring cut", CategoryWeightLoss, fptr(5), testNow, &deadline, false, testNow)
	assert.NoError(t, err)
	return g
}

func TestNewGoal_Defaults(t *testing.T) {
	g := newTestGoal(t)

	assert.NotEmpty(t, g.ID)
	assert.Equal(t, "owner-1", g.OwnerID)
	assert.Equal(t, StatusInProgress, g.Status)
	assert.Equal(t, testNow, g.StartDate)
	assert.False(t, g.IsPublic)
}

func TestNewGoal_TitleTrimmedAndValidated(t *testing.T) {
	g, err := NewGoal("owner-1", "  Run a marathon  ", "", CategoryCardio, fptr(42), testNow, nil, true, testNow)
	assert.NoError(t, err)
	assert.Equal(t, "Run a marathon", g.Title)

	_, err = NewGoal("owner-1", "ab", "", CategoryCardio, fptr(42), testNow, nil, false, testNow)
	assert.ErrorIs(t, err, shared.ErrGoalTitleLength)

	_, err = NewGoal("owner-1", "   a   ", "", CategoryCardio, fptr(42), testNow, nil, false, testNow)
	assert.ErrorIs(t, err, shared.ErrGoalTitleLength)
}

func TestNewGoal_EmptyCategoryDefaultsToCustom(t *testing.T) {
	g, err := NewGoal("owner-1", "Just move more", "", "", nil, testNow, nil, false, testNow)
	assert.NoError(t, err)
	assert.Equal(t, CategoryCustom, g.Category)
}

func TestNewGoal_InvalidCategory(t *testing.T) {
	_, err := NewGoal("owner-1", "Something", "", Category("yoga"), fptr(1), testNow, nil, false, testNow)
	assert.ErrorIs(t, err, shared.ErrInvalidGoalCategory)
}

func TestNewGoal_TargetRequiredUnlessCustom(t *testing.T) {
	_, err := NewGoal("owner-1", "Bench press", "", CategoryStrength, nil, testNow, nil, false, testNow)
	assert.ErrorIs(t, err, shared.ErrTargetRequired)

	_, err = NewGoal("owner-1", "Feel better", "", CategoryCustom, nil, testNow, nil, false, testNow)
	assert.NoError(t, err)
}

func TestNewGoal_DeadlineValidation(t *testing.T) {
	past := testNow.AddDate(0, 0, -1)
	_, err := NewGoal("owner-1", "Too late", "", CategoryCardio, fptr(10), testNow, &past, false, testNow)
	assert.ErrorIs(t, err, shared.ErrDeadlineBeforeStart)

	start := testNow.AddDate(0, 0, -30)
	beforeNow := testNow.AddDate(0, 0, -5)
	_, err = NewGoal("owner-1", "Already over", "", CategoryCardio, fptr(10), start, &beforeNow, false, testNow)
	assert.ErrorIs(t, err, shared.ErrDeadlineNotFuture)
}

func TestNewGoal_ZeroStartDefaultsToNow(t *testing.T) {
	g, err := NewGoal("owner-1", "Daily stretching", "", CategoryFlexibility, fptr(30), time.Time{}, nil, false, testNow)
	assert.NoError(t, err)
	assert.Equal(t, testNow, g.StartDate)
}

func TestStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, StatusInProgress.CanTransitionTo(StatusCompleted))
	assert.True(t, StatusInProgress.CanTransitionTo(StatusMissed))
	assert.True(t, StatusCompleted.CanTransitionTo(StatusCompleted))
	assert.False(t, StatusCompleted.CanTransitionTo(StatusInProgress))
	assert.False(t, StatusMissed.CanTransitionTo(StatusCompleted))
}

func TestGoal_Apply_PartialUpdate(t *testing.T) {
	g := newTestGoal(t)
	later := testNow.Add(time.Hour)

	title := "Lose 7 kg"
	public := true
	completed, err := g.Apply(Update{Title: &title, IsPublic: &public}, later)
	assert.NoError(t, err)
	assert.False(t, completed)
	assert.Equal(t, "Lose 7 kg", g.Title)
	assert.True(t, g.IsPublic)
	assert.Equal(t, later, g.UpdatedAt)
	// Untouched fields stay as they were.
	assert.Equal(t, CategoryWeightLoss, g.Category)
}

func TestGoal_Apply_StatusTransition(t *testing.T) {
	g := newTestGoal(t)

	completedStatus := StatusCompleted
	completed, err := g.Apply(Update{Status: &completedStatus}, testNow)
	assert.NoError(t, err)
	assert.True(t, completed)
	assert.Equal(t, StatusCompleted, g.Status)

	// Re-applying the same status is allowed but not reported as a flip.
	completed, err = g.Apply(Update{Status: &completedStatus}, testNow)
	assert.NoError(t, err)
	assert.False(t, completed)

	inProgress := StatusInProgress
	_, err = g.Apply(Update{Status: &inProgress}, testNow)
	assert.ErrorIs(t, err, shared.ErrGoalStatusTransition)
}

func TestGoal_Apply_ClearingTargetOnTypedCategoryFails(t *testing.T) {
	g := newTestGoal(t)

	g.TargetValue = nil
	_, err := g.Apply(Update{}, testNow)
	assert.ErrorIs(t, err, shared.ErrTargetRequired)
}

func TestGoal_Apply_DeadlineValidation(t *testing.T) {
	g := newTestGoal(t)

	before := g.StartDate.Add(-time.Hour)
	_, err := g.Apply(Update{Deadline: &before}, testNow)
	assert.ErrorIs(t, err, shared.ErrDeadlineBeforeStart)
}

func TestGoal_MarkCompleted(t *testing.T) {
	g := newTestGoal(t)

	changed, err := g.MarkCompleted(testNow)
	assert.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, StatusCompleted, g.Status)

	changed, err = g.MarkCompleted(testNow)
	assert.NoError(t, err)
	assert.False(t, changed)

	g.Status = StatusMissed
	_, err = g.MarkCompleted(testNow)
	assert.ErrorIs(t, err, shared.ErrGoalStatusTransition)
}

func TestGoal_TargetReachedBy(t *testing.T) {
	g := newTestGoal(t)

	assert.True(t, g.TargetReachedBy(5))
	assert.True(t, g.TargetReachedBy(6))
	assert.False(t, g.TargetReachedBy(4.9))

	g.TargetValue = nil
	assert.False(t, g.TargetReachedBy(1000))
}

func TestGoal_TimeRemainingDays(t *testing.T) {
	g := newTestGoal(t)
	deadline := testNow.AddDate(0, 0, 10)
	g.Deadline = &deadline

	days := g.TimeRemainingDays(testNow)
	assert.NotNil(t, days)
	assert.Equal(t, 10, *days)

	days = g.TimeRemainingDays(deadline.AddDate(0, 0, 5))
	assert.Equal(t, 0, *days)

	g.Deadline = nil
	assert.Nil(t, g.TimeRemainingDays(testNow))
}

func TestCategory_DisplayName(t *testing.T) {
	assert.Equal(t, "Weight Loss", CategoryWeightLoss.DisplayName())
	assert.Equal(t, "Cardio", CategoryCardio.DisplayName())
}
