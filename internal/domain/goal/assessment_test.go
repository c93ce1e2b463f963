package goal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// assessmentGoal builds a goal halfway through its window: started 10 days
// ago, deadline 10 days out, so elapsed time is exactly 50%.
func assessmentGoal() *Goal {
	start := testNow.AddDate(0, 0, -10)
	deadline := testNow.AddDate(0, 0, 10)
	return &Goal{
		ID:          "goal-1",
		OwnerID:     "owner-1",
		Title:       "Run 100 km",
		Category:    CategoryCardio,
		TargetValue: fptr(100),
		StartDate:   start,
		Deadline:    &deadline,
		Status:      StatusInProgress,
	}
}

func entryAt(daysAgo int, value float64) *Entry {
	return &Entry{
		ID:    "e",
		Date:  testNow.AddDate(0, 0, -daysAgo),
		Value: value,
	}
}

func TestAssess_NoEntries(t *testing.T) {
	g := assessmentGoal()

	a := Assess(g, nil, testNow)
	assert.Equal(t, 0.0, a.CompletionPercent)
	assert.Equal(t, 0.0, a.CurrentValue)
	assert.Equal(t, 50.0, a.TimeElapsedPercent)
	assert.False(t, a.IsOnTrack)
	assert.Equal(t, StatusLabelBehind, a.StatusMessage)
	assert.Contains(t, a.Feedback, "No progress has been recorded yet")
	assert.Equal(t, []string{"No progress recorded yet"}, a.Alerts)
}

func TestAssess_OnTrack(t *testing.T) {
	g := assessmentGoal()
	entries := []*Entry{entryAt(1, 55)}

	a := Assess(g, entries, testNow)
	assert.Equal(t, 55.0, a.CompletionPercent)
	assert.Equal(t, 55.0, a.CurrentValue)
	assert.True(t, a.IsOnTrack)
	assert.Equal(t, StatusLabelOnTrack, a.StatusMessage)
}

func TestAssess_AheadOfSchedule(t *testing.T) {
	g := assessmentGoal()
	entries := []*Entry{entryAt(1, 80)}

	a := Assess(g, entries, testNow)
	assert.True(t, a.IsOnTrack)
	assert.Equal(t, StatusLabelAhead, a.StatusMessage)
}

func TestAssess_SlightlyBehind(t *testing.T) {
	g := assessmentGoal()
	entries := []*Entry{entryAt(1, 45)}

	a := Assess(g, entries, testNow)
	assert.False(t, a.IsOnTrack)
	assert.Equal(t, StatusLabelSlightly, a.StatusMessage)
}

func TestAssess_SignificantlyBehind(t *testing.T) {
	g := assessmentGoal()
	entries := []*Entry{entryAt(1, 20)}

	a := Assess(g, entries, testNow)
	assert.False(t, a.IsOnTrack)
	assert.Equal(t, StatusLabelBehind, a.StatusMessage)
}

func TestAssess_NoDeadlineElapsedIs100(t *testing.T) {
	g := assessmentGoal()
	g.Deadline = nil
	entries := []*Entry{entryAt(1, 100)}

	a := Assess(g, entries, testNow)
	assert.Equal(t, 100.0, a.TimeElapsedPercent)
	assert.True(t, a.IsOnTrack)
}

func TestAssess_StaleUpdateAlert(t *testing.T) {
	g := assessmentGoal()
	entries := []*Entry{entryAt(9, 55)}

	a := Assess(g, entries, testNow)
	assert.Contains(t, a.Alerts, "No updates in 9 days")
}

func TestAssess_DeadlineAlerts(t *testing.T) {
	g := assessmentGoal()
	soon := testNow.AddDate(0, 0, 2)
	g.Deadline = &soon
	entries := []*Entry{entryAt(1, 90)}

	a := Assess(g, entries, testNow)
	assert.Contains(t, a.Alerts, "Deadline approaching in 2 days")
	assert.Contains(t, a.Alerts, "Almost at goal completion")

	passed := testNow.AddDate(0, 0, -2)
	g.Deadline = &passed
	a = Assess(g, entries, testNow)
	assert.Contains(t, a.Alerts, "Goal deadline has passed")
}

func TestAssess_BehindScheduleAlert(t *testing.T) {
	start := testNow.AddDate(0, 0, -8)
	deadline := testNow.AddDate(0, 0, 2)
	g := assessmentGoal()
	g.StartDate = start
	g.Deadline = &deadline
	// Elapsed is 80%, completion 20% - well under the 0.7 ratio threshold.
	entries := []*Entry{entryAt(1, 20)}

	a := Assess(g, entries, testNow)
	assert.Contains(t, a.Alerts, "Significantly behind schedule")
}

func TestAssess_ImprovingFeedback(t *testing.T) {
	g := assessmentGoal()
	entries := []*Entry{entryAt(3, 30), entryAt(2, 40), entryAt(1, 55)}

	a := Assess(g, entries, testNow)
	assert.True(t, a.IsOnTrack)
	assert.Contains(t, a.Feedback, "improvement")
}
