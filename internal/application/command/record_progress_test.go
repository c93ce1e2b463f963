package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fitsphere/fitsphere-api/internal/domain/achievement"
	"github.com/fitsphere/fitsphere-api/internal/domain/goal"
	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
)

func seedGoal(t *testing.T, store *memStore, target float64) *goal.Goal {
	t.Helper()
	now := time.Now().UTC()
	g, err := goal.NewGoal("owner-1", "Run 100 km", "", goal.CategoryCardio, &target, now.AddDate(0, 0, -10), nil, false, now)
	assert.NoError(t, err)
	assert.NoError(t, store.Goals().Create(context.Background(), g))
	return g
}

func newRecordProgressHandler(store *memStore, publisher *capturePublisher) *RecordProgressHandler {
	evaluator := achievement.NewEvaluator(store.Goals(), store.Progress(), store.Achievements(), testLogger())
	return NewRecordProgressHandler(store, evaluator, publisher, testLogger())
}

func TestRecordProgress_Basic(t *testing.T) {
	store := newMemStore()
	publisher := &capturePublisher{}
	g := seedGoal(t, store, 100)
	h := newRecordProgressHandler(store, publisher)

	result, err := h.Handle(context.Background(), RecordProgressCommand{
		GoalID: g.ID,
		UserID: "owner-1",
		Value:  30,
		Note:   "long run",
	})
	assert.NoError(t, err)
	assert.Equal(t, 30.0, result.CompletionPercent)
	assert.Equal(t, "Run 100 km", result.GoalTitle)
	assert.False(t, result.GoalCompleted)
	assert.Empty(t, result.Minted)

	// Entry persisted.
	entries, err := store.Progress().ListByGoal(context.Background(), g.ID)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "long run", entries[0].Note)

	// The 25% milestone was crossed on the way to 30%.
	assert.Equal(t, []shared.EventType{shared.EventProgressRecorded, shared.EventMilestoneReached}, publisher.types())
}

func TestRecordProgress_CompletesGoalAndMints(t *testing.T) {
	store := newMemStore()
	publisher := &capturePublisher{}
	g := seedGoal(t, store, 100)
	h := newRecordProgressHandler(store, publisher)

	result, err := h.Handle(context.Background(), RecordProgressCommand{
		GoalID: g.ID,
		UserID: "owner-1",
		Value:  100,
	})
	assert.NoError(t, err)
	assert.True(t, result.GoalCompleted)
	assert.Equal(t, 100.0, result.CompletionPercent)

	// First completed goal mints the starter achievement.
	assert.Len(t, result.Minted, 1)
	assert.Equal(t, achievement.TitleFirstGoal, result.Minted[0].Title)

	stored, err := store.Goals().GetByID(context.Background(), g.ID)
	assert.NoError(t, err)
	assert.Equal(t, goal.StatusCompleted, stored.Status)

	types := publisher.types()
	assert.Contains(t, types, shared.EventProgressRecorded)
	assert.Contains(t, types, shared.EventMilestoneReached)
	assert.Contains(t, types, shared.EventGoalCompleted)
	assert.Contains(t, types, shared.EventAchievementUnlocked)
}

func TestRecordProgress_BackdatedEntryKeepsLatestPercent(t *testing.T) {
	store := newMemStore()
	publisher := &capturePublisher{}
	g := seedGoal(t, store, 100)
	h := newRecordProgressHandler(store, publisher)

	now := time.Now().UTC()
	_, err := h.Handle(context.Background(), RecordProgressCommand{
		GoalID: g.ID, UserID: "owner-1", Date: now.AddDate(0, 0, -1), Value: 80,
	})
	assert.NoError(t, err)

	// A backdated entry lands before the latest one: completion stays
	// derived from the latest entry by date.
	result, err := h.Handle(context.Background(), RecordProgressCommand{
		GoalID: g.ID, UserID: "owner-1", Date: now.AddDate(0, 0, -5), Value: 40,
	})
	assert.NoError(t, err)
	assert.Equal(t, 80.0, result.CompletionPercent)
	assert.False(t, result.GoalCompleted)
}

func TestRecordProgress_ValueOvershootCapsAt100(t *testing.T) {
	store := newMemStore()
	publisher := &capturePublisher{}
	g := seedGoal(t, store, 50)
	h := newRecordProgressHandler(store, publisher)

	result, err := h.Handle(context.Background(), RecordProgressCommand{
		GoalID: g.ID, UserID: "owner-1", Value: 120,
	})
	assert.NoError(t, err)
	assert.Equal(t, 100.0, result.CompletionPercent)
	assert.True(t, result.GoalCompleted)
}

func TestRecordProgress_NotOwner(t *testing.T) {
	store := newMemStore()
	g := seedGoal(t, store, 100)
	h := newRecordProgressHandler(store, &capturePublisher{})

	_, err := h.Handle(context.Background(), RecordProgressCommand{
		GoalID: g.ID, UserID: "intruder", Value: 10,
	})
	assert.ErrorIs(t, err, shared.ErrNotGoalOwner)
}

func TestRecordProgress_GoalNotInProgress(t *testing.T) {
	store := newMemStore()
	g := seedGoal(t, store, 100)
	g.Status = goal.StatusCompleted
	h := newRecordProgressHandler(store, &capturePublisher{})

	_, err := h.Handle(context.Background(), RecordProgressCommand{
		GoalID: g.ID, UserID: "owner-1", Value: 10,
	})
	assert.ErrorIs(t, err, shared.ErrGoalNotInProgress)
}

func TestRecordProgress_FutureDateRejected(t *testing.T) {
	store := newMemStore()
	g := seedGoal(t, store, 100)
	publisher := &capturePublisher{}
	h := newRecordProgressHandler(store, publisher)

	_, err := h.Handle(context.Background(), RecordProgressCommand{
		GoalID: g.ID, UserID: "owner-1", Date: time.Now().UTC().Add(time.Hour), Value: 10,
	})
	assert.ErrorIs(t, err, shared.ErrProgressDateFuture)
	assert.Empty(t, publisher.types())
}

func TestRecordProgress_GoalNotFound(t *testing.T) {
	store := newMemStore()
	h := newRecordProgressHandler(store, &capturePublisher{})

	_, err := h.Handle(context.Background(), RecordProgressCommand{
		GoalID: "missing", UserID: "owner-1", Value: 10,
	})
	assert.True(t, shared.IsNotFound(err))
}

func TestRecordProgress_MissingFields(t *testing.T) {
	h := newRecordProgressHandler(newMemStore(), &capturePublisher{})

	_, err := h.Handle(context.Background(), RecordProgressCommand{UserID: "owner-1"})
	assert.True(t, shared.IsValidation(err))

	_, err = h.Handle(context.Background(), RecordProgressCommand{GoalID: "goal-1"})
	assert.True(t, shared.IsValidation(err))
}
