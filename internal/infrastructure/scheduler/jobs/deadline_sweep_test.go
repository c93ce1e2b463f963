package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fitsphere/fitsphere-api/internal/domain/goal"
	"github.com/fitsphere/fitsphere-api/internal/domain/notification"
	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
)

type fakeGoalLister struct {
	goals []*goal.Goal
	err   error
}

func (f *fakeGoalLister) Create(context.Context, *goal.Goal) error { return nil }
func (f *fakeGoalLister) GetByID(context.Context, string) (*goal.Goal, error) {
	return nil, shared.ErrGoalNotFound
}
func (f *fakeGoalLister) Update(context.Context, *goal.Goal) error { return nil }
func (f *fakeGoalLister) Delete(context.Context, string) error { return nil }
func (f *fakeGoalLister) ListByOwner(context.Context, string, goal.Filter, shared.Sort, shared.Page) ([]*goal.Goal, error) {
	return nil, nil
}
func (f *fakeGoalLister) CountByOwner(context.Context, string, goal.Filter) (int, error) {
	return 0, nil
}
func (f *fakeGoalLister) ListPublic(context.Context, goal.Filter, shared.Sort, shared.Page) ([]*goal.Goal, error) {
	return nil, nil
}
func (f *fakeGoalLister) CountPublic(context.Context, goal.Filter) (int, error) { return 0, nil }
func (f *fakeGoalLister) ListCompletedByOwner(context.Context, string) ([]*goal.Goal, error) {
	return nil, nil
}
func (f *fakeGoalLister) ListWithDeadlineWithin(context.Context, time.Time, time.Duration) ([]*goal.Goal, error) {
	return f.goals, f.err
}

type fakeNotificationSink struct {
	created []*notification.Notification
	err     error
}

func (f *fakeNotificationSink) Create(_ context.Context, n *notification.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationSink) GetByID(context.Context, string) (*notification.Notification, error) {
	return nil, shared.ErrNotificationNotFound
}
func (f *fakeNotificationSink) MarkRead(context.Context, string) error { return nil }
func (f *fakeNotificationSink) Delete(context.Context, string) error { return nil }
func (f *fakeNotificationSink) ListByOwner(context.Context, string, notification.Filter, shared.Page) ([]*notification.Notification, error) {
	return nil, nil
}
func (f *fakeNotificationSink) CountByOwner(context.Context, string, notification.Filter) (int64, error) {
	return 0, nil
}
func (f *fakeNotificationSink) CountUnread(context.Context, string) (int64, error) { return 0, nil }

func dueGoal(id string, daysLeft int) *goal.Goal {
	deadline := time.Now().UTC().AddDate(0, 0, daysLeft)
	return &goal.Goal{
		ID:       id,
		OwnerID:  "owner-1",
		Title:    "Run 100 km",
		Status:   goal.StatusInProgress,
		Deadline: &deadline,
	}
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDeadlineSweep_WritesReminders(t *testing.T) {
	goals := &fakeGoalLister{goals: []*goal.Goal{dueGoal("g1", 2), dueGoal("g2", 3)}}
	sink := &fakeNotificationSink{}
	job := NewDeadlineSweepJob(goals, sink, DefaultDeadlineSweepConfig(), discard())

	err := job.Run(context.Background())
	assert.NoError(t, err)
	assert.Len(t, sink.created, 2)

	n := sink.created[0]
	assert.Equal(t, "owner-1", n.OwnerID)
	assert.Equal(t, notification.TypeDeadline, n.Type)
	assert.Equal(t, "Goal Deadline Approaching", n.Title)
	assert.Contains(t, n.Content, "is due in")
	assert.Equal(t, "g1", n.GoalID)
}

func TestDeadlineSweep_NoCandidates(t *testing.T) {
	sink := &fakeNotificationSink{}
	job := NewDeadlineSweepJob(&fakeGoalLister{}, sink, DefaultDeadlineSweepConfig(), discard())

	assert.NoError(t, job.Run(context.Background()))
	assert.Empty(t, sink.created)
}

func TestDeadlineSweep_ListFailureAborts(t *testing.T) {
	goals := &fakeGoalLister{err: errors.New("db down")}
	job := NewDeadlineSweepJob(goals, &fakeNotificationSink{}, DefaultDeadlineSweepConfig(), discard())

	assert.Error(t, job.Run(context.Background()))
}

func TestDeadlineSweep_WriteFailureDoesNotAbort(t *testing.T) {
	goals := &fakeGoalLister{goals: []*goal.Goal{dueGoal("g1", 1)}}
	sink := &fakeNotificationSink{err: errors.New("db down")}
	job := NewDeadlineSweepJob(goals, sink, DefaultDeadlineSweepConfig(), discard())

	// Per-goal write failures are logged, not returned.
	assert.NoError(t, job.Run(context.Background()))
}

func TestDeadlineSweep_Metadata(t *testing.T) {
	job := NewDeadlineSweepJob(&fakeGoalLister{}, &fakeNotificationSink{}, DeadlineSweepConfig{LeadDays: 5}, discard())

	assert.Equal(t, "deadline_sweep", job.Name())
	assert.Contains(t, job.Description(), "5 days")
}
