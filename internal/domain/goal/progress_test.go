package goal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
)

func TestNewEntry_FutureDateRejected(t *testing.T) {
	future := testNow.Add(time.Hour)
	_, err := NewEntry("goal-1", future, 10, "", testNow)
	assert.ErrorIs(t, err, shared.ErrProgressDateFuture)
}

func TestNewEntry_ZeroDateDefaultsToNow(t *testing.T) {
	e, err := NewEntry("goal-1", time.Time{}, 10, "morning run", testNow)
	assert.NoError(t, err)
	assert.Equal(t, testNow, e.Date)
	assert.Equal(t, "goal-1", e.GoalID)
	assert.Equal(t, "morning run", e.Note)
	assert.NotEmpty(t, e.ID)
}

func TestEntry_Apply(t *testing.T) {
	e, err := NewEntry("goal-1", testNow.AddDate(0, 0, -2), 10, "", testNow)
	assert.NoError(t, err)

	newDate := testNow.AddDate(0, 0, -1)
	newValue := 12.5
	note := "corrected"
	later := testNow.Add(time.Minute)
	err = e.Apply(EntryUpdate{Date: &newDate, Value: &newValue, Note: &note}, later)
	assert.NoError(t, err)
	assert.Equal(t, newDate, e.Date)
	assert.Equal(t, 12.5, e.Value)
	assert.Equal(t, "corrected", e.Note)
	assert.Equal(t, later, e.UpdatedAt)

	future := testNow.Add(time.Hour)
	err = e.Apply(EntryUpdate{Date: &future}, testNow)
	assert.ErrorIs(t, err, shared.ErrProgressDateFuture)
}

func TestSortEntriesByDate(t *testing.T) {
	d1 := testNow.AddDate(0, 0, -3)
	d2 := testNow.AddDate(0, 0, -1)
	entries := []*Entry{
		{ID: "b", Date: d2, CreatedAt: d2},
		{ID: "a", Date: d1},
		{ID: "c", Date: d2, CreatedAt: d2.Add(-time.Hour)},
	}

	SortEntriesByDate(entries)

	assert.Equal(t, "a", entries[0].ID)
	// Same date: creation time breaks the tie.
	assert.Equal(t, "c", entries[1].ID)
	assert.Equal(t, "b", entries[2].ID)
}

func TestLatestEntry(t *testing.T) {
	assert.Nil(t, LatestEntry(nil))

	entries := []*Entry{
		{ID: "a", Date: testNow.AddDate(0, 0, -5)},
		{ID: "c", Date: testNow.AddDate(0, 0, -1)},
		{ID: "b", Date: testNow.AddDate(0, 0, -3)},
	}
	latest := LatestEntry(entries)
	assert.Equal(t, "c", latest.ID)
}

func TestLatestEntry_SameDateLaterCreatedWins(t *testing.T) {
	d := testNow.AddDate(0, 0, -1)
	entries := []*Entry{
		{ID: "older", Date: d, CreatedAt: d},
		{ID: "newer", Date: d, CreatedAt: d.Add(time.Hour)},
	}
	assert.Equal(t, "newer", LatestEntry(entries).ID)
}
