package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
)

var testNow = time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

func TestNew_Valid(t *testing.T) {
	n, err := New("owner-1", "Goal Completed!", "Congratulations!", TypeCompleted, "goal-1", "", testNow)
	assert.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, "owner-1", n.OwnerID)
	assert.Equal(t, TypeCompleted, n.Type)
	assert.Equal(t, "goal-1", n.GoalID)
	assert.False(t, n.IsRead)
	assert.Equal(t, testNow, n.CreatedAt)
}

func TestNew_InvalidType(t *testing.T) {
	_, err := New("owner-1", "Title", "Content", Type("broadcast"), "", "", testNow)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestNew_EmptyTitleOrContent(t *testing.T) {
	_, err := New("owner-1", "", "Content", TypeSystem, "", "", testNow)
	assert.ErrorIs(t, err, shared.ErrEmptyValue)

	_, err = New("owner-1", "Title", "", TypeSystem, "", "", testNow)
	assert.ErrorIs(t, err, shared.ErrEmptyValue)
}

func TestMarkRead(t *testing.T) {
	n, err := New("owner-1", "Title", "Content", TypeMilestone, "goal-1", "", testNow)
	assert.NoError(t, err)

	n.MarkRead()
	assert.True(t, n.IsRead)
}

func TestIsOwnedBy(t *testing.T) {
	n, err := New("owner-1", "Title", "Content", TypeReminder, "", "", testNow)
	assert.NoError(t, err)

	assert.True(t, n.IsOwnedBy("owner-1"))
	assert.False(t, n.IsOwnedBy("owner-2"))
}
