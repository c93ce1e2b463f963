package goal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }

func TestCompletionPercent_NoTarget(t *testing.T) {
	entry := &Entry{Value: 50, Date: time.Now()}

	assert.Equal(t, 0.0, CompletionPercent(nil, entry))
	assert.Equal(t, 0.0, CompletionPercent(fptr(0), entry))
}

func TestCompletionPercent_NoEntries(t *testing.T) {
	assert.Equal(t, 0.0, CompletionPercent(fptr(100), nil))
}

func TestCompletionPercent_Basic(t *testing.T) {
	entry := &Entry{Value: 25, Date: time.Now()}

	assert.Equal(t, 25.0, CompletionPercent(fptr(100), entry))
}

func TestCompletionPercent_CappedAt100(t *testing.T) {
	entry := &Entry{Value: 150, Date: time.Now()}

	assert.Equal(t, 100.0, CompletionPercent(fptr(100), entry))
}

func TestCompletionPercent_NegativeNotClamped(t *testing.T) {
	entry := &Entry{Value: -10, Date: time.Now()}

	assert.Equal(t, -10.0, CompletionPercent(fptr(100), entry))
}

func TestCompletionPercentOf(t *testing.T) {
	assert.Equal(t, 50.0, CompletionPercentOf(fptr(200), 100))
	assert.Equal(t, 100.0, CompletionPercentOf(fptr(200), 500))
	assert.Equal(t, 0.0, CompletionPercentOf(nil, 100))
}

func TestCrossedMilestones_SingleCrossing(t *testing.T) {
	assert.Equal(t, []int{25}, CrossedMilestones(20, 30))
	assert.Equal(t, []int{50}, CrossedMilestones(30, 60))
}

func TestCrossedMilestones_MultipleInOneJump(t *testing.T) {
	assert.Equal(t, []int{25, 50, 75}, CrossedMilestones(10, 80))
	assert.Equal(t, []int{25, 50, 75}, CrossedMilestones(0, 100))
}

func TestCrossedMilestones_NoCrossing(t *testing.T) {
	assert.Empty(t, CrossedMilestones(30, 40))
	assert.Empty(t, CrossedMilestones(80, 90))
}

func TestCrossedMilestones_ExactBoundary(t *testing.T) {
	// Landing exactly on a milestone counts as crossing it.
	assert.Equal(t, []int{50}, CrossedMilestones(49, 50))
	// Starting exactly on a milestone does not count it again.
	assert.Empty(t, CrossedMilestones(50, 60))
}

func TestCrossedMilestones_Regression(t *testing.T) {
	assert.Empty(t, CrossedMilestones(60, 40))
}
