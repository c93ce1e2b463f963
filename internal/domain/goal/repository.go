// Package goal содержит доменную модель целей и прогресса.
package goal

import (
	"context"
	"time"

	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
)

// Filter describes optional predicates for goal list queries.
// Zero values mean "no filtering on this field".
type Filter struct {
	Status         Status
	Category       Category
	IsPublic       *bool
	StartDateAfter *time.Time
	DeadlineBefore *time.Time
	// Search matches title or description, case-insensitive substring.
	Search string
}

// Repository defines persistence operations for goals.
// Implementations live in the infrastructure layer.
type Repository interface {
	// Create persists a new goal.
	Create(ctx context.Context, g *Goal) error

	// GetByID returns a goal by ID, or shared.ErrGoalNotFound.
	GetByID(ctx context.Context, id string) (*Goal, error)

	// Update persists all mutable fields of the goal.
	Update(ctx context.Context, g *Goal) error

	// Delete removes a goal. Progress entries are cascade-deleted by storage.
	Delete(ctx context.Context, id string) error

	// ListByOwner returns the owner's goals with filtering, sorting and pagination.
	ListByOwner(ctx context.Context, ownerID string, f Filter, s shared.Sort, p shared.Page) ([]*Goal, error)

	// CountByOwner counts the owner's goals matching the filter.
	CountByOwner(ctx context.Context, ownerID string, f Filter) (int, error)

	// ListPublic returns public goals with filtering, sorting and pagination.
	ListPublic(ctx context.Context, f Filter, s shared.Sort, p shared.Page) ([]*Goal, error)

	// CountPublic counts public goals matching the filter.
	CountPublic(ctx context.Context, f Filter) (int, error)

	// ListCompletedByOwner returns all of the owner's completed goals,
	// unpaginated. Used by the achievement evaluator.
	ListCompletedByOwner(ctx context.Context, ownerID string) ([]*Goal, error)

	// ListWithDeadlineWithin returns in-progress goals whose deadline falls
	// between now and now+lead. Used by the deadline sweep.
	ListWithDeadlineWithin(ctx context.Context, now time.Time, lead time.Duration) ([]*Goal, error)
}

// ProgressRepository defines persistence operations for progress entries.
type ProgressRepository interface {
	// Create persists a new progress entry.
	Create(ctx context.Context, e *Entry) error

	// GetByID returns a progress entry by ID, or shared.ErrProgressNotFound.
	GetByID(ctx context.Context, id string) (*Entry, error)

	// Update persists all mutable fields of the entry.
	Update(ctx context.Context, e *Entry) error

	// Delete removes a progress entry.
	Delete(ctx context.Context, id string) error

	// ListByGoal returns entries for a goal ordered by date ascending.
	ListByGoal(ctx context.Context, goalID string) ([]*Entry, error)

	// ListByGoalPaged returns entries for a goal with sorting and pagination.
	ListByGoalPaged(ctx context.Context, goalID string, s shared.Sort, p shared.Page) ([]*Entry, error)

	// CountByGoal counts entries for a goal.
	CountByGoal(ctx context.Context, goalID string) (int, error)

	// Latest returns the most recent entry by date, or nil when there is none.
	// Single max-by-date query, not a full scan.
	Latest(ctx context.Context, goalID string) (*Entry, error)
}
