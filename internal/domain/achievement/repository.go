// Package achievement содержит доменную модель достижений.
package achievement

import (
	"context"

	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
)

// MintOutcome is the typed result of an achievement mint attempt.
// A collision with an existing (owner, title) pair is a defined outcome,
// never an error.
type MintOutcome int

const (
	// OutcomeMinted means a new achievement record was created.
	OutcomeMinted MintOutcome = iota

	// OutcomeAlreadyHeld means the user already holds an achievement with
	// this title; nothing was created.
	OutcomeAlreadyHeld
)

// String returns a human-readable outcome label.
func (o MintOutcome) String() string {
	if o == OutcomeMinted {
		return "minted"
	}
	return "already_held"
}

// Repository defines persistence operations for achievements.
type Repository interface {
	// Mint inserts the achievement unless the owner already holds one with
	// the same title. Uniqueness is enforced by a storage-level composite
	// constraint on (owner, title), so concurrent mint attempts cannot
	// produce duplicates.
	Mint(ctx context.Context, a *Achievement) (MintOutcome, error)

	// GetByID returns an achievement by ID, or shared.ErrAchievementNotFound.
	GetByID(ctx context.Context, id string) (*Achievement, error)

	// Exists reports whether the owner already holds a given title.
	Exists(ctx context.Context, ownerID, title string) (bool, error)

	// ListByOwner returns the owner's achievements with sorting and pagination.
	ListByOwner(ctx context.Context, ownerID string, s shared.Sort, p shared.Page) ([]*Achievement, error)

	// CountByOwner counts the owner's achievements.
	CountByOwner(ctx context.Context, ownerID string) (int, error)

	// ListByGoal returns achievements referencing a specific goal.
	ListByGoal(ctx context.Context, goalID string) ([]*Achievement, error)

	// Delete removes an achievement (administrative action only).
	Delete(ctx context.Context, id string) error
}
