// Package application wires commands, queries and event handlers together.
package application

import (
	"context"

	"github.com/fitsphere/fitsphere-api/internal/domain/achievement"
	"github.com/fitsphere/fitsphere-api/internal/domain/goal"
	"github.com/fitsphere/fitsphere-api/internal/domain/notification"
	"github.com/fitsphere/fitsphere-api/internal/domain/user"
)

// Store exposes all repositories backed by a single datastore.
// Repositories obtained from the same Store share a connection pool;
// repositories obtained inside WithinTx share one transaction.
type Store interface {
	Users() user.Repository
	Goals() goal.Repository
	Progress() goal.ProgressRepository
	Achievements() achievement.Repository
	Notifications() notification.Repository

	// WithinTx runs fn with a Store whose repositories are bound to one
	// database transaction. The transaction commits if fn returns nil and
	// rolls back otherwise.
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}
