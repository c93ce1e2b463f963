package postgres

import (
	"context"

	"github.com/fitsphere/fitsphere-api/internal/application"
	"github.com/fitsphere/fitsphere-api/internal/domain/achievement"
	"github.com/fitsphere/fitsphere-api/internal/domain/goal"
	"github.com/fitsphere/fitsphere-api/internal/domain/notification"
	"github.com/fitsphere/fitsphere-api/internal/domain/user"

	"github.com/jackc/pgx/v5"
)

// ══════════════════════════════════════════════════════════════════════════════
// STORE
// Binds all repositories to one Querier. The top-level Store runs on the
// pool; WithinTx hands the callback a Store whose repositories share a
// single transaction.
// ══════════════════════════════════════════════════════════════════════════════

// Store implements application.Store on PostgreSQL.
type Store struct {
	conn *Connection // nil inside a transaction
	q    Querier
}

// NewStore creates a pool-backed Store.
func NewStore(conn *Connection) *Store {
	return &Store{conn: conn, q: conn}
}

// Users returns the user repository.
func (s *Store) Users() user.Repository { return NewUserRepository(s.q) }

// Goals returns the goal repository.
func (s *Store) Goals() goal.Repository { return NewGoalRepository(s.q) }

// Progress returns the progress repository.
func (s *Store) Progress() goal.ProgressRepository { return NewProgressRepository(s.q) }

// Achievements returns the achievement repository.
func (s *Store) Achievements() achievement.Repository { return NewAchievementRepository(s.q) }

// Notifications returns the notification repository.
func (s *Store) Notifications() notification.Repository { return NewNotificationRepository(s.q) }

// WithinTx runs fn with a transaction-bound Store. Calling WithinTx on a
// Store that is already transactional reuses the open transaction instead
// of nesting.
func (s *Store) WithinTx(ctx context.Context, fn func(tx application.Store) error) error {
	if s.conn == nil {
		return fn(s)
	}
	return s.conn.WithTx(ctx, DefaultTxOptions(), func(tx pgx.Tx) error {
		return fn(&Store{q: tx})
	})
}
