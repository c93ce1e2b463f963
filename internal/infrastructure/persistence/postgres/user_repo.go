package postgres

import (
	"context"
	"fmt"

	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
	"github.com/fitsphere/fitsphere-api/internal/domain/user"

	"github.com/jackc/pgx/v5"
)

// ══════════════════════════════════════════════════════════════════════════════
// USER REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

const userColumns = `id, email, username, password_hash, role, is_active, created_at, updated_at`

// UserRepository implements user.Repository for PostgreSQL.
type UserRepository struct {
	q Querier
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(q Querier) *UserRepository {
	return &UserRepository{q: q}
}

// Create creates a new user. Unique violations on email or username map to
// ErrUserAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, email, username, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.q.Exec(ctx, query,
		u.ID,
		u.Email.String(),
		u.Username,
		u.PasswordHash,
		string(u.Role),
		u.IsActive,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID returns a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	row := r.q.QueryRow(ctx, query, id)
	return r.scanUser(row)
}

// GetByEmail returns a user by normalized email.
func (r *UserRepository) GetByEmail(ctx context.Context, email user.Email) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	row := r.q.QueryRow(ctx, query, email.String())
	return r.scanUser(row)
}

// GetByUsername returns a user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	row := r.q.QueryRow(ctx, query, username)
	return r.scanUser(row)
}

// Update updates a user.
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET email = $2, username = $3, password_hash = $4, role = $5, is_active = $6, updated_at = $7
		WHERE id = $1
	`

	tag, err := r.q.Exec(ctx, query,
		u.ID,
		u.Email.String(),
		u.Username,
		u.PasswordHash,
		string(u.Role),
		u.IsActive,
		u.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrUserNotFound
	}
	return nil
}

// scanUser scans a single user from a row.
func (r *UserRepository) scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	var email, role string

	err := row.Scan(
		&u.ID,
		&email,
		&u.Username,
		&u.PasswordHash,
		&role,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if IsNoRows(err) {
		return nil, shared.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	u.Email = user.Email(email)
	u.Role = user.Role(role)
	return &u, nil
}
