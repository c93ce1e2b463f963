// Package postgres implements the PostgreSQL persistence layer for FitSphere.
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fitsphere/fitsphere-api/internal/domain/goal"
	"github.com/fitsphere/fitsphere-api/internal/domain/shared"

	"github.com/jackc/pgx/v5"
)

// ══════════════════════════════════════════════════════════════════════════════
// GOAL REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

const goalColumns = `id, user_id, title, description, category, target_value,
	   start_date, deadline, status, is_public, created_at, updated_at`

// GoalRepository implements goal.Repository for PostgreSQL.
type GoalRepository struct {
	q Querier
}

// NewGoalRepository creates a new GoalRepository.
func NewGoalRepository(q Querier) *GoalRepository {
	return &GoalRepository{q: q}
}

// ─────────────────────────────────────────────────────────────────────────────
// CRUD Operations
// ─────────────────────────────────────────────────────────────────────────────

// Create creates a new goal.
func (r *GoalRepository) Create(ctx context.Context, g *goal.Goal) error {
	query := `
		INSERT INTO goals (
			id, user_id, title, description, category, target_value,
			start_date, deadline, status, is_public, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.q.Exec(ctx, query,
		g.ID,
		g.OwnerID,
		g.Title,
		g.Description,
		string(g.Category),
		g.TargetValue,
		g.StartDate,
		g.Deadline,
		string(g.Status),
		g.IsPublic,
		g.CreatedAt,
		g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

// GetByID returns a goal by ID.
func (r *GoalRepository) GetByID(ctx context.Context, id string) (*goal.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1`

	row := r.q.QueryRow(ctx, query, id)
	return r.scanGoal(row)
}

// Update updates all mutable fields of a goal.
func (r *GoalRepository) Update(ctx context.Context, g *goal.Goal) error {
	query := `
		UPDATE goals
		SET title = $2, description = $3, category = $4, target_value = $5,
			deadline = $6, status = $7, is_public = $8, updated_at = $9
		WHERE id = $1
	`

	tag, err := r.q.Exec(ctx, query,
		g.ID,
		g.Title,
		g.Description,
		string(g.Category),
		g.TargetValue,
		g.Deadline,
		string(g.Status),
		g.IsPublic,
		g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrGoalNotFound
	}
	return nil
}

// Delete removes a goal. Progress entries go with it via ON DELETE CASCADE.
func (r *GoalRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrGoalNotFound
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// List Operations
// ─────────────────────────────────────────────────────────────────────────────

// ListByOwner returns the owner's goals with filtering, sorting and pagination.
func (r *GoalRepository) ListByOwner(ctx context.Context, ownerID string, f goal.Filter, s shared.Sort, p shared.Page) ([]*goal.Goal, error) {
	where, args := goalFilterClauses(f, []string{"user_id = $1"}, []interface{}{ownerID})

	query := fmt.Sprintf(
		`SELECT %s FROM goals WHERE %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		goalColumns,
		strings.Join(where, " AND "),
		goalSortColumn(s.Field),
		sortDirection(s.Order),
		len(args)+1,
		len(args)+2,
	)
	args = append(args, p.Limit, p.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	return r.scanGoals(rows)
}

// CountByOwner counts the owner's goals matching the filter.
func (r *GoalRepository) CountByOwner(ctx context.Context, ownerID string, f goal.Filter) (int, error) {
	where, args := goalFilterClauses(f, []string{"user_id = $1"}, []interface{}{ownerID})

	query := fmt.Sprintf(`SELECT COUNT(*) FROM goals WHERE %s`, strings.Join(where, " AND "))

	var count int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count goals: %w", err)
	}
	return count, nil
}

// ListPublic returns public goals with filtering, sorting and pagination.
func (r *GoalRepository) ListPublic(ctx context.Context, f goal.Filter, s shared.Sort, p shared.Page) ([]*goal.Goal, error) {
	where, args := goalFilterClauses(f, []string{"is_public = TRUE"}, nil)

	query := fmt.Sprintf(
		`SELECT %s FROM goals WHERE %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		goalColumns,
		strings.Join(where, " AND "),
		goalSortColumn(s.Field),
		sortDirection(s.Order),
		len(args)+1,
		len(args)+2,
	)
	args = append(args, p.Limit, p.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list public goals: %w", err)
	}
	defer rows.Close()

	return r.scanGoals(rows)
}

// CountPublic counts public goals matching the filter.
func (r *GoalRepository) CountPublic(ctx context.Context, f goal.Filter) (int, error) {
	where, args := goalFilterClauses(f, []string{"is_public = TRUE"}, nil)

	query := fmt.Sprintf(`SELECT COUNT(*) FROM goals WHERE %s`, strings.Join(where, " AND "))

	var count int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count public goals: %w", err)
	}
	return count, nil
}

// ListCompletedByOwner returns all of the owner's completed goals.
func (r *GoalRepository) ListCompletedByOwner(ctx context.Context, ownerID string) ([]*goal.Goal, error) {
	query := `SELECT ` + goalColumns + `
		FROM goals
		WHERE user_id = $1 AND status = $2
		ORDER BY updated_at ASC`

	rows, err := r.q.Query(ctx, query, ownerID, string(goal.StatusCompleted))
	if err != nil {
		return nil, fmt.Errorf("failed to list completed goals: %w", err)
	}
	defer rows.Close()

	return r.scanGoals(rows)
}

// ListWithDeadlineWithin returns in-progress goals whose deadline falls
// between now and now+lead.
func (r *GoalRepository) ListWithDeadlineWithin(ctx context.Context, now time.Time, lead time.Duration) ([]*goal.Goal, error) {
	query := `SELECT ` + goalColumns + `
		FROM goals
		WHERE status = $1 AND deadline IS NOT NULL AND deadline > $2 AND deadline <= $3
		ORDER BY deadline ASC`

	rows, err := r.q.Query(ctx, query, string(goal.StatusInProgress), now, now.Add(lead))
	if err != nil {
		return nil, fmt.Errorf("failed to list goals by deadline: %w", err)
	}
	defer rows.Close()

	return r.scanGoals(rows)
}

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

// goalFilterClauses appends WHERE clauses for the filter to the base
// conditions, numbering placeholders after the existing args.
func goalFilterClauses(f goal.Filter, where []string, args []interface{}) ([]string, []interface{}) {
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, string(f.Category))
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.IsPublic != nil {
		args = append(args, *f.IsPublic)
		where = append(where, fmt.Sprintf("is_public = $%d", len(args)))
	}
	if f.StartDateAfter != nil {
		args = append(args, *f.StartDateAfter)
		where = append(where, fmt.Sprintf("start_date >= $%d", len(args)))
	}
	if f.DeadlineBefore != nil {
		args = append(args, *f.DeadlineBefore)
		where = append(where, fmt.Sprintf("deadline <= $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	return where, args
}

// goalSortColumn whitelists sortable columns; anything else falls back to
// created_at.
func goalSortColumn(field string) string {
	switch field {
	case "deadline", "title", "start_date", "updated_at", "created_at":
		return field
	}
	return "created_at"
}

func sortDirection(o shared.SortOrder) string {
	if o == shared.SortAsc {
		return "ASC"
	}
	return "DESC"
}

// scanGoal scans a single goal from a row.
func (r *GoalRepository) scanGoal(row pgx.Row) (*goal.Goal, error) {
	var g goal.Goal
	var category, status string

	err := row.Scan(
		&g.ID,
		&g.OwnerID,
		&g.Title,
		&g.Description,
		&category,
		&g.TargetValue,
		&g.StartDate,
		&g.Deadline,
		&status,
		&g.IsPublic,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if IsNoRows(err) {
		return nil, shared.ErrGoalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan goal: %w", err)
	}

	g.Category = goal.Category(category)
	g.Status = goal.Status(status)
	return &g, nil
}

// scanGoals scans multiple goals from rows.
func (r *GoalRepository) scanGoals(rows pgx.Rows) ([]*goal.Goal, error) {
	var goals []*goal.Goal

	for rows.Next() {
		var g goal.Goal
		var category, status string

		err := rows.Scan(
			&g.ID,
			&g.OwnerID,
			&g.Title,
			&g.Description,
			&category,
			&g.TargetValue,
			&g.StartDate,
			&g.Deadline,
			&status,
			&g.IsPublic,
			&g.CreatedAt,
			&g.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}

		g.Category = goal.Category(category)
		g.Status = goal.Status(status)
		goals = append(goals, &g)
	}
	return goals, rows.Err()
}
