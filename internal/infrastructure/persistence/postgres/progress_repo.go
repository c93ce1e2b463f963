package postgres

import (
	"context"
	"fmt"

	"github.com/fitsphere/fitsphere-api/internal/domain/goal"
	"github.com/fitsphere/fitsphere-api/internal/domain/shared"

	"github.com/jackc/pgx/v5"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESS REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

const progressColumns = `id, goal_id, date, value, note, created_at, updated_at`

// ProgressRepository implements goal.ProgressRepository for PostgreSQL.
type ProgressRepository struct {
	q Querier
}

// NewProgressRepository creates a new ProgressRepository.
func NewProgressRepository(q Querier) *ProgressRepository {
	return &ProgressRepository{q: q}
}

// Create creates a new progress entry.
func (r *ProgressRepository) Create(ctx context.Context, e *goal.Entry) error {
	query := `
		INSERT INTO progress_entries (id, goal_id, date, value, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.Exec(ctx, query, e.ID, e.GoalID, e.Date, e.Value, e.Note, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create progress entry: %w", err)
	}
	return nil
}

// GetByID returns a progress entry by ID.
func (r *ProgressRepository) GetByID(ctx context.Context, id string) (*goal.Entry, error) {
	query := `SELECT ` + progressColumns + ` FROM progress_entries WHERE id = $1`

	row := r.q.QueryRow(ctx, query, id)
	return r.scanEntry(row)
}

// Update updates a progress entry.
func (r *ProgressRepository) Update(ctx context.Context, e *goal.Entry) error {
	query := `
		UPDATE progress_entries
		SET date = $2, value = $3, note = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := r.q.Exec(ctx, query, e.ID, e.Date, e.Value, e.Note, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update progress entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrProgressNotFound
	}
	return nil
}

// Delete removes a progress entry.
func (r *ProgressRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM progress_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete progress entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrProgressNotFound
	}
	return nil
}

// ListByGoal returns all entries for a goal ordered by date ascending.
// Ties on date break by created_at so the order is deterministic.
func (r *ProgressRepository) ListByGoal(ctx context.Context, goalID string) ([]*goal.Entry, error) {
	query := `SELECT ` + progressColumns + `
		FROM progress_entries
		WHERE goal_id = $1
		ORDER BY date ASC, created_at ASC`

	rows, err := r.q.Query(ctx, query, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress entries: %w", err)
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

// ListByGoalPaged returns entries for a goal with sorting and pagination.
func (r *ProgressRepository) ListByGoalPaged(ctx context.Context, goalID string, s shared.Sort, p shared.Page) ([]*goal.Entry, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM progress_entries WHERE goal_id = $1 ORDER BY %s %s, created_at %s LIMIT $2 OFFSET $3`,
		progressColumns,
		progressSortColumn(s.Field),
		sortDirection(s.Order),
		sortDirection(s.Order),
	)

	rows, err := r.q.Query(ctx, query, goalID, p.Limit, p.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress entries: %w", err)
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

// CountByGoal counts entries for a goal.
func (r *ProgressRepository) CountByGoal(ctx context.Context, goalID string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM progress_entries WHERE goal_id = $1`, goalID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count progress entries: %w", err)
	}
	return count, nil
}

// Latest returns the most recent entry by date, or nil when there is none.
func (r *ProgressRepository) Latest(ctx context.Context, goalID string) (*goal.Entry, error) {
	query := `SELECT ` + progressColumns + `
		FROM progress_entries
		WHERE goal_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT 1`

	row := r.q.QueryRow(ctx, query, goalID)
	e, err := r.scanEntry(row)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

// scanEntry scans a single entry from a row.
func (r *ProgressRepository) scanEntry(row pgx.Row) (*goal.Entry, error) {
	var e goal.Entry

	err := row.Scan(&e.ID, &e.GoalID, &e.Date, &e.Value, &e.Note, &e.CreatedAt, &e.UpdatedAt)
	if IsNoRows(err) {
		return nil, shared.ErrProgressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan progress entry: %w", err)
	}
	return &e, nil
}

// scanEntries scans multiple entries from rows.
func (r *ProgressRepository) scanEntries(rows pgx.Rows) ([]*goal.Entry, error) {
	var entries []*goal.Entry

	for rows.Next() {
		var e goal.Entry
		if err := rows.Scan(&e.ID, &e.GoalID, &e.Date, &e.Value, &e.Note, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan progress entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// progressSortColumn whitelists sortable columns.
func progressSortColumn(field string) string {
	switch field {
	case "date", "value", "created_at":
		return field
	}
	return "date"
}
