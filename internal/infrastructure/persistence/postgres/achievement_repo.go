package postgres

import (
	"context"
	"fmt"

	"github.com/fitsphere/fitsphere-api/internal/domain/achievement"
	"github.com/fitsphere/fitsphere-api/internal/domain/shared"

	"github.com/jackc/pgx/v5"
)

// ══════════════════════════════════════════════════════════════════════════════
// ACHIEVEMENT REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

const achievementColumns = `id, user_id, goal_id, title, description, badge_id,
	   is_system, achieved_at, created_at`

// AchievementRepository implements achievement.Repository for PostgreSQL.
type AchievementRepository struct {
	q Querier
}

// NewAchievementRepository creates a new AchievementRepository.
func NewAchievementRepository(q Querier) *AchievementRepository {
	return &AchievementRepository{q: q}
}

// Mint inserts the achievement unless the owner already holds the title.
// ON CONFLICT DO NOTHING rides on the (user_id, title) unique constraint,
// so two concurrent mints of the same title resolve without an error:
// exactly one insert wins, the other reports OutcomeAlreadyHeld.
func (r *AchievementRepository) Mint(ctx context.Context, a *achievement.Achievement) (achievement.MintOutcome, error) {
	query := `
		INSERT INTO achievements (
			id, user_id, goal_id, title, description, badge_id,
			is_system, achieved_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT ON CONSTRAINT uq_achievements_user_title DO NOTHING
	`

	tag, err := r.q.Exec(ctx, query,
		a.ID,
		a.OwnerID,
		nilIfEmpty(a.GoalID),
		a.Title,
		a.Description,
		a.BadgeID,
		a.IsSystem,
		a.AchievedAt,
		a.CreatedAt,
	)
	if err != nil {
		return achievement.OutcomeAlreadyHeld, fmt.Errorf("failed to mint achievement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return achievement.OutcomeAlreadyHeld, nil
	}
	return achievement.OutcomeMinted, nil
}

// GetByID returns an achievement by ID.
func (r *AchievementRepository) GetByID(ctx context.Context, id string) (*achievement.Achievement, error) {
	query := `SELECT ` + achievementColumns + ` FROM achievements WHERE id = $1`

	row := r.q.QueryRow(ctx, query, id)
	return r.scanAchievement(row)
}

// Exists reports whether the owner already holds a given title.
func (r *AchievementRepository) Exists(ctx context.Context, ownerID, title string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM achievements WHERE user_id = $1 AND title = $2)`,
		ownerID, title,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check achievement existence: %w", err)
	}
	return exists, nil
}

// ListByOwner returns the owner's achievements with sorting and pagination.
func (r *AchievementRepository) ListByOwner(ctx context.Context, ownerID string, s shared.Sort, p shared.Page) ([]*achievement.Achievement, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM achievements WHERE user_id = $1 ORDER BY %s %s LIMIT $2 OFFSET $3`,
		achievementColumns,
		achievementSortColumn(s.Field),
		sortDirection(s.Order),
	)

	rows, err := r.q.Query(ctx, query, ownerID, p.Limit, p.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	defer rows.Close()

	return r.scanAchievements(rows)
}

// CountByOwner counts the owner's achievements.
func (r *AchievementRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM achievements WHERE user_id = $1`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count achievements: %w", err)
	}
	return count, nil
}

// ListByGoal returns achievements referencing a specific goal.
func (r *AchievementRepository) ListByGoal(ctx context.Context, goalID string) ([]*achievement.Achievement, error) {
	query := `SELECT ` + achievementColumns + `
		FROM achievements
		WHERE goal_id = $1
		ORDER BY achieved_at DESC`

	rows, err := r.q.Query(ctx, query, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements by goal: %w", err)
	}
	defer rows.Close()

	return r.scanAchievements(rows)
}

// Delete removes an achievement.
func (r *AchievementRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM achievements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete achievement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrAchievementNotFound
	}
	return nil
}

// scanAchievement scans a single achievement from a row.
func (r *AchievementRepository) scanAchievement(row pgx.Row) (*achievement.Achievement, error) {
	var a achievement.Achievement
	var goalID *string

	err := row.Scan(
		&a.ID,
		&a.OwnerID,
		&goalID,
		&a.Title,
		&a.Description,
		&a.BadgeID,
		&a.IsSystem,
		&a.AchievedAt,
		&a.CreatedAt,
	)
	if IsNoRows(err) {
		return nil, shared.ErrAchievementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan achievement: %w", err)
	}

	if goalID != nil {
		a.GoalID = *goalID
	}
	return &a, nil
}

// scanAchievements scans multiple achievements from rows.
func (r *AchievementRepository) scanAchievements(rows pgx.Rows) ([]*achievement.Achievement, error) {
	var achievements []*achievement.Achievement

	for rows.Next() {
		var a achievement.Achievement
		var goalID *string

		err := rows.Scan(
			&a.ID,
			&a.OwnerID,
			&goalID,
			&a.Title,
			&a.Description,
			&a.BadgeID,
			&a.IsSystem,
			&a.AchievedAt,
			&a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}

		if goalID != nil {
			a.GoalID = *goalID
		}
		achievements = append(achievements, &a)
	}
	return achievements, rows.Err()
}

// achievementSortColumn whitelists sortable columns.
func achievementSortColumn(field string) string {
	switch field {
	case "achieved_at", "title", "created_at":
		return field
	}
	return "achieved_at"
}

// nilIfEmpty maps an empty string to SQL NULL for nullable UUID columns.
func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
