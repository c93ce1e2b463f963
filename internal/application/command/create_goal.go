// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"log/slog"
	"time"

	"github.com/fitsphere/fitsphere-api/internal/application"
	"github.com/fitsphere/fitsphere-api/internal/domain/goal"
	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE GOAL COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// CreateGoalCommand contains the data to create a goal.
type CreateGoalCommand struct {
	// OwnerID is the internal ID of the owning user.
	OwnerID string

	// Title is the goal title (3-200 characters).
	Title string

	// Description is an optional free-form description.
	Description string

	// Category is one of the supported goal categories.
	Category string

	// TargetValue is the numeric target; required for all categories
	// except "custom".
	TargetValue *float64

	// StartDate is when the goal starts (defaults to now if zero).
	StartDate time.Time

	// Deadline is an optional due date; must be in the future and after
	// the start date.
	Deadline *time.Time

	// IsPublic controls whether the goal appears in public listings.
	IsPublic bool
}

// Validate validates the command.
func (c CreateGoalCommand) Validate() error {
	if c.OwnerID == "" {
		return shared.NewDomainError("goal", "Create", shared.ErrInvalidInput, "owner_id is required")
	}
	if !goal.Category(c.Category).IsValid() {
		return shared.ErrInvalidGoalCategory
	}
	return nil
}

// CreateGoalResult contains the result of creating a goal.
type CreateGoalResult struct {
	Goal *goal.Goal
}

// CreateGoalHandler handles the CreateGoalCommand.
type CreateGoalHandler struct {
	store     application.Store
	publisher shared.EventPublisher
	logger    *slog.Logger
}

// NewCreateGoalHandler creates a new CreateGoalHandler.
func NewCreateGoalHandler(store application.Store, publisher shared.EventPublisher, logger *slog.Logger) *CreateGoalHandler {
	return &CreateGoalHandler{
		store:     store,
		publisher: publisher,
		logger:    logger.With("handler", "create_goal"),
	}
}

// Handle executes the create goal command.
func (h *CreateGoalHandler) Handle(ctx context.Context, cmd CreateGoalCommand) (*CreateGoalResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	start := cmd.StartDate
	if start.IsZero() {
		start = now
	}

	g, err := goal.NewGoal(
		cmd.OwnerID,
		cmd.Title,
		cmd.Description,
		goal.Category(cmd.Category),
		cmd.TargetValue,
		start,
		cmd.Deadline,
		cmd.IsPublic,
		now,
	)
	if err != nil {
		return nil, err
	}

	if err := h.store.Goals().Create(ctx, g); err != nil {
		return nil, shared.WrapError("goal", "Create", err)
	}

	h.logger.InfoContext(ctx, "goal created",
		"goal_id", g.ID,
		"owner_id", g.OwnerID,
		"category", g.Category,
	)

	_ = h.publisher.Publish(shared.NewGoalCreatedEvent(g.ID, g.OwnerID, g.Title))

	return &CreateGoalResult{Goal: g}, nil
}
