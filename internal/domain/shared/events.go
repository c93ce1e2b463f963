// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages.
package shared

import (
	"context"
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types - these drive the event-driven side effects
// (notifications, cache invalidation) around the goal/progress core.
const (
	// Goal events
	EventGoalCreated   EventType = "goal.created"
	EventGoalUpdated   EventType = "goal.updated"
	EventGoalDeleted   EventType = "goal.deleted"
	EventGoalCompleted EventType = "goal.completed"
	EventGoalMissed    EventType = "goal.missed"

	// Progress events
	EventProgressRecorded EventType = "progress.recorded"
	EventProgressUpdated  EventType = "progress.updated"
	EventProgressDeleted  EventType = "progress.deleted"
	EventMilestoneReached EventType = "progress.milestone_reached"

	// Achievement events
	EventAchievementUnlocked EventType = "achievement.unlocked"

	// Notification events
	EventDeadlineApproaching EventType = "notification.deadline_approaching"

	// User events
	EventUserRegistered EventType = "user.registered"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateId string    `json:"aggregate_id"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now().UTC(),
		AggregateId: aggregateID,
	}
}

// EventHandler processes a single domain event.
type EventHandler interface {
	Handle(ctx context.Context, event Event) error
}

// EventHandlerFunc adapts a function to the EventHandler interface.
type EventHandlerFunc func(ctx context.Context, event Event) error

// Handle implements EventHandler.
func (f EventHandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// EventPublisher publishes domain events to interested subscribers.
type EventPublisher interface {
	Publish(event Event) error
}

// EventBus combines publishing and subscription.
type EventBus interface {
	EventPublisher
	Subscribe(eventType EventType, handler EventHandler) error
	SubscribeAll(handler EventHandler) error
}

// ═══════════════════════════════════════════════════════════════════════════
// Goal Events
// ═══════════════════════════════════════════════════════════════════════════

// GoalCreatedEvent is emitted when a user creates a new goal.
type GoalCreatedEvent struct {
	BaseEvent
	OwnerID   string `json:"owner_id"`
	GoalTitle string `json:"goal_title"`
}

// NewGoalCreatedEvent creates a new GoalCreatedEvent.
func NewGoalCreatedEvent(goalID, ownerID, title string) GoalCreatedEvent {
	return GoalCreatedEvent{
		BaseEvent: NewBaseEvent(EventGoalCreated, goalID),
		OwnerID:   ownerID,
		GoalTitle: title,
	}
}

// GoalCompletedEvent is emitted exactly once when a goal transitions to completed,
// whether automatically (progress reached target) or by an explicit owner update.
type GoalCompletedEvent struct {
	BaseEvent
	OwnerID   string `json:"owner_id"`
	GoalTitle string `json:"goal_title"`
	// Automatic is true when completion was triggered by a progress value
	// reaching the target rather than a manual status update.
	Automatic bool `json:"automatic"`
}

// NewGoalCompletedEvent creates a new GoalCompletedEvent.
func NewGoalCompletedEvent(goalID, ownerID, title string, automatic bool) GoalCompletedEvent {
	return GoalCompletedEvent{
		BaseEvent: NewBaseEvent(EventGoalCompleted, goalID),
		OwnerID:   ownerID,
		GoalTitle: title,
		Automatic: automatic,
	}
}

// GoalUpdatedEvent is emitted when a goal's fields change.
type GoalUpdatedEvent struct {
	BaseEvent
	OwnerID string `json:"owner_id"`
}

// NewGoalUpdatedEvent creates a new GoalUpdatedEvent.
func NewGoalUpdatedEvent(goalID, ownerID string) GoalUpdatedEvent {
	return GoalUpdatedEvent{
		BaseEvent: NewBaseEvent(EventGoalUpdated, goalID),
		OwnerID:   ownerID,
	}
}

// GoalDeletedEvent is emitted when a goal is deleted together with its
// progress entries.
type GoalDeletedEvent struct {
	BaseEvent
	OwnerID string `json:"owner_id"`
}

// NewGoalDeletedEvent creates a new GoalDeletedEvent.
func NewGoalDeletedEvent(goalID, ownerID string) GoalDeletedEvent {
	return GoalDeletedEvent{
		BaseEvent: NewBaseEvent(EventGoalDeleted, goalID),
		OwnerID:   ownerID,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Progress Events
// ═══════════════════════════════════════════════════════════════════════════

// ProgressRecordedEvent is emitted when a progress entry is appended to a goal.
type ProgressRecordedEvent struct {
	BaseEvent
	GoalID  string  `json:"goal_id"`
	OwnerID string  `json:"owner_id"`
	Value   float64 `json:"value"`
	// CompletionPercent is the derived completion after this entry.
	CompletionPercent float64 `json:"completion_percent"`
}

// NewProgressRecordedEvent creates a new ProgressRecordedEvent.
func NewProgressRecordedEvent(entryID, goalID, ownerID string, value, percent float64) ProgressRecordedEvent {
	return ProgressRecordedEvent{
		BaseEvent:         NewBaseEvent(EventProgressRecorded, entryID),
		GoalID:            goalID,
		OwnerID:           ownerID,
		Value:             value,
		CompletionPercent: percent,
	}
}

// ProgressChangedEvent is emitted when an existing progress entry is updated
// or deleted. Carries the goal ID so cache invalidation can find the goal.
type ProgressChangedEvent struct {
	BaseEvent
	GoalID  string `json:"goal_id"`
	OwnerID string `json:"owner_id"`
}

// NewProgressChangedEvent creates a ProgressChangedEvent of the given type
// (EventProgressUpdated or EventProgressDeleted).
func NewProgressChangedEvent(eventType EventType, entryID, goalID, ownerID string) ProgressChangedEvent {
	return ProgressChangedEvent{
		BaseEvent: NewBaseEvent(eventType, entryID),
		GoalID:    goalID,
		OwnerID:   ownerID,
	}
}

// MilestoneReachedEvent is emitted when derived completion crosses a fixed
// milestone threshold (25%, 50%, 75%) for the first time.
type MilestoneReachedEvent struct {
	BaseEvent
	OwnerID   string `json:"owner_id"`
	GoalTitle string `json:"goal_title"`
	Milestone int    `json:"milestone"` // 25, 50 or 75
}

// NewMilestoneReachedEvent creates a new MilestoneReachedEvent.
func NewMilestoneReachedEvent(goalID, ownerID, title string, milestone int) MilestoneReachedEvent {
	return MilestoneReachedEvent{
		BaseEvent: NewBaseEvent(EventMilestoneReached, goalID),
		OwnerID:   ownerID,
		GoalTitle: title,
		Milestone: milestone,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Achievement Events
// ═══════════════════════════════════════════════════════════════════════════

// AchievementUnlockedEvent is emitted after an achievement is minted.
// Consumers of this event (the notification handler) are best-effort:
// their failures never undo the mint.
type AchievementUnlockedEvent struct {
	BaseEvent
	OwnerID string `json:"owner_id"`
	Title   string `json:"title"`
	GoalID  string `json:"goal_id,omitempty"`
}

// NewAchievementUnlockedEvent creates a new AchievementUnlockedEvent.
func NewAchievementUnlockedEvent(achievementID, ownerID, title, goalID string) AchievementUnlockedEvent {
	return AchievementUnlockedEvent{
		BaseEvent: NewBaseEvent(EventAchievementUnlocked, achievementID),
		OwnerID:   ownerID,
		Title:     title,
		GoalID:    goalID,
	}
}
