// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")
	ErrInvalidEntity = errors.New("invalid entity")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidID       = errors.New("invalid ID")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrValueOutOfRange = errors.New("value out of range")
	ErrFutureTimestamp = errors.New("timestamp cannot be in the future")
	ErrInvalidFormat   = errors.New("invalid format")

	// State errors
	ErrInvalidState    = errors.New("invalid state")
	ErrStateTransition = errors.New("invalid state transition")
	ErrExpired         = errors.New("expired")

	// Authorization errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// External service errors
	ErrExternalService    = errors.New("external service error")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrTimeout            = errors.New("operation timeout")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "goal", "progress", "achievement"
	Op      string // Operation that failed, e.g., "Create", "Update"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s.%s: %v", e.Domain, e.Op, e.Err)
	default:
		return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
	}
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain and operation context.
// The wrapped error stays reachable through errors.Is/As.
func WrapError(domain, op string, err error) *DomainError {
	return &DomainError{
		Domain: domain,
		Op:     op,
		Err:    err,
	}
}

// User domain errors
var (
	ErrUserNotFound      = NewDomainError("user", "Find", ErrNotFound, "user not found")
	ErrUserAlreadyExists = NewDomainError("user", "Create", ErrAlreadyExists, "email already registered")
	ErrInvalidEmail      = NewDomainError("user", "Validate", ErrInvalidFormat, "invalid email address")
	ErrWeakPassword      = NewDomainError("user", "Validate", ErrInvalidInput, "password must be at least 8 characters")
	ErrBadCredentials    = NewDomainError("user", "Authenticate", ErrUnauthorized, "invalid email or password")
)

// Goal domain errors
var (
	ErrGoalNotFound         = NewDomainError("goal", "Find", ErrNotFound, "goal not found")
	ErrNotGoalOwner         = NewDomainError("goal", "Authorize", ErrForbidden, "actor is not the goal owner")
	ErrGoalTitleLength      = NewDomainError("goal", "Validate", ErrInvalidInput, "title must be between 3 and 200 characters")
	ErrTargetRequired       = NewDomainError("goal", "Validate", ErrInvalidInput, "target value is required for non-custom goal categories")
	ErrDeadlineBeforeStart  = NewDomainError("goal", "Validate", ErrInvalidInput, "deadline must be after start date")
	ErrDeadlineNotFuture    = NewDomainError("goal", "Validate", ErrInvalidInput, "deadline must be in the future")
	ErrGoalNotInProgress    = NewDomainError("goal", "Update", ErrInvalidState, "goal is not in progress")
	ErrGoalStatusTransition = NewDomainError("goal", "UpdateStatus", ErrStateTransition, "invalid goal status transition")
	ErrInvalidGoalCategory  = NewDomainError("goal", "Validate", ErrInvalidInput, "invalid goal category")
)

// Progress domain errors
var (
	ErrProgressNotFound   = NewDomainError("progress", "Find", ErrNotFound, "progress entry not found")
	ErrProgressDateFuture = NewDomainError("progress", "Validate", ErrFutureTimestamp, "progress date cannot be in the future")
)

// Achievement domain errors
var (
	ErrAchievementNotFound = NewDomainError("achievement", "Find", ErrNotFound, "achievement not found")
	ErrAchievementHeld     = NewDomainError("achievement", "Mint", ErrAlreadyExists, "achievement already held by user")
	ErrEmptyAchievement    = NewDomainError("achievement", "Validate", ErrEmptyValue, "achievement title cannot be empty")
)

// Notification domain errors
var (
	ErrNotificationNotFound = NewDomainError("notification", "Find", ErrNotFound, "notification not found")
	ErrNotRecipient         = NewDomainError("notification", "Authorize", ErrForbidden, "actor is not the notification recipient")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if the error is an "already exists" error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsForbidden checks if the error is an authorization error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsUnauthorized checks if the error is an authentication error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrValueOutOfRange) ||
		errors.Is(err, ErrFutureTimestamp) ||
		errors.Is(err, ErrInvalidFormat)
}

// IsStateConflict checks if the error is a state/transition error.
func IsStateConflict(err error) bool {
	return errors.Is(err, ErrInvalidState) || errors.Is(err, ErrStateTransition)
}
