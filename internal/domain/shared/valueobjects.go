// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages.
package shared

import (
	"regexp"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// ID Value Objects
// ═══════════════════════════════════════════════════════════════════════════

// UUID validation regex (simple version).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// UserID represents a unique user identifier (UUID format).
type UserID string

// IsValid checks if the user ID is a valid UUID.
func (id UserID) IsValid() bool {
	return uuidRegex.MatchString(string(id))
}

// String returns the string representation.
func (id UserID) String() string {
	return string(id)
}

// IsEmpty checks if the user ID is empty.
func (id UserID) IsEmpty() bool {
	return len(id) == 0
}

// NewUserID creates a new UserID with validation.
func NewUserID(id string) (UserID, error) {
	uid := UserID(strings.TrimSpace(id))
	if !uid.IsValid() {
		return "", NewDomainError("user", "Validate", ErrInvalidID, "user ID must be a UUID")
	}
	return uid, nil
}

// GoalID represents a unique goal identifier (UUID format).
type GoalID string

// IsValid checks if the goal ID is a valid UUID.
func (id GoalID) IsValid() bool {
	return uuidRegex.MatchString(string(id))
}

// String returns the string representation.
func (id GoalID) String() string {
	return string(id)
}

// IsEmpty checks if the goal ID is empty.
func (id GoalID) IsEmpty() bool {
	return len(id) == 0
}

// NewGoalID creates a new GoalID with validation.
func NewGoalID(id string) (GoalID, error) {
	gid := GoalID(strings.TrimSpace(id))
	if !gid.IsValid() {
		return "", NewDomainError("goal", "Validate", ErrInvalidID, "goal ID must be a UUID")
	}
	return gid, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Pagination & Sorting
// ═══════════════════════════════════════════════════════════════════════════

// Page describes offset-based pagination for list queries.
type Page struct {
	Offset int
	Limit  int
}

// DefaultPage returns the default page (first 10 items).
func DefaultPage() Page {
	return Page{Offset: 0, Limit: 10}
}

// Normalize clamps the page to sane bounds.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Number returns the 1-based page number.
func (p Page) Number() int {
	if p.Limit <= 0 {
		return 1
	}
	return p.Offset/p.Limit + 1
}

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// IsValid checks the sort order value.
func (s SortOrder) IsValid() bool {
	return s == SortAsc || s == SortDesc
}

// Sort describes the sort key and direction for list queries.
// The Field must come from a repository-side whitelist; it is never
// interpolated into SQL directly.
type Sort struct {
	Field string
	Order SortOrder
}

// PagedResult is the generic envelope for paginated list responses.
type PagedResult[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Pages int `json:"pages"`
}

// NewPagedResult builds a PagedResult from items, total count and page.
func NewPagedResult[T any](items []T, total int, p Page) PagedResult[T] {
	p = p.Normalize()
	pages := 1
	if p.Limit > 0 {
		pages = (total + p.Limit - 1) / p.Limit
		if pages < 1 {
			pages = 1
		}
	}
	return PagedResult[T]{
		Items: items,
		Total: total,
		Page:  p.Number(),
		Size:  p.Limit,
		Pages: pages,
	}
}
