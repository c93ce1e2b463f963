package notification

import (
	"context"

	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
)

// Filter narrows notification listings.
type Filter struct {
	Type       Type  // zero value = any
	UnreadOnly bool
}

// Repository defines persistence operations for notifications.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id string) (*Notification, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error

	ListByOwner(ctx context.Context, ownerID string, filter Filter, page shared.Page) ([]*Notification, error)
	CountByOwner(ctx context.Context, ownerID string, filter Filter) (int64, error)
	CountUnread(ctx context.Context, ownerID string) (int64, error)
}

// Emitter delivers a notification to its recipient. Implementations are
// best-effort: a failed delivery is logged, never returned to the caller's
// workflow.
type Emitter interface {
	Emit(ctx context.Context, n *Notification)
}
