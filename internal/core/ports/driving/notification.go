package driving

import (
	"context"

	"github.com/custodia-labs/fleetwatch/internal/core/domain"
)

// NotificationListOptions filters List results.
type NotificationListOptions struct {
	// UnreadOnly drops acknowledged records.
	UnreadOnly bool

	// Limit caps the result; 0 means no cap.
	Limit int
}

// NotificationService exposes the stored notification set.
type NotificationService interface {
	// List returns records, newest first.
	List(ctx context.Context, opts NotificationListOptions) ([]domain.NotificationRecord, error)

	// Unread returns the active (unacknowledged) records, newest first.
	Unread(ctx context.Context) ([]domain.NotificationRecord, error)

	// MarkRead acknowledges a record so the same condition may re-alert.
	MarkRead(ctx context.Context, id string) error
}
