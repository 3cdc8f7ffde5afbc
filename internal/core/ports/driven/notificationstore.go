package driven

import (
	"context"

	"github.com/custodia-labs/fleetwatch/internal/core/domain"
)

// NotificationUpdateFunc receives the stored set, newest CreatedAt first,
// and returns the set to store. write=false leaves the store untouched.
type NotificationUpdateFunc func(current []domain.NotificationRecord) (next []domain.NotificationRecord, write bool, err error)

// NotificationStore persists the notification set.
type NotificationStore interface {
	// List returns every stored record, newest CreatedAt first.
	List(ctx context.Context) ([]domain.NotificationRecord, error)

	// ReplaceAll swaps the stored set for records, keeping their order.
	ReplaceAll(ctx context.Context, records []domain.NotificationRecord) error

	// Update runs fn against the current set and stores its result as one
	// atomic step. No other Update, ReplaceAll or MarkRead, in this
	// process or another one sharing the storage, can land between the
	// read and the write. An error from fn aborts without writing.
	Update(ctx context.Context, fn NotificationUpdateFunc) error

	// MarkRead acknowledges a record.
	// Returns domain.ErrNotFound if the id does not exist.
	MarkRead(ctx context.Context, id string) error
}
