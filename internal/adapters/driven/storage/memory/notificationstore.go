package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/fleetwatch/internal/core/domain"
	"github.com/custodia-labs/fleetwatch/internal/core/ports/driven"
)

// Ensure NotificationStore implements the interface.
var _ driven.NotificationStore = (*NotificationStore)(nil)

// NotificationStore keeps the notification set in a slice.
type NotificationStore struct {
	mu      sync.RWMutex
	records []domain.NotificationRecord
}

// NewNotificationStore creates a store seeded with records.
func NewNotificationStore(records ...domain.NotificationRecord) *NotificationStore {
	return &NotificationStore{records: slices.Clone(records)}
}

// List returns a copy of the records, newest CreatedAt first.
func (s *NotificationStore) List(_ context.Context) ([]domain.NotificationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sorted(), nil
}

func (s *NotificationStore) sorted() []domain.NotificationRecord {
	out := slices.Clone(s.records)
	slices.SortStableFunc(out, func(a, b domain.NotificationRecord) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

// ReplaceAll swaps the stored set.
func (s *NotificationStore) ReplaceAll(_ context.Context, records []domain.NotificationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = slices.Clone(records)
	return nil
}

// Update applies fn under the write lock.
func (s *NotificationStore) Update(_ context.Context, fn driven.NotificationUpdateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, write, err := fn(s.sorted())
	if err != nil {
		return err
	}
	if write {
		s.records = slices.Clone(next)
	}
	return nil
}

// MarkRead acknowledges a record.
func (s *NotificationStore) MarkRead(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].IsRead = true
			return nil
		}
	}
	return domain.ErrNotFound
}
