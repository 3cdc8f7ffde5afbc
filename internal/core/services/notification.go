package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/fleetwatch/internal/core/domain"
	"github.com/custodia-labs/fleetwatch/internal/core/ports/driven"
	"github.com/custodia-labs/fleetwatch/internal/core/ports/driving"
)

// Ensure NotificationService implements the interface.
var _ driving.NotificationService = (*NotificationService)(nil)

// NotificationService reads and acknowledges stored notifications.
type NotificationService struct {
	store driven.NotificationStore
}

// NewNotificationService creates a notification service.
func NewNotificationService(store driven.NotificationStore) *NotificationService {
	return &NotificationService{store: store}
}

// List returns stored records, newest first.
func (s *NotificationService) List(
	ctx context.Context,
	opts driving.NotificationListOptions,
) ([]domain.NotificationRecord, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	out := make([]domain.NotificationRecord, 0, len(records))
	for _, rec := range records {
		if opts.UnreadOnly && !rec.IsActive() {
			continue
		}
		out = append(out, rec)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}

// Unread returns active records, newest first.
func (s *NotificationService) Unread(ctx context.Context) ([]domain.NotificationRecord, error) {
	return s.List(ctx, driving.NotificationListOptions{UnreadOnly: true})
}

// MarkRead acknowledges the record with id.
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: notification id is required", domain.ErrInvalidInput)
	}
	return s.store.MarkRead(ctx, id)
}
