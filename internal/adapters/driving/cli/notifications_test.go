package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fleetwatch/internal/core/domain"
	"github.com/custodia-labs/fleetwatch/internal/core/ports/driving"
)

func notificationFixture() []domain.NotificationRecord {
	return []domain.NotificationRecord{
		{
			ID:        "n-2",
			StableKey: "stock_reorder:s1:low_stock",
			Message:   "Low stock: FLT-01 Oil filter (3 of minimum 5 pcs)",
			Severity:  domain.SeverityWarning,
			CreatedAt: time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:        "n-1",
			StableKey: "repair_duration:r1:long_running",
			Message:   "Repair r1 on 1กข-1234 in progress for 5 days",
			Severity:  domain.SeverityInfo,
			IsRead:    true,
			CreatedAt: time.Date(2024, 6, 14, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestNotificationsCmd_Alias(t *testing.T) {
	assert.Contains(t, notificationsCmd.Aliases, "notif")
}

func TestNotificationsList_NotConfigured(t *testing.T) {
	setupServices(t, nil)

	_, err := executeCommand(context.Background(), "notifications", "list")

	assert.EqualError(t, err, "notification service not configured")
}

func TestNotificationsList_Table(t *testing.T) {
	svc := &mockNotificationService{records: notificationFixture()}
	setupServices(t, &Services{NotificationService: svc})

	out, err := executeCommand(context.Background(), "notifications", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "ID\tCREATED\tSEVERITY\tREAD\tMESSAGE\n")
	assert.Contains(t, out, "\twarning\tno\tLow stock: FLT-01 Oil filter (3 of minimum 5 pcs)\n")
	assert.Contains(t, out, "\tinfo\tyes\tRepair r1 on 1กข-1234 in progress for 5 days\n")
	assert.Equal(t, driving.NotificationListOptions{}, svc.lastOpts)
}

func TestNotificationsList_PassesFilters(t *testing.T) {
	svc := &mockNotificationService{}
	setupServices(t, &Services{NotificationService: svc})

	out, err := executeCommand(context.Background(), "notifications", "list", "--unread", "--limit", "5")

	require.NoError(t, err)
	assert.Equal(t, driving.NotificationListOptions{UnreadOnly: true, Limit: 5}, svc.lastOpts)
	assert.Contains(t, out, "No notifications.")
}

func TestNotificationsList_JSON(t *testing.T) {
	setupServices(t, &Services{NotificationService: &mockNotificationService{records: notificationFixture()}})

	out, err := executeCommand(context.Background(), "notifications", "list", "--json")
	require.NoError(t, err)

	var decoded []domain.NotificationRecord
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "stock_reorder:s1:low_stock", decoded[0].StableKey)
	assert.True(t, decoded[1].IsRead)
}

func TestNotificationsList_JSONEmpty(t *testing.T) {
	setupServices(t, &Services{NotificationService: &mockNotificationService{}})

	out, err := executeCommand(context.Background(), "notifications", "list", "--json")

	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestNotificationsRead(t *testing.T) {
	svc := &mockNotificationService{}
	setupServices(t, &Services{NotificationService: svc})

	out, err := executeCommand(context.Background(), "notifications", "read", "n-2")

	require.NoError(t, err)
	assert.Equal(t, []string{"n-2"}, svc.marked)
	assert.Contains(t, out, "Notification n-2 marked as read.")
}

func TestNotificationsRead_NotFound(t *testing.T) {
	svc := &mockNotificationService{err: fmt.Errorf("mark read: %w", domain.ErrNotFound)}
	setupServices(t, &Services{NotificationService: svc})

	_, err := executeCommand(context.Background(), "notifications", "read", "missing")

	assert.EqualError(t, err, "notification missing not found")
}

func TestNotificationsRead_RequiresID(t *testing.T) {
	setupServices(t, &Services{NotificationService: &mockNotificationService{}})

	_, err := executeCommand(context.Background(), "notifications", "read")

	assert.Error(t, err)
}
