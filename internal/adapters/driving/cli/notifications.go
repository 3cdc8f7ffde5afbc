package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fleetwatch/internal/core/domain"
	"github.com/custodia-labs/fleetwatch/internal/core/ports/driving"
)

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notif"},
	Short:   "List and acknowledge notifications",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored notifications, newest first",
	Args:  cobra.NoArgs,
	RunE:  runNotificationsList,
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read [notification-id]",
	Short: "Mark a notification as read",
	Long: `Acknowledges a notification. Once read, the same condition is reported
again by the next evaluation pass if it still holds.`,
	Args: cobra.ExactArgs(1),
	RunE: runNotificationsRead,
}

var (
	listUnreadOnly bool
	listLimit      int
	listJSON       bool
)

func init() {
	notificationsListCmd.Flags().BoolVarP(&listUnreadOnly, "unread", "u", false, "Only unread notifications")
	notificationsListCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "Maximum number to show (0 for all)")
	notificationsListCmd.Flags().BoolVar(&listJSON, "json", false, "Print as JSON")

	notificationsCmd.AddCommand(notificationsListCmd)
	notificationsCmd.AddCommand(notificationsReadCmd)
	rootCmd.AddCommand(notificationsCmd)
}

func runNotificationsList(cmd *cobra.Command, _ []string) error {
	if notificationService == nil {
		return errors.New("notification service not configured")
	}

	records, err := notificationService.List(cmd.Context(), driving.NotificationListOptions{
		UnreadOnly: listUnreadOnly,
		Limit:      listLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to list notifications: %w", err)
	}

	if listJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if records == nil {
			records = []domain.NotificationRecord{}
		}
		return enc.Encode(records)
	}

	if len(records) == 0 {
		cmd.Println("No notifications.")
		return nil
	}

	t := newTableWriter(cmd.OutOrStdout())
	t.Row("ID", "CREATED", "SEVERITY", "READ", "MESSAGE")
	for _, r := range records {
		read := "no"
		if r.IsRead {
			read = "yes"
		}
		t.Row(r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), string(r.Severity), read, r.Message)
	}
	return t.Flush()
}

func runNotificationsRead(cmd *cobra.Command, args []string) error {
	if notificationService == nil {
		return errors.New("notification service not configured")
	}

	id := args[0]
	if err := notificationService.MarkRead(cmd.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("notification %s not found", id)
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	cmd.Printf("Notification %s marked as read.\n", id)
	return nil
}
