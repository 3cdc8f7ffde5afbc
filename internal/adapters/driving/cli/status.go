package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fleetwatch/internal/core/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the compliance state of every tracked obligation",
	Long: `Classifies driver training and vehicle maintenance obligations in the
current snapshot. Nothing is written; notifications are left untouched.

Days are signed: negative means overdue. Reference dates recorded in the
Buddhist Era are shown converted, with the original year alongside.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

var statusAttentionOnly bool

func init() {
	statusCmd.Flags().BoolVarP(&statusAttentionOnly, "attention", "a", false,
		"Only show obligations that need attention")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if evaluator == nil {
		return errors.New("evaluation service not configured")
	}

	report, err := evaluator.Report(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	dayCap := domain.DefaultDayCap
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil && settings.Engine.DayCap > 0 {
			dayCap = settings.Engine.DayCap
		}
	}

	t := newTableWriter(cmd.OutOrStdout())
	t.Row("TYPE", "ENTITY", "STATE", "DAYS", "DUE", "REFERENCE", "SOURCE")

	shown := 0
	for _, c := range report {
		if statusAttentionOnly && !c.State.NeedsAttention() {
			continue
		}
		t.Row(
			string(c.Obligation.Type),
			c.Obligation.Label,
			c.State.String(),
			formatSignedDays(c, dayCap),
			formatDate(c.DueDate),
			formatReference(c.ReferenceDate),
			sourceLabel(c.Source),
		)
		shown++
	}
	if err := t.Flush(); err != nil {
		return err
	}

	if shown == 0 {
		cmd.Println("No obligations to show.")
	}
	return nil
}

func formatSignedDays(c domain.Classification, dayCap int) string {
	switch {
	case c.State == domain.StateWaived:
		return "-"
	case c.AsOfDays < 0:
		return "-" + c.DisplayDays(dayCap)
	default:
		return c.DisplayDays(dayCap)
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

func formatReference(ref *domain.NormalizedDate) string {
	if ref == nil {
		return "-"
	}
	s := ref.Instant.Format("2006-01-02")
	if ref.BuddhistEra {
		s += " (BE " + ref.SourceYear + ")"
	}
	return s
}

func sourceLabel(tag domain.SourceTag) string {
	if tag == domain.SourceNone {
		return "-"
	}
	return string(tag)
}
