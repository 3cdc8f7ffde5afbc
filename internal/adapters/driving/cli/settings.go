package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or initialise settings",
	Long: `Shows the effective settings. Values that differ from the built-in
defaults are marked with *.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective settings to the config file",
	Long: `Writes every setting to the config file, filling unset keys with their
defaults and keeping values that are already configured.`,
	Args: cobra.NoArgs,
	RunE: runSettingsInit,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsInitCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	defaults := settingsService.GetDefaults()

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	e, d := settings.Engine, defaults.Engine

	cmd.Println("[Engine]")
	printSetting(cmd, "Timezone", e.Timezone, d.Timezone)
	printSetting(cmd, "Retention limit", itoa(e.RetentionLimit), itoa(d.RetentionLimit))
	printSetting(cmd, "Day display cap", itoa(e.DayCap), itoa(d.DayCap))
	cmd.Println()

	cmd.Println("[Training]")
	printSetting(cmd, "Onboarding window (days)", itoa(e.Training.OnboardingDays), itoa(d.Training.OnboardingDays))
	printSetting(cmd, "Refresh interval (days)", itoa(e.Training.RefreshDays), itoa(d.Training.RefreshDays))
	printSetting(cmd, "Warning window (days)", itoa(e.Training.NearDays), itoa(d.Training.NearDays))
	printSetting(cmd, "Topic code", e.Training.TopicCode, d.Training.TopicCode)
	printSetting(cmd, "Topic aliases",
		strings.Join(e.Training.TopicAliases, ", "), strings.Join(d.Training.TopicAliases, ", "))
	printSetting(cmd, "Topic label", e.Training.TopicLabel, d.Training.TopicLabel)
	cmd.Println()

	cmd.Println("[Maintenance]")
	printSetting(cmd, "Warning window (days)", itoa(e.Maintenance.WarningDays), itoa(d.Maintenance.WarningDays))
	cmd.Println()

	cmd.Println("[Repair]")
	printSetting(cmd, "Max in progress (days)", itoa(e.Repair.MaxInProgressDays), itoa(d.Repair.MaxInProgressDays))
	cmd.Println()

	cmd.Println("[Scheduler]")
	interval := "disabled"
	if settings.SchedulerInterval > 0 {
		interval = settings.SchedulerInterval.String()
	}
	printSetting(cmd, "Interval", interval, defaults.SchedulerInterval.String())
	cmd.Println()

	cmd.Println("[Paths]")
	printSetting(cmd, "Snapshot", orDefault(settings.Paths.SnapshotPath), orDefault(defaults.Paths.SnapshotPath))
	printSetting(cmd, "Data directory", orDefault(settings.Paths.DataDir), orDefault(defaults.Paths.DataDir))
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsInit(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Settings written.")
	return nil
}

func printSetting(cmd *cobra.Command, name, value, def string) {
	marker := " "
	if value != def {
		marker = "*"
	}
	cmd.Printf(" %s %s: %s\n", marker, name, value)
}

func orDefault(path string) string {
	if path == "" {
		return "(default)"
	}
	return path
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
