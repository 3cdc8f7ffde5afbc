// Package cli implements the fleetwatch command line.
package cli

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fleetwatch/internal/core/domain"
	"github.com/custodia-labs/fleetwatch/internal/core/ports/driving"
	"github.com/custodia-labs/fleetwatch/internal/logger"
)

// version is set at build time via ldflags or SetVersion.
var version = "dev"

// Global flags.
var (
	verbose      bool
	configPath   string
	snapshotFlag string
	ephemeral    bool
)

// Services wired by SetServices.
var (
	evaluator           driving.Evaluator
	notificationService driving.NotificationService
	settingsService     driving.SettingsService
	scheduler           driving.Scheduler
	schedulerConfig     domain.SchedulerConfig
	snapshotPath        string
	metricsHandler      http.Handler
)

// Services bundles the dependencies the commands call.
type Services struct {
	Evaluator           driving.Evaluator
	NotificationService driving.NotificationService
	SettingsService     driving.SettingsService
	Scheduler           driving.Scheduler
	SchedulerConfig     domain.SchedulerConfig

	// SnapshotPath is the file the watch command observes.
	SnapshotPath string

	// MetricsHandler serves /metrics for the schedule command; may be nil.
	MetricsHandler http.Handler
}

// Options carries the global flags to a Bootstrap function.
type Options struct {
	ConfigPath   string
	SnapshotPath string
	Ephemeral    bool
}

// Bootstrap builds the services once flags are parsed. The returned
// cleanup func runs after the command finishes and may be nil.
type Bootstrap func(opts Options) (*Services, func(), error)

var (
	bootstrap Bootstrap
	cleanup   func()
)

// skipBootstrap marks commands that need no services.
const skipBootstrap = "skip-bootstrap"

var rootCmd = &cobra.Command{
	Use:   "fleetwatch",
	Short: "Fleet compliance and alerting",
	Long: `fleetwatch evaluates a fleet snapshot (drivers, vehicles, maintenance
plans, stock and repairs) against its compliance rules and keeps a bounded,
deduplicated set of notifications.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&configPath, "config", "", "Config file (default ~/.fleetwatch/config.toml)")
	flags.StringVar(&snapshotFlag, "snapshot", "", "Snapshot JSON file (overrides snapshot.path)")
	flags.BoolVar(&ephemeral, "ephemeral", false, "Keep notifications in memory only")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the function that builds services from flags.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs the services used by the commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	evaluator = s.Evaluator
	notificationService = s.NotificationService
	settingsService = s.SettingsService
	scheduler = s.Scheduler
	schedulerConfig = s.SchedulerConfig
	snapshotPath = s.SnapshotPath
	metricsHandler = s.MetricsHandler
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
	}()
	return rootCmd.Execute()
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap == nil || cmd.Annotations[skipBootstrap] == "true" {
		return nil
	}

	services, done, err := bootstrap(Options{
		ConfigPath:   configPath,
		SnapshotPath: snapshotFlag,
		Ephemeral:    ephemeral,
	})
	if err != nil {
		return err
	}
	SetServices(services)
	cleanup = done
	return nil
}
