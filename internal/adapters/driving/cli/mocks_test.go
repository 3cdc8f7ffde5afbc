package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fleetwatch/internal/core/domain"
	"github.com/custodia-labs/fleetwatch/internal/core/ports/driving"
)

// mockEvaluator implements driving.Evaluator for testing.
type mockEvaluator struct {
	mu     sync.Mutex
	result *driving.EvaluationResult
	report []domain.Classification
	err    error
	runs   int
	ran    chan struct{}
}

func (m *mockEvaluator) Run(_ context.Context) (*driving.EvaluationResult, error) {
	m.mu.Lock()
	m.runs++
	result, err := m.result, m.err
	m.mu.Unlock()

	if m.ran != nil {
		select {
		case m.ran <- struct{}{}:
		default:
		}
	}
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = &driving.EvaluationResult{EvaluatedAt: time.Now()}
	}
	return result, nil
}

func (m *mockEvaluator) Report(_ context.Context) ([]domain.Classification, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

func (m *mockEvaluator) Runs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runs
}

// mockNotificationService implements driving.NotificationService for testing.
type mockNotificationService struct {
	records  []domain.NotificationRecord
	lastOpts driving.NotificationListOptions
	marked   []string
	err      error
}

func (m *mockNotificationService) List(
	_ context.Context,
	opts driving.NotificationListOptions,
) ([]domain.NotificationRecord, error) {
	m.lastOpts = opts
	return m.records, m.err
}

func (m *mockNotificationService) Unread(_ context.Context) ([]domain.NotificationRecord, error) {
	return m.records, m.err
}

func (m *mockNotificationService) MarkRead(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.marked = append(m.marked, id)
	return nil
}

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	settings    domain.AppSettings
	saved       *domain.AppSettings
	validateErr error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.saved = settings
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) Validate() error {
	return m.validateErr
}

// mockScheduler implements driving.Scheduler for testing.
type mockScheduler struct {
	started chan struct{}
	stopped bool
}

func (m *mockScheduler) Start(ctx context.Context) error {
	if m.started != nil {
		close(m.started)
	}
	<-ctx.Done()
	return nil
}

func (m *mockScheduler) Stop() error {
	m.stopped = true
	return nil
}

var (
	_ driving.Evaluator           = (*mockEvaluator)(nil)
	_ driving.NotificationService = (*mockNotificationService)(nil)
	_ driving.SettingsService     = (*mockSettingsService)(nil)
	_ driving.Scheduler           = (*mockScheduler)(nil)
)

// setupServices installs s and restores the previous wiring and flag
// values when the test ends.
func setupServices(t *testing.T, s *Services) {
	t.Helper()

	old := Services{
		Evaluator:           evaluator,
		NotificationService: notificationService,
		SettingsService:     settingsService,
		Scheduler:           scheduler,
		SchedulerConfig:     schedulerConfig,
		SnapshotPath:        snapshotPath,
		MetricsHandler:      metricsHandler,
	}
	oldBootstrap := bootstrap

	resetFlags()
	SetServices(s)
	bootstrap = nil

	t.Cleanup(func() {
		SetServices(&old)
		bootstrap = oldBootstrap
		resetFlags()
	})
}

// resetFlags clears flag variables, which cobra keeps between executions.
func resetFlags() {
	verbose, configPath, snapshotFlag, ephemeral = false, "", "", false
	listUnreadOnly, listLimit, listJSON = false, 0, false
	statusAttentionOnly = false
	watchMinInterval = 2 * time.Second
	metricsAddr = ""
}

// executeCommand runs the root command with args and returns its output.
// Cobra only hands the root context to a subcommand whose own context is
// nil, so contexts left by earlier runs are replaced first.
func executeCommand(ctx context.Context, args ...string) (string, error) {
	setCommandContext(ctx, rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.ExecuteContext(ctx)
	return buf.String(), err
}

func setCommandContext(ctx context.Context, cmd *cobra.Command) {
	cmd.SetContext(ctx)
	for _, sub := range cmd.Commands() {
		setCommandContext(ctx, sub)
	}
}
