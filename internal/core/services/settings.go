package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/fleetwatch/internal/core/domain"
	"github.com/custodia-labs/fleetwatch/internal/core/ports/driven"
	"github.com/custodia-labs/fleetwatch/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyTimezone          = "engine.timezone"
	keyRetentionLimit    = "engine.retention_limit"
	keyOnboardingDays    = "training.onboarding_days"
	keyRefreshDays       = "training.refresh_days"
	keyNearDays          = "training.near_days"
	keyTopicCode         = "training.topic_code"
	keyTopicAliases      = "training.topic_aliases"
	keyTopicLabel        = "training.topic_label"
	keyMaintenanceWarn   = "maintenance.warning_days"
	keyRepairMaxDays     = "repair.max_in_progress_days"
	keyDayCap            = "display.day_cap"
	keySchedulerInterval = "scheduler.interval_minutes"
	keySnapshotPath      = "snapshot.path"
	keyDataDir           = "storage.data_dir"
)

// SettingsService reads and writes application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings, falling back to defaults per key.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	d := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Engine: domain.EngineSettings{
			Timezone:       s.getString(keyTimezone, d.Engine.Timezone),
			RetentionLimit: s.getInt(keyRetentionLimit, d.Engine.RetentionLimit),
			DayCap:         s.getInt(keyDayCap, d.Engine.DayCap),
			Training: domain.TrainingSettings{
				OnboardingDays: s.getInt(keyOnboardingDays, d.Engine.Training.OnboardingDays),
				RefreshDays:    s.getInt(keyRefreshDays, d.Engine.Training.RefreshDays),
				NearDays:       s.getInt(keyNearDays, d.Engine.Training.NearDays),
				TopicCode:      s.getString(keyTopicCode, d.Engine.Training.TopicCode),
				TopicAliases:   s.getStrings(keyTopicAliases, d.Engine.Training.TopicAliases),
				TopicLabel:     s.getString(keyTopicLabel, d.Engine.Training.TopicLabel),
			},
			Maintenance: domain.MaintenanceSettings{
				WarningDays: s.getInt(keyMaintenanceWarn, d.Engine.Maintenance.WarningDays),
			},
			Repair: domain.RepairSettings{
				MaxInProgressDays: s.getInt(keyRepairMaxDays, d.Engine.Repair.MaxInProgressDays),
			},
		},
		Paths: domain.Paths{
			DataDir:      s.configStore.GetString(keyDataDir),
			SnapshotPath: s.configStore.GetString(keySnapshotPath),
		},
		SchedulerInterval: time.Duration(
			s.getInt(keySchedulerInterval, int(d.SchedulerInterval/time.Minute)),
		) * time.Minute,
	}

	return settings, nil
}

// Save persists settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	e := settings.Engine
	values := []struct {
		key   string
		value any
	}{
		{keyTimezone, e.Timezone},
		{keyRetentionLimit, e.RetentionLimit},
		{keyDayCap, e.DayCap},
		{keyOnboardingDays, e.Training.OnboardingDays},
		{keyRefreshDays, e.Training.RefreshDays},
		{keyNearDays, e.Training.NearDays},
		{keyTopicCode, e.Training.TopicCode},
		{keyTopicAliases, e.Training.TopicAliases},
		{keyTopicLabel, e.Training.TopicLabel},
		{keyMaintenanceWarn, e.Maintenance.WarningDays},
		{keyRepairMaxDays, e.Repair.MaxInProgressDays},
		{keySchedulerInterval, int(settings.SchedulerInterval / time.Minute)},
		{keySnapshotPath, settings.Paths.SnapshotPath},
		{keyDataDir, settings.Paths.DataDir},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return s.configStore.Save()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Validate rejects settings the engine cannot run with.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	e := settings.Engine
	if e.RetentionLimit <= 0 {
		return fmt.Errorf("%w: %s must be positive", domain.ErrInvalidInput, keyRetentionLimit)
	}
	if e.Training.RefreshDays <= 0 || e.Training.OnboardingDays <= 0 {
		return fmt.Errorf("%w: training intervals must be positive", domain.ErrInvalidInput)
	}
	if _, err := time.LoadLocation(e.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", domain.ErrInvalidInput, e.Timezone)
	}
	return nil
}

// GetSchedulerConfig returns the scheduler configuration with the
// evaluation task interval taken from settings.
func (s *SettingsService) GetSchedulerConfig() domain.SchedulerConfig {
	cfg := domain.DefaultSchedulerConfig()
	settings, err := s.Get()
	if err != nil {
		return cfg
	}
	if settings.SchedulerInterval > 0 {
		cfg.Evaluation.Interval = settings.SchedulerInterval
	} else {
		cfg.Evaluation.Enabled = false
	}
	return cfg
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getStrings(key string, defaultVal []string) []string {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetStringSlice(key)
}
