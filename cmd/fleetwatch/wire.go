package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/fleetwatch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/fleetwatch/internal/adapters/driven/metrics/prometheus"
	"github.com/custodia-labs/fleetwatch/internal/adapters/driven/snapshot/jsonfile"
	"github.com/custodia-labs/fleetwatch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/fleetwatch/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/fleetwatch/internal/adapters/driving/cli"
	"github.com/custodia-labs/fleetwatch/internal/core/ports/driven"
	"github.com/custodia-labs/fleetwatch/internal/core/services"
	"github.com/custodia-labs/fleetwatch/internal/logger"
)

// wire builds the services for one CLI invocation.
func wire(opts cli.Options) (*cli.Services, func(), error) {
	configStore, err := file.NewConfigStore(opts.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("read settings: %w", err)
	}

	snapshotPath, err := resolveSnapshotPath(opts.SnapshotPath, settings.Paths.SnapshotPath)
	if err != nil {
		return nil, nil, err
	}
	source, err := jsonfile.NewSource(snapshotPath)
	if err != nil {
		return nil, nil, err
	}

	var (
		notificationStore driven.NotificationStore
		schedulerStore    driven.SchedulerStore
		cleanup           func()
	)
	if opts.Ephemeral {
		logger.Debug("ephemeral mode: notifications are kept in memory")
		notificationStore = memory.NewNotificationStore()
		schedulerStore = memory.NewSchedulerStore()
	} else {
		store, err := sqlite.NewStore(settings.Paths.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		logger.Debug("using database %s", store.Path())
		notificationStore = store.NotificationStore()
		schedulerStore = store.SchedulerStore()
		cleanup = func() {
			if err := store.Close(); err != nil {
				logger.Warn("closing database: %v", err)
			}
		}
	}

	observer := prometheus.NewObserver()
	evaluator := services.NewEvaluationService(source, notificationStore, settings.Engine,
		services.WithObserver(observer))

	schedulerConfig := settingsService.GetSchedulerConfig()
	scheduler := services.NewScheduler(schedulerConfig, schedulerStore, evaluator)

	return &cli.Services{
		Evaluator:           evaluator,
		NotificationService: services.NewNotificationService(notificationStore),
		SettingsService:     settingsService,
		Scheduler:           scheduler,
		SchedulerConfig:     schedulerConfig,
		SnapshotPath:        snapshotPath,
		MetricsHandler:      observer.Handler(),
	}, cleanup, nil
}

// resolveSnapshotPath prefers the flag, then the config, then
// ~/.fleetwatch/snapshot.json.
func resolveSnapshotPath(flag, configured string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if configured != "" {
		return configured, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".fleetwatch", "snapshot.json"), nil
}
