package driving

import "github.com/custodia-labs/fleetwatch/internal/core/domain"

// SettingsService exposes the evaluation thresholds, paths and schedule.
// Unset keys fall back to GetDefaults.
type SettingsService interface {
	Get() (*domain.AppSettings, error)
	Save(settings *domain.AppSettings) error
	GetDefaults() domain.AppSettings

	// Validate reports thresholds or a timezone that would make a pass
	// meaningless, wrapping domain.ErrInvalidInput.
	Validate() error
}
