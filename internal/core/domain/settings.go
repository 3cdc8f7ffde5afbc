package domain

import "time"

// TrainingSettings holds the defensive-driving rule parameters.
type TrainingSettings struct {
	// OnboardingDays is the window a new hire has to complete training.
	OnboardingDays int

	// RefreshDays is how long a completed training stays valid.
	RefreshDays int

	// NearDays is the warning window before a due or refresh date.
	NearDays int

	// TopicCode is the canonical course code in training history.
	TopicCode string

	// TopicAliases are alternative codes for the same course.
	TopicAliases []string

	// TopicLabel is matched case-insensitively as a substring of a
	// record's label when no code matches.
	TopicLabel string
}

// Rule returns the recurrence rule for training obligations.
func (t TrainingSettings) Rule() RecurrenceRule {
	return RecurrenceRule{
		Initial:        Days(t.OnboardingDays),
		Repeat:         Days(t.RefreshDays),
		NearWindowDays: t.NearDays,
	}
}

// MaintenanceSettings holds preventive-maintenance thresholds.
type MaintenanceSettings struct {
	// WarningDays is how close to the due date a plan raises a warning.
	WarningDays int
}

// RepairSettings holds repair-duration thresholds.
type RepairSettings struct {
	// MaxInProgressDays is how long a repair may stay in progress.
	MaxInProgressDays int
}

// EngineSettings holds everything the evaluation engine reads.
type EngineSettings struct {
	// Timezone is the IANA zone used for zone-less dates.
	Timezone string

	// RetentionLimit caps the stored notification set.
	RetentionLimit int

	// DayCap is the display ceiling for day counts.
	DayCap int

	Training    TrainingSettings
	Maintenance MaintenanceSettings
	Repair      RepairSettings
}

// Location resolves Timezone, falling back to UTC when unset or unknown.
func (e EngineSettings) Location() *time.Location {
	if e.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Paths holds file locations used by the driven adapters.
type Paths struct {
	// DataDir holds the SQLite database.
	DataDir string

	// SnapshotPath is the JSON snapshot file read on every pass.
	SnapshotPath string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Engine EngineSettings
	Paths  Paths

	// SchedulerInterval is how often scheduled evaluation runs.
	SchedulerInterval time.Duration
}

// DefaultEngineSettings returns the stock thresholds.
func DefaultEngineSettings() EngineSettings {
	return EngineSettings{
		Timezone:       "UTC",
		RetentionLimit: 50,
		DayCap:         DefaultDayCap,
		Training: TrainingSettings{
			OnboardingDays: 120,
			RefreshDays:    365,
			NearDays:       30,
			TopicCode:      "DDC",
			TopicAliases:   []string{"DD-01", "DEFENSIVE"},
			TopicLabel:     "defensive driving",
		},
		Maintenance: MaintenanceSettings{
			WarningDays: 7,
		},
		Repair: RepairSettings{
			MaxInProgressDays: 2,
		},
	}
}

// DefaultAppSettings returns settings with sensible defaults.
// Empty paths are resolved by the adapters to ~/.fleetwatch locations.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Engine:            DefaultEngineSettings(),
		SchedulerInterval: DefaultEvaluationInterval,
	}
}
