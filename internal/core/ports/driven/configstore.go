package driven

// ConfigStore provides access to flattened configuration keys such as
// "training.refresh_days". Implementations handle persistence and type
// conversion; a missing or mistyped key reads as the zero value.
type ConfigStore interface {
	// Get retrieves a raw value and whether the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string value.
	GetString(key string) string

	// GetInt retrieves an integer value.
	GetInt(key string) int

	// GetStringSlice retrieves a string list value.
	GetStringSlice(key string) []string

	// Set stores a value in memory. Call Save to persist it.
	Set(key string, value any) error

	// Save persists the current configuration.
	Save() error

	// Load re-reads configuration from storage.
	Load() error

	// Path returns where the configuration lives.
	Path() string
}
