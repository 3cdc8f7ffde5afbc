package memory

import (
	"errors"
	"maps"
	"strconv"
	"strings"
	"sync"

	"github.com/custodia-labs/fleetwatch/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore mirrors the file store's contract without a file: Set
// changes the working copy, Save commits it, Load discards uncommitted
// changes.
type ConfigStore struct {
	mu      sync.RWMutex
	working map[string]any
	saved   map[string]any
}

// NewConfigStore creates an empty store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		working: make(map[string]any),
		saved:   make(map[string]any),
	}
}

func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.working[key]
	return v, ok
}

func (s *ConfigStore) GetString(key string) string {
	v, _ := s.Get(key)
	str, _ := v.(string)
	return str
}

// GetInt accepts any numeric type or a numeric string.
func (s *ConfigStore) GetInt(key string) int {
	v, _ := s.Get(key)
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(n))
		return i
	}
	return 0
}

// GetStringSlice accepts a list or a comma-separated string. Non-string
// list items are skipped.
func (s *ConfigStore) GetStringSlice(key string) []string {
	v, _ := s.Get(key)
	var out []string
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out = make([]string, 0, len(list))
		for _, item := range list {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
	case string:
		for _, part := range strings.Split(list, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (s *ConfigStore) Set(key string, value any) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("config key is empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.working[key] = value
	return nil
}

// Save commits the working copy.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = maps.Clone(s.working)
	return nil
}

// Load resets the working copy to the last Save.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.working = maps.Clone(s.saved)
	return nil
}

func (s *ConfigStore) Path() string {
	return ":memory:"
}
