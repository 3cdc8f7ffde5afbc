package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	store, err := NewConfigStore(path)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, path, store.Path())
	assert.NoFileExists(t, path, "nothing is written until Save")
}

func TestNewConfigStore_DefaultPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	store, err := NewConfigStore("")
	if err != nil {
		t.Skipf("existing user config is unreadable: %v", err)
	}

	assert.Equal(t, filepath.Join(home, ".fleetwatch", "config.toml"), store.Path())
}

func TestNewConfigStore_LoadsNestedTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[engine]
timezone = "Asia/Bangkok"
retention_limit = 25

[training]
topic_code = "DDC"
topic_aliases = ["DEF-DRIVE", "SAFE-01"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	store, err := NewConfigStore(path)
	require.NoError(t, err)

	assert.Equal(t, "Asia/Bangkok", store.GetString("engine.timezone"))
	assert.Equal(t, 25, store.GetInt("engine.retention_limit"))
	assert.Equal(t, "DDC", store.GetString("training.topic_code"))
	assert.Equal(t, []string{"DEF-DRIVE", "SAFE-01"}, store.GetStringSlice("training.topic_aliases"))
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[engine\ntimezone = "), 0600))

	_, err := NewConfigStore(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("engine.timezone", "UTC"))

	val, ok := store.Get("engine.timezone")
	assert.True(t, ok)
	assert.Equal(t, "UTC", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_Set_EmptyKey(t *testing.T) {
	store := newTestStore(t)

	assert.Error(t, store.Set("  ", 1))
}

func TestConfigStore_GetString_WrongType(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("display.day_cap", 99))

	assert.Equal(t, "", store.GetString("display.day_cap"))
	assert.Equal(t, "", store.GetString("missing"))
}

func TestConfigStore_GetInt(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		name  string
		value any
		want  int
	}{
		{"int", 42, 42},
		{"int64", int64(7), 7},
		{"float", 3.0, 3},
		{"numeric string", " 30 ", 30},
		{"junk string", "thirty", 0},
		{"bool", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, store.Set("k", tt.value))
			assert.Equal(t, tt.want, store.GetInt("k"))
		})
	}

	assert.Equal(t, 0, store.GetInt("missing"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("a", []string{"x", "y"}))
	require.NoError(t, store.Set("b", []any{"x", 1, "y"}))
	require.NoError(t, store.Set("c", "x, y ,,"))
	require.NoError(t, store.Set("d", 5))

	assert.Equal(t, []string{"x", "y"}, store.GetStringSlice("a"))
	assert.Equal(t, []string{"x", "y"}, store.GetStringSlice("b"))
	assert.Equal(t, []string{"x", "y"}, store.GetStringSlice("c"))
	assert.Nil(t, store.GetStringSlice("d"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_SaveReload_PreservesData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	store, err := NewConfigStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Set("engine.timezone", "Asia/Bangkok"))
	require.NoError(t, store.Set("engine.retention_limit", 50))
	require.NoError(t, store.Set("training.topic_aliases", []string{"DEF-DRIVE"}))
	require.NoError(t, store.Set("snapshot.path", "/var/lib/fleet/snapshot.json"))
	require.NoError(t, store.Save())

	reloaded, err := NewConfigStore(path)
	require.NoError(t, err)

	assert.Equal(t, "Asia/Bangkok", reloaded.GetString("engine.timezone"))
	assert.Equal(t, 50, reloaded.GetInt("engine.retention_limit"))
	assert.Equal(t, []string{"DEF-DRIVE"}, reloaded.GetStringSlice("training.topic_aliases"))
	assert.Equal(t, "/var/lib/fleet/snapshot.json", reloaded.GetString("snapshot.path"))
}

func TestConfigStore_Save_WritesTables(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("engine.timezone", "UTC"))
	require.NoError(t, store.Save())

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[engine]")
	assert.NotContains(t, string(data), "engine.timezone")
}

func TestConfigStore_Save_FilePermissions(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Save_ConflictingKeys(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("engine", "flat"))
	require.NoError(t, store.Set("engine.timezone", "UTC"))

	assert.Error(t, store.Save())
}

func TestConfigStore_Set_DoesNotPersist(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("engine.timezone", "UTC"))

	assert.NoFileExists(t, store.Path())
}

func TestConfigStore_Load_DiscardsUnsaved(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("engine.timezone", "UTC"))

	require.NoError(t, store.Load())

	_, ok := store.Get("engine.timezone")
	assert.False(t, ok)
}

func TestConfigStore_Load_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	store, err := NewConfigStore(path)
	require.NoError(t, err)

	_, ok := store.Get("anything")
	assert.False(t, ok)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Set("engine.retention_limit", i)
			_ = store.GetInt("engine.retention_limit")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("engine.retention_limit")
	assert.True(t, ok)
}

func TestNestMap(t *testing.T) {
	nested, err := nestMap(map[string]any{
		"a.b.c": 1,
		"a.d":   "x",
		"e":     true,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": 1},
			"d": "x",
		},
		"e": true,
	}, nested)
}

func TestFlattenMap(t *testing.T) {
	flat := flattenMap(map[string]any{
		"a": map[string]any{"b": map[string]any{"c": 1}},
		"e": true,
	}, "")

	assert.Equal(t, map[string]any{"a.b.c": 1, "e": true}, flat)
}
