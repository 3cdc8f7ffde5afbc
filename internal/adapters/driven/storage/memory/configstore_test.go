package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("engine.timezone", "Asia/Bangkok"))

	val, ok := store.Get("engine.timezone")
	assert.True(t, ok)
	assert.Equal(t, "Asia/Bangkok", val)
	assert.Equal(t, "Asia/Bangkok", store.GetString("engine.timezone"))
}

func TestConfigStore_MissingKey(t *testing.T) {
	store := NewConfigStore()

	_, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("missing"))
	assert.Zero(t, store.GetInt("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_GetInt(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int
	}{
		{"int", 120, 120},
		{"int64", int64(365), 365},
		{"float64", float64(30), 30},
		{"numeric string", "7", 7},
		{"non-numeric string", "seven", 0},
		{"bool", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore()
			require.NoError(t, store.Set("k", tt.value))
			assert.Equal(t, tt.want, store.GetInt("k"))
		})
	}
}

func TestConfigStore_GetString_WrongType(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("k", 42))

	assert.Empty(t, store.GetString("k"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("typed", []string{"DD-01", "DEFENSIVE"}))
	require.NoError(t, store.Set("loose", []any{"DD-01", 3, "DEFENSIVE"}))

	assert.Equal(t, []string{"DD-01", "DEFENSIVE"}, store.GetStringSlice("typed"))
	assert.Equal(t, []string{"DD-01", "DEFENSIVE"}, store.GetStringSlice("loose"))

	require.NoError(t, store.Set("csv", " DD-01, ,DEFENSIVE "))
	assert.Equal(t, []string{"DD-01", "DEFENSIVE"}, store.GetStringSlice("csv"))
}

func TestConfigStore_Set_EmptyKey(t *testing.T) {
	assert.Error(t, NewConfigStore().Set(" ", 1))
}

func TestConfigStore_LoadDiscardsUnsaved(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("training.near_days", 30))
	require.NoError(t, store.Save())

	require.NoError(t, store.Set("training.near_days", 10))
	require.NoError(t, store.Set("display.day_cap", 99))
	assert.Equal(t, 10, store.GetInt("training.near_days"))

	require.NoError(t, store.Load())

	assert.Equal(t, 30, store.GetInt("training.near_days"))
	_, ok := store.Get("display.day_cap")
	assert.False(t, ok)
	assert.Equal(t, ":memory:", store.Path())
}
