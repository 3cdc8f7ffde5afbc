package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fleetwatch/internal/core/domain"
)

func TestSchedulerStore_GetTask_Unknown(t *testing.T) {
	store := NewSchedulerStore()

	task, err := store.GetTask(context.Background(), "missing")

	require.NoError(t, err)
	assert.Nil(t, task)
}

func TestSchedulerStore_SaveAndList(t *testing.T) {
	ctx := context.Background()
	store := NewSchedulerStore()

	require.NoError(t, store.SaveTask(ctx, &domain.ScheduledTask{ID: "b", Enabled: true}))
	require.NoError(t, store.SaveTask(ctx, &domain.ScheduledTask{ID: "a", Interval: time.Minute}))

	tasks, err := store.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "a", tasks[0].ID)
	assert.Equal(t, time.Minute, tasks[0].Interval)
}

func TestSchedulerStore_SaveTask_Invalid(t *testing.T) {
	store := NewSchedulerStore()

	assert.ErrorIs(t, store.SaveTask(context.Background(), nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.SaveTask(context.Background(), &domain.ScheduledTask{}), domain.ErrInvalidInput)
}

func TestSchedulerStore_HistoryAndPrune(t *testing.T) {
	ctx := context.Background()
	store := NewSchedulerStore()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.RecordResult(ctx, &domain.TaskResult{TaskID: "t", Emitted: i}))
	}

	history, err := store.GetTaskHistory(ctx, "t", 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 4, history[0].Emitted)

	require.NoError(t, store.PruneHistory(ctx, 3))

	history, err = store.GetTaskHistory(ctx, "t", 10)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, 2, history[2].Emitted)
}
