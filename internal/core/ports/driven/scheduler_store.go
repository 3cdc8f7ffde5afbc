package driven

import (
	"context"

	"github.com/custodia-labs/fleetwatch/internal/core/domain"
)

// SchedulerStore persists scheduled evaluation state so the schedule
// survives restarts, along with a run history per task.
type SchedulerStore interface {
	// GetTask returns nil and no error when the task is unknown.
	GetTask(ctx context.Context, taskID string) (*domain.ScheduledTask, error)

	// ListTasks returns all known tasks.
	ListTasks(ctx context.Context) ([]domain.ScheduledTask, error)

	// SaveTask upserts a task by ID.
	SaveTask(ctx context.Context, task *domain.ScheduledTask) error

	// RecordResult appends a run to the task's history.
	RecordResult(ctx context.Context, result *domain.TaskResult) error

	// GetTaskHistory returns up to limit runs, most recent first.
	GetTaskHistory(ctx context.Context, taskID string, limit int) ([]domain.TaskResult, error)

	// PruneHistory keeps only the newest keep runs per task.
	PruneHistory(ctx context.Context, keep int) error
}
