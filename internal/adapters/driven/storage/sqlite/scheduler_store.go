package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/fleetwatch/internal/core/domain"
	"github.com/custodia-labs/fleetwatch/internal/core/ports/driven"
)

const (
	taskColumns   = `id, name, interval_seconds, enabled, last_run, next_run, last_success, last_error`
	resultColumns = `task_id, started_at, ended_at, success, error, candidates, emitted, evicted`
)

// schedulerStore keeps evaluation task state in scheduled_tasks and one
// row per run in task_results.
type schedulerStore struct {
	store *Store
}

var _ driven.SchedulerStore = (*schedulerStore)(nil)

// GetTask returns nil without error for an unknown id.
func (s *schedulerStore) GetTask(ctx context.Context, taskID string) (*domain.ScheduledTask, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM scheduled_tasks WHERE id = ?`, taskID)

	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return task, err
}

// ListTasks returns every task ordered by id.
func (s *schedulerStore) ListTasks(ctx context.Context) ([]domain.ScheduledTask, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM scheduled_tasks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.ScheduledTask
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

// SaveTask upserts by id.
func (s *schedulerStore) SaveTask(ctx context.Context, task *domain.ScheduledTask) error {
	if task == nil || task.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO scheduled_tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			interval_seconds = excluded.interval_seconds,
			enabled = excluded.enabled,
			last_run = excluded.last_run,
			next_run = excluded.next_run,
			last_success = excluded.last_success,
			last_error = excluded.last_error
	`,
		task.ID, task.Name, int64(task.Interval/time.Second), boolToInt(task.Enabled),
		formatNullableTime(task.LastRun), formatNullableTime(task.NextRun),
		formatNullableTime(task.LastSuccess), nullString(task.LastError))
	if err != nil {
		return fmt.Errorf("save task %s: %w", task.ID, err)
	}
	return nil
}

// RecordResult appends one run to the history.
func (s *schedulerStore) RecordResult(ctx context.Context, result *domain.TaskResult) error {
	if result == nil || result.TaskID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx,
		`INSERT INTO task_results (`+resultColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		result.TaskID, formatTime(result.StartedAt), formatTime(result.EndedAt),
		boolToInt(result.Success), nullString(result.Error),
		result.Candidates, result.Emitted, result.Evicted)
	if err != nil {
		return fmt.Errorf("record result for %s: %w", result.TaskID, err)
	}
	return nil
}

// GetTaskHistory returns up to limit runs, newest first. A non-positive
// limit returns the whole history.
func (s *schedulerStore) GetTaskHistory(ctx context.Context, taskID string, limit int) ([]domain.TaskResult, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+resultColumns+` FROM task_results
		WHERE task_id = ?
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, taskID, limit)
	if err != nil {
		return nil, fmt.Errorf("task history for %s: %w", taskID, err)
	}
	defer rows.Close()

	var results []domain.TaskResult
	for rows.Next() {
		var (
			r              domain.TaskResult
			started, ended string
			success        int
			errMsg         sql.NullString
		)
		if err := rows.Scan(&r.TaskID, &started, &ended, &success, &errMsg,
			&r.Candidates, &r.Emitted, &r.Evicted); err != nil {
			return nil, fmt.Errorf("scan task result: %w", err)
		}
		r.StartedAt = parseTime(started)
		r.EndedAt = parseTime(ended)
		r.Success = success == 1
		r.Error = errMsg.String
		results = append(results, r)
	}
	return results, rows.Err()
}

// PruneHistory keeps the newest keep runs of each task.
func (s *schedulerStore) PruneHistory(ctx context.Context, keep int) error {
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM task_results
		WHERE id IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (
					PARTITION BY task_id ORDER BY started_at DESC, id DESC
				) AS rn
				FROM task_results
			) WHERE rn > ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("prune task history: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.ScheduledTask, error) {
	var (
		task                         domain.ScheduledTask
		intervalSeconds              int64
		enabled                      int
		lastRun, nextRun, lastOK, le sql.NullString
	)
	if err := row.Scan(&task.ID, &task.Name, &intervalSeconds, &enabled,
		&lastRun, &nextRun, &lastOK, &le); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}

	task.Interval = time.Duration(intervalSeconds) * time.Second
	task.Enabled = enabled == 1
	task.LastRun = parseNullableTime(lastRun)
	task.NextRun = parseNullableTime(nextRun)
	task.LastSuccess = parseNullableTime(lastOK)
	task.LastError = le.String
	return &task, nil
}
