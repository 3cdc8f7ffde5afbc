package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/fleetwatch/internal/core/domain"
	"github.com/custodia-labs/fleetwatch/internal/core/ports/driven"
	"github.com/custodia-labs/fleetwatch/internal/core/ports/driving"
	"github.com/custodia-labs/fleetwatch/internal/logger"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

// defaultTick is how often the scheduler looks for due tasks.
const defaultTick = time.Minute

// Scheduler runs evaluation passes on an interval and keeps a run
// history in the scheduler store.
type Scheduler struct {
	config    domain.SchedulerConfig
	store     driven.SchedulerStore
	evaluator driving.Evaluator
	tick      time.Duration

	mu       sync.Mutex
	running  bool
	inFlight map[string]bool
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewScheduler creates a scheduler with configuration.
func NewScheduler(
	config domain.SchedulerConfig,
	store driven.SchedulerStore,
	evaluator driving.Evaluator,
) *Scheduler {
	return &Scheduler{
		config:    config,
		store:     store,
		evaluator: evaluator,
		tick:      defaultTick,
		inFlight:  make(map[string]bool),
	}
}

// Start runs the scheduler loop until ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	if !s.config.Enabled {
		logger.Info("Scheduler disabled")
	} else if err := s.initialiseTasks(ctx); err != nil {
		logger.Warn("scheduler: failed to initialise tasks: %v", err)
	}

	return s.run(ctx, stopCh)
}

// Stop ends the loop and waits for running tasks to finish.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

func (s *Scheduler) initialiseTasks(ctx context.Context) error {
	if !s.config.Evaluation.Enabled {
		return nil
	}
	return s.ensureTask(ctx, domain.TaskIDComplianceEvaluation, "Compliance Evaluation", s.config.Evaluation)
}

// ensureTask creates the task due immediately, or refreshes the stored
// interval and enabled flag.
func (s *Scheduler) ensureTask(ctx context.Context, id, name string, cfg domain.TaskConfig) error {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now()
	if task == nil {
		task = &domain.ScheduledTask{
			ID:       id,
			Name:     name,
			Interval: cfg.Interval,
			Enabled:  cfg.Enabled,
			NextRun:  now,
		}
	} else {
		if task.Interval != cfg.Interval {
			task.Interval = cfg.Interval
			task.NextRun = now.Add(cfg.Interval)
		}
		task.Enabled = cfg.Enabled
	}

	return s.store.SaveTask(ctx, task)
}

func (s *Scheduler) run(ctx context.Context, stopCh <-chan struct{}) error {
	if !s.config.Enabled {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		}
	}

	s.checkAndRunDueTasks(ctx)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			s.checkAndRunDueTasks(ctx)
		}
	}
}

func (s *Scheduler) checkAndRunDueTasks(ctx context.Context) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		logger.Warn("scheduler: failed to list tasks: %v", err)
		return
	}

	now := time.Now()
	for i := range tasks {
		if tasks[i].IsDue(now) {
			s.runTask(ctx, &tasks[i])
		}
	}
}

// runTask executes task in the background. A task still running from
// an earlier tick is skipped.
func (s *Scheduler) runTask(ctx context.Context, task *domain.ScheduledTask) {
	s.mu.Lock()
	if s.inFlight[task.ID] {
		s.mu.Unlock()
		logger.Debug("scheduler: %s still running, skipping", task.ID)
		return
	}
	s.inFlight[task.ID] = true
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			s.mu.Lock()
			delete(s.inFlight, task.ID)
			s.mu.Unlock()
		}()

		result := &domain.TaskResult{
			TaskID:    task.ID,
			StartedAt: time.Now(),
		}

		var err error
		switch task.ID {
		case domain.TaskIDComplianceEvaluation:
			err = s.runEvaluation(ctx, result)
		default:
			logger.Warn("scheduler: unknown task ID: %s", task.ID)
			return
		}

		result.EndedAt = time.Now()
		if err != nil {
			result.Error = err.Error()
			task.LastError = err.Error()
			logger.Warn("scheduler: %s failed: %v", task.ID, err)
		} else {
			result.Success = true
			task.LastError = ""
			task.LastSuccess = result.EndedAt
		}

		task.LastRun = result.StartedAt
		task.NextRun = result.EndedAt.Add(task.Interval)

		if saveErr := s.store.SaveTask(ctx, task); saveErr != nil {
			logger.Warn("scheduler: failed to save task %s: %v", task.ID, saveErr)
		}
		if recordErr := s.store.RecordResult(ctx, result); recordErr != nil {
			logger.Warn("scheduler: failed to record result for %s: %v", task.ID, recordErr)
		}
		if pruneErr := s.store.PruneHistory(ctx, domain.TaskHistoryRetention); pruneErr != nil {
			logger.Warn("scheduler: failed to prune history: %v", pruneErr)
		}
	}()
}

// runEvaluation runs one pass and copies its counters into result.
func (s *Scheduler) runEvaluation(ctx context.Context, result *domain.TaskResult) error {
	if s.evaluator == nil {
		return nil
	}
	pass, err := s.evaluator.Run(ctx)
	if err != nil {
		return err
	}
	result.Candidates = pass.Candidates
	result.Emitted = len(pass.Emitted)
	result.Evicted = pass.Evicted
	return nil
}
