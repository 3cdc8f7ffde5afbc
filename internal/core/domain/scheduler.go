package domain

import "time"

// TaskIDComplianceEvaluation identifies the periodic evaluation pass.
const TaskIDComplianceEvaluation = "compliance-evaluation"

// TaskHistoryRetention is how many run results are kept per task.
const TaskHistoryRetention = 100

// DefaultEvaluationInterval is used when scheduler.interval_minutes is unset.
const DefaultEvaluationInterval = 15 * time.Minute

// ScheduledTask is the persisted state of a periodic task.
type ScheduledTask struct {
	ID       string
	Name     string
	Interval time.Duration
	Enabled  bool

	// LastRun and NextRun are zero until the first run.
	LastRun time.Time
	NextRun time.Time

	// LastSuccess is kept across failures so operators can see how stale
	// the notification set is.
	LastSuccess time.Time
	LastError   string
}

// IsDue reports whether the task should run at now. A task that has
// never been scheduled is due immediately.
func (t *ScheduledTask) IsDue(now time.Time) bool {
	if !t.Enabled {
		return false
	}
	return t.NextRun.IsZero() || !t.NextRun.After(now)
}

// TaskResult records one scheduled evaluation pass.
type TaskResult struct {
	TaskID    string
	StartedAt time.Time
	EndedAt   time.Time
	Success   bool
	Error     string

	// Pass counters, zero on failure.
	Candidates int
	Emitted    int
	Evicted    int
}

// Duration is how long the run took.
func (r TaskResult) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// TaskConfig is the configured cadence of a task.
type TaskConfig struct {
	Enabled  bool
	Interval time.Duration
}

// SchedulerConfig holds scheduler configuration.
type SchedulerConfig struct {
	// Enabled is the master switch.
	Enabled bool

	// Evaluation configures the compliance evaluation task.
	Evaluation TaskConfig
}

// DefaultSchedulerConfig evaluates every 15 minutes.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Enabled: true,
		Evaluation: TaskConfig{
			Enabled:  true,
			Interval: DefaultEvaluationInterval,
		},
	}
}
