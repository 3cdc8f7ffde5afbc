package driven

import "time"

// PassStats summarises one evaluation pass for observers.
type PassStats struct {
	Duration   time.Duration
	Candidates int
	Emitted    int
	Evicted    int
	Failed     bool
}

// EvaluationObserver receives pass summaries (e.g. for metrics).
type EvaluationObserver interface {
	ObservePass(stats PassStats)
}
