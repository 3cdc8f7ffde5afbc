package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/fleetwatch/internal/core/domain"
)

// Evaluator runs compliance evaluation passes.
type Evaluator interface {
	// Run evaluates the current snapshot, emits new notifications and
	// writes the bounded set back to the store.
	Run(ctx context.Context) (*EvaluationResult, error)

	// Report classifies every date-based obligation in the current
	// snapshot without touching notifications.
	Report(ctx context.Context) ([]domain.Classification, error)
}

// EvaluationResult describes what a pass did.
type EvaluationResult struct {
	// EvaluatedAt is the "now" the pass used.
	EvaluatedAt time.Time

	// Candidates is how many alert candidates the orchestrator produced.
	Candidates int

	// Emitted are the records created by this pass.
	Emitted []domain.NotificationRecord

	// Evicted is how many records the retention bound dropped.
	Evicted int

	// Retained is the size of the stored set after the pass.
	Retained int
}

// Changed reports whether the pass wrote a new set.
func (r *EvaluationResult) Changed() bool {
	return len(r.Emitted) > 0 || r.Evicted > 0
}
