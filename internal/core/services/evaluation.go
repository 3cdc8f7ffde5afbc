package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/fleetwatch/internal/core/domain"
	"github.com/custodia-labs/fleetwatch/internal/core/ports/driven"
	"github.com/custodia-labs/fleetwatch/internal/core/ports/driving"
	"github.com/custodia-labs/fleetwatch/internal/logger"
)

// Ensure EvaluationService implements the interface.
var _ driving.Evaluator = (*EvaluationService)(nil)

// EvaluationService runs passes against the driven ports.
// Computing candidates is lock-free. Merging into the stored set happens
// inside NotificationStore.Update, which the store makes atomic across
// every process sharing it, so concurrent passes and acknowledgements
// never overwrite each other.
type EvaluationService struct {
	source       driven.SnapshotSource
	store        driven.NotificationStore
	observer     driven.EvaluationObserver
	orchestrator *Orchestrator
	dedup        *Deduplicator
	retention    int
	now          func() time.Time
}

// EvaluationOption customises an EvaluationService.
type EvaluationOption func(*EvaluationService)

// WithClock overrides the pass clock.
func WithClock(now func() time.Time) EvaluationOption {
	return func(s *EvaluationService) {
		s.now = now
	}
}

// WithIDGenerator overrides notification ID generation.
func WithIDGenerator(newID func() string) EvaluationOption {
	return func(s *EvaluationService) {
		s.dedup = NewDeduplicator(newID)
	}
}

// WithObserver attaches a pass observer.
func WithObserver(observer driven.EvaluationObserver) EvaluationOption {
	return func(s *EvaluationService) {
		s.observer = observer
	}
}

// NewEvaluationService creates an evaluation service.
func NewEvaluationService(
	source driven.SnapshotSource,
	store driven.NotificationStore,
	settings domain.EngineSettings,
	opts ...EvaluationOption,
) *EvaluationService {
	s := &EvaluationService{
		source:       source,
		store:        store,
		orchestrator: NewOrchestrator(settings),
		dedup:        NewDeduplicator(nil),
		retention:    settings.RetentionLimit,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one pass.
func (s *EvaluationService) Run(ctx context.Context) (*driving.EvaluationResult, error) {
	start := time.Now()
	result, err := s.run(ctx)

	if s.observer != nil {
		stats := driven.PassStats{Duration: time.Since(start), Failed: err != nil}
		if result != nil {
			stats.Candidates = result.Candidates
			stats.Emitted = len(result.Emitted)
			stats.Evicted = result.Evicted
		}
		s.observer.ObservePass(stats)
	}
	return result, err
}

func (s *EvaluationService) run(ctx context.Context) (*driving.EvaluationResult, error) {
	logger.Section("Evaluation")

	snapshot, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	candidates := s.orchestrator.Evaluate(snapshot, now)

	var result *driving.EvaluationResult
	err = s.store.Update(ctx, func(current []domain.NotificationRecord) ([]domain.NotificationRecord, bool, error) {
		logger.Debug("Candidates: %d, stored: %d", len(candidates), len(current))

		merged, emitted := s.dedup.EmitAll(candidates, current, now)
		bounded := Bound(merged, s.retention)

		result = &driving.EvaluationResult{
			EvaluatedAt: now,
			Candidates:  len(candidates),
			Emitted:     emitted,
			Evicted:     len(merged) - len(bounded),
			Retained:    len(bounded),
		}
		return bounded, result.Changed(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("update notifications: %w", err)
	}

	if !result.Changed() {
		logger.Debug("No new conditions")
		return result, nil
	}
	logger.Info("Emitted %d, evicted %d, retained %d", len(result.Emitted), result.Evicted, result.Retained)
	return result, nil
}

// Report classifies the current snapshot without writing anything.
func (s *EvaluationService) Report(ctx context.Context) ([]domain.Classification, error) {
	snapshot, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.orchestrator.Report(snapshot, s.now()), nil
}

func (s *EvaluationService) load(ctx context.Context) (*domain.Snapshot, error) {
	if s.source == nil {
		return nil, domain.ErrSnapshotUnavailable
	}
	snapshot, err := s.source.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrSnapshotUnavailable, err)
	}
	if snapshot == nil {
		snapshot = &domain.Snapshot{}
	}
	return snapshot, nil
}
