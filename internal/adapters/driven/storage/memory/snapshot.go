package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/fleetwatch/internal/core/domain"
	"github.com/custodia-labs/fleetwatch/internal/core/ports/driven"
)

// Ensure SnapshotSource implements the interface.
var _ driven.SnapshotSource = (*SnapshotSource)(nil)

// SnapshotSource serves a fixed snapshot that tests can swap.
type SnapshotSource struct {
	mu       sync.RWMutex
	snapshot *domain.Snapshot
	err      error
}

// NewSnapshotSource creates a source serving snapshot.
func NewSnapshotSource(snapshot *domain.Snapshot) *SnapshotSource {
	return &SnapshotSource{snapshot: snapshot}
}

// Set replaces the served snapshot.
func (s *SnapshotSource) Set(snapshot *domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot
}

// SetError makes Load fail with err until cleared with nil.
func (s *SnapshotSource) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Load returns the current snapshot.
func (s *SnapshotSource) Load(_ context.Context) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	if s.snapshot == nil {
		return &domain.Snapshot{}, nil
	}
	return s.snapshot, nil
}
