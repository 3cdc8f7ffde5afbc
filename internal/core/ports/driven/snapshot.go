package driven

import (
	"context"

	"github.com/custodia-labs/fleetwatch/internal/core/domain"
)

// SnapshotSource supplies the inbound records for an evaluation pass.
type SnapshotSource interface {
	// Load returns a fresh snapshot. The caller treats it as immutable.
	Load(ctx context.Context) (*domain.Snapshot, error)
}
