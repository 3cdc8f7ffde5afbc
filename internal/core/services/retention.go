package services

import (
	"slices"

	"github.com/custodia-labs/fleetwatch/internal/core/domain"
)

// DefaultRetentionLimit is the stored notification cap.
const DefaultRetentionLimit = 50

// Bound keeps the maxSize newest records by CreatedAt and drops the rest.
// Survivors stay in their input order. Among equal timestamps, records
// nearer the front of set win. Read state plays no part.
// A non-positive maxSize means DefaultRetentionLimit.
func Bound(set []domain.NotificationRecord, maxSize int) []domain.NotificationRecord {
	if maxSize <= 0 {
		maxSize = DefaultRetentionLimit
	}
	if len(set) <= maxSize {
		return set
	}

	order := make([]int, len(set))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return set[b].CreatedAt.Compare(set[a].CreatedAt)
	})

	keep := make([]bool, len(set))
	for _, idx := range order[:maxSize] {
		keep[idx] = true
	}

	out := make([]domain.NotificationRecord, 0, maxSize)
	for i, rec := range set {
		if keep[i] {
			out = append(out, rec)
		}
	}
	return out
}
