package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/fleetwatch/internal/core/domain"
)

// Deduplicator decides whether an alert candidate becomes a new record.
// It never modifies existing records.
type Deduplicator struct {
	newID func() string
}

// NewDeduplicator creates a deduplicator. A nil newID uses random UUIDs.
func NewDeduplicator(newID func() string) *Deduplicator {
	if newID == nil {
		newID = uuid.NewString
	}
	return &Deduplicator{newID: newID}
}

// Emit returns a new unread record for candidate unless set already holds
// an unread record with the same stable key. Read records never suppress.
func (d *Deduplicator) Emit(
	candidate domain.AlertCandidate,
	set []domain.NotificationRecord,
	now time.Time,
) (domain.NotificationRecord, bool) {
	if hasActive(set, candidate.StableKey) {
		return domain.NotificationRecord{}, false
	}
	return d.record(candidate, now), true
}

// EmitAll applies Emit to every candidate in order. It returns the
// augmented set, with new records ahead of the existing ones, and the
// records created. Candidates sharing a key in one pass emit once.
func (d *Deduplicator) EmitAll(
	candidates []domain.AlertCandidate,
	set []domain.NotificationRecord,
	now time.Time,
) (merged, emitted []domain.NotificationRecord) {
	active := make(map[string]struct{}, len(set))
	for _, rec := range set {
		if rec.IsActive() {
			active[rec.StableKey] = struct{}{}
		}
	}

	for _, c := range candidates {
		if _, ok := active[c.StableKey]; ok {
			continue
		}
		active[c.StableKey] = struct{}{}
		emitted = append(emitted, d.record(c, now))
	}

	if len(emitted) == 0 {
		return set, nil
	}

	merged = make([]domain.NotificationRecord, 0, len(emitted)+len(set))
	merged = append(merged, emitted...)
	merged = append(merged, set...)
	return merged, emitted
}

func (d *Deduplicator) record(c domain.AlertCandidate, now time.Time) domain.NotificationRecord {
	return domain.NotificationRecord{
		ID:             d.newID(),
		StableKey:      c.StableKey,
		ObligationType: c.ObligationType.String(),
		EntityID:       c.EntityID,
		Message:        c.Message,
		Severity:       c.Severity,
		CreatedAt:      now,
		LinkTarget:     c.LinkTarget,
	}
}

func hasActive(set []domain.NotificationRecord, key string) bool {
	for _, rec := range set {
		if rec.StableKey == key && rec.IsActive() {
			return true
		}
	}
	return false
}
