package services

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fleetwatch/internal/core/domain"
)

// sequentialIDs returns a generator yielding n-1, n-2, ... as strings.
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return "n-" + strconv.Itoa(n)
	}
}

func stockCandidate(id string) domain.AlertCandidate {
	return domain.AlertCandidate{
		StableKey:      domain.StableKey(domain.ObligationStockReorder, id, domain.ConditionOutOfStock),
		ObligationType: domain.ObligationStockReorder,
		EntityID:       id,
		Severity:       domain.SeverityDanger,
		Message:        "Out of stock: " + id,
		LinkTarget:     "/stock/" + id,
	}
}

func TestDeduplicator_EmitIntoEmptySet(t *testing.T) {
	d := NewDeduplicator(sequentialIDs())
	now := time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC)

	rec, ok := d.Emit(stockCandidate("oil"), nil, now)

	require.True(t, ok)
	assert.Equal(t, "n-1", rec.ID)
	assert.Equal(t, "stock_reorder:oil:out_of_stock", rec.StableKey)
	assert.Equal(t, "stock_reorder", rec.ObligationType)
	assert.Equal(t, "oil", rec.EntityID)
	assert.Equal(t, domain.SeverityDanger, rec.Severity)
	assert.Equal(t, "/stock/oil", rec.LinkTarget)
	assert.Equal(t, now, rec.CreatedAt)
	assert.False(t, rec.IsRead)
}

func TestDeduplicator_UnreadSuppresses(t *testing.T) {
	d := NewDeduplicator(nil)
	c := stockCandidate("oil")
	set := []domain.NotificationRecord{{ID: "x", StableKey: c.StableKey}}

	_, ok := d.Emit(c, set, time.Now())

	assert.False(t, ok)
}

func TestDeduplicator_ReadDoesNotSuppress(t *testing.T) {
	d := NewDeduplicator(nil)
	c := stockCandidate("oil")
	set := []domain.NotificationRecord{{ID: "x", StableKey: c.StableKey, IsRead: true}}

	rec, ok := d.Emit(c, set, time.Now())

	require.True(t, ok)
	assert.Equal(t, c.StableKey, rec.StableKey)
	assert.False(t, rec.IsRead)
	assert.NotEqual(t, "x", rec.ID)
}

func TestDeduplicator_OtherKeysDoNotSuppress(t *testing.T) {
	d := NewDeduplicator(nil)
	set := []domain.NotificationRecord{{StableKey: stockCandidate("fuel").StableKey}}

	_, ok := d.Emit(stockCandidate("oil"), set, time.Now())

	assert.True(t, ok)
}

func TestDeduplicator_DefaultIDsAreUUIDs(t *testing.T) {
	d := NewDeduplicator(nil)

	a, _ := d.Emit(stockCandidate("oil"), nil, time.Now())
	b, _ := d.Emit(stockCandidate("oil"), nil, time.Now())

	assert.Len(t, a.ID, 36)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestDeduplicator_EmitAll(t *testing.T) {
	d := NewDeduplicator(sequentialIDs())
	now := time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC)
	existing := []domain.NotificationRecord{
		{ID: "old", StableKey: stockCandidate("fuel").StableKey, CreatedAt: now.Add(-time.Hour)},
	}
	candidates := []domain.AlertCandidate{
		stockCandidate("oil"),
		stockCandidate("fuel"),
		stockCandidate("oil"),
		stockCandidate("tyre"),
	}

	merged, emitted := d.EmitAll(candidates, existing, now)

	require.Len(t, emitted, 2)
	assert.Equal(t, "oil", emitted[0].EntityID)
	assert.Equal(t, "tyre", emitted[1].EntityID)

	require.Len(t, merged, 3)
	assert.Equal(t, "n-1", merged[0].ID)
	assert.Equal(t, "n-2", merged[1].ID)
	assert.Equal(t, "old", merged[2].ID)
}

func TestDeduplicator_EmitAll_NothingNewReturnsInputSet(t *testing.T) {
	d := NewDeduplicator(nil)
	existing := []domain.NotificationRecord{{ID: "old", StableKey: stockCandidate("oil").StableKey}}

	merged, emitted := d.EmitAll([]domain.AlertCandidate{stockCandidate("oil")}, existing, time.Now())

	assert.Empty(t, emitted)
	assert.Equal(t, existing, merged)
}

func TestDeduplicator_EmitAll_DoesNotMutateInput(t *testing.T) {
	d := NewDeduplicator(nil)
	existing := []domain.NotificationRecord{{ID: "old", StableKey: "k", IsRead: true}}
	snapshot := append([]domain.NotificationRecord(nil), existing...)

	_, _ = d.EmitAll([]domain.AlertCandidate{{StableKey: "k"}}, existing, time.Now())

	assert.Equal(t, snapshot, existing)
}
