package services

import (
	"slices"
	"strconv"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/custodia-labs/fleetwatch/internal/core/domain"
)

var propertyNow = time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)

// TestClassifierTotality verifies every obligation lands in exactly one
// defined state, whatever its eligibility flags and date text.
func TestClassifierTotality(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	classifier := NewClassifier(nil)
	dateGen := gen.OneGenOf(
		gen.IntRange(-2000, 2000).Map(func(n int) string {
			return propertyNow.AddDate(0, 0, n).Format("2006-01-02")
		}),
		gen.IntRange(-2000, 2000).Map(func(n int) string {
			be := propertyNow.AddDate(543, 0, n)
			return be.Format("2006-01-02")
		}),
		gen.AlphaString(),
		gen.Const(""),
	)

	properties.Property("classification is one of the eight states", prop.ForAll(
		func(waived, newEntrant, dueDate bool, start, ref string, near int) bool {
			rule := domain.RecurrenceRule{Initial: domain.Days(120), Repeat: domain.Days(365), NearWindowDays: near}
			ob := domain.TrackedObligation{
				Eligibility: domain.Eligibility{Waived: waived, IsNewEntrant: newEntrant, StartDate: start},
				Recurrence:  &rule,
				Chain:       domain.ReferenceDateChain{{Tag: domain.SourceTrainingDate, Raw: ref, IsDueDate: dueDate}},
			}
			got := classifier.Classify(ob, propertyNow)
			if !got.State.IsValid() {
				return false
			}
			if got.State == domain.StateNeverTrained && got.AsOfDays > 0 {
				return false
			}
			return !waived || got.State == domain.StateWaived
		},
		gen.Bool(), gen.Bool(), gen.Bool(), dateGen, dateGen, gen.IntRange(0, 60),
	))

	properties.TestingRun(t)
}

var onboardingRank = map[domain.ComplianceState]int{
	domain.StatePending: 0,
	domain.StateNearDue: 1,
	domain.StateOverdue: 2,
}

// TestMonotonicOverdue verifies that as now advances with a fixed start
// date, AsOfDays strictly decreases and the onboarding state only moves
// pending, near_due, overdue.
func TestMonotonicOverdue(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	classifier := NewClassifier(nil)

	properties.Property("AsOfDays decreases and state never moves backwards", prop.ForAll(
		func(hiredDaysAgo, stepHours int, steps int) bool {
			ob := trainingObligation(domain.Eligibility{
				IsNewEntrant: true,
				StartDate:    propertyNow.AddDate(0, 0, -hiredDaysAgo).Format("2006-01-02"),
			})

			prev := classifier.Classify(ob, propertyNow)
			now := propertyNow
			for i := 0; i < steps; i++ {
				now = now.Add(time.Duration(stepHours) * 24 * time.Hour)
				next := classifier.Classify(ob, now)
				if next.AsOfDays >= prev.AsOfDays {
					return false
				}
				if onboardingRank[next.State] < onboardingRank[prev.State] {
					return false
				}
				prev = next
			}
			return true
		},
		gen.IntRange(0, 200), gen.IntRange(1, 15), gen.IntRange(1, 20),
	))

	properties.TestingRun(t)
}

// TestIdempotentEmission verifies that feeding an emission back in never
// yields two unread records with the same key, and that a read record
// does not block a fresh one.
func TestIdempotentEmission(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	dedup := NewDeduplicator(sequentialIDs())

	properties.Property("emit twice yields at most one unread per key", prop.ForAll(
		func(entity string, acknowledged int) bool {
			candidate := stockCandidate(entity)
			var set []domain.NotificationRecord
			for i := 0; i < acknowledged; i++ {
				set = append(set, domain.NotificationRecord{StableKey: candidate.StableKey, IsRead: true})
			}

			first, ok := dedup.Emit(candidate, set, propertyNow)
			if !ok {
				return false
			}
			set = append([]domain.NotificationRecord{first}, set...)

			if _, again := dedup.Emit(candidate, set, propertyNow); again {
				return false
			}

			unread := 0
			for _, rec := range set {
				if rec.StableKey == candidate.StableKey && !rec.IsRead {
					unread++
				}
			}
			return unread == 1
		},
		gen.Identifier(), gen.IntRange(0, 5),
	))

	properties.Property("EmitAll is idempotent over repeated passes", prop.ForAll(
		func(entities []string) bool {
			candidates := make([]domain.AlertCandidate, 0, len(entities))
			for _, e := range entities {
				candidates = append(candidates, stockCandidate(e))
			}
			once, _ := dedup.EmitAll(candidates, nil, propertyNow)
			twice, emitted := dedup.EmitAll(candidates, once, propertyNow.Add(time.Hour))
			if len(emitted) != 0 || len(twice) != len(once) {
				return false
			}
			seen := make(map[string]bool)
			for _, rec := range twice {
				if seen[rec.StableKey] {
					return false
				}
				seen[rec.StableKey] = true
			}
			return true
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.TestingRun(t)
}

// TestBoundedRetention verifies Bound keeps exactly max records, all of
// them among the newest by CreatedAt, as a subsequence of the input.
func TestBoundedRetention(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("bound keeps the newest max records", prop.ForAll(
		func(offsets []int, extra int) bool {
			maxSize := DefaultRetentionLimit
			size := maxSize + extra + 1
			set := make([]domain.NotificationRecord, 0, size)
			for i := 0; i < size; i++ {
				offset := i
				if i < len(offsets) {
					offset = offsets[i]
				}
				set = append(set, domain.NotificationRecord{
					ID:        strconv.Itoa(i),
					CreatedAt: propertyNow.Add(time.Duration(offset) * time.Minute),
				})
			}

			got := Bound(set, maxSize)
			if len(got) != maxSize {
				return false
			}

			sorted := slices.Clone(set)
			slices.SortFunc(sorted, func(a, b domain.NotificationRecord) int {
				return b.CreatedAt.Compare(a.CreatedAt)
			})
			threshold := sorted[maxSize-1].CreatedAt

			newer := 0
			for _, rec := range set {
				if rec.CreatedAt.After(threshold) {
					newer++
				}
			}

			keptNewer, last := 0, -1
			for _, rec := range got {
				if rec.CreatedAt.Before(threshold) {
					return false
				}
				if rec.CreatedAt.After(threshold) {
					keptNewer++
				}
				idx, _ := strconv.Atoi(rec.ID)
				if idx <= last {
					return false
				}
				last = idx
			}
			return keptNewer == newer
		},
		gen.SliceOf(gen.IntRange(-10000, 10000)), gen.IntRange(0, 40),
	))

	properties.TestingRun(t)
}
