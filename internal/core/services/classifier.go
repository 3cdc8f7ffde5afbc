package services

import (
	"time"

	"github.com/custodia-labs/fleetwatch/internal/core/domain"
)

// Classifier assigns exactly one ComplianceState to an obligation.
// It never fails: missing or unparseable dates move an obligation into
// the not-found branch instead of raising.
type Classifier struct {
	resolver *FactResolver
}

// NewClassifier creates a classifier backed by resolver.
func NewClassifier(resolver *FactResolver) *Classifier {
	if resolver == nil {
		resolver = NewFactResolver(nil)
	}
	return &Classifier{resolver: resolver}
}

// Classify evaluates obligation at now.
func (c *Classifier) Classify(obligation domain.TrackedObligation, now time.Time) domain.Classification {
	out := domain.Classification{Obligation: obligation}

	if obligation.Eligibility.Waived {
		out.State = domain.StateWaived
		return out
	}

	var rule domain.RecurrenceRule
	if obligation.Recurrence != nil {
		rule = *obligation.Recurrence
	}

	if fact, ok := c.resolver.Resolve(obligation); ok {
		ref := fact.Date
		out.ReferenceDate = &ref
		out.Source = fact.Source.Tag

		due := ref.Instant
		if !fact.Source.IsDueDate {
			due = rule.Repeat.AddTo(ref.Instant)
		}
		out.DueDate = due
		out.AsOfDays = domain.DaysUntil(due, now)
		out.State = windowState(out.AsOfDays, rule.NearWindowDays,
			domain.StateRefreshOverdue, domain.StateRefreshNear, domain.StateCompleted)
		return out
	}

	start, hasStart := c.resolver.ParseOptional(obligation.Eligibility.StartDate)

	if !obligation.Eligibility.IsNewEntrant {
		// Standing violation: AsOfDays is the overdue time since the
		// onboarding window closed, never positive.
		out.State = domain.StateNeverTrained
		if hasStart {
			out.DueDate = rule.Initial.AddTo(start.Instant)
			out.AsOfDays = min(domain.DaysUntil(out.DueDate, now), 0)
		}
		return out
	}

	base := now
	if hasStart {
		base = start.Instant
	}
	out.DueDate = rule.Initial.AddTo(base)
	out.AsOfDays = domain.DaysUntil(out.DueDate, now)
	out.State = windowState(out.AsOfDays, rule.NearWindowDays,
		domain.StateOverdue, domain.StateNearDue, domain.StatePending)
	return out
}

func windowState(asOfDays, nearWindow int, past, near, ahead domain.ComplianceState) domain.ComplianceState {
	switch {
	case asOfDays < 0:
		return past
	case asOfDays <= nearWindow:
		return near
	default:
		return ahead
	}
}
