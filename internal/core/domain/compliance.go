package domain

import "time"

// ComplianceState is the single classification of an obligation.
type ComplianceState string

// The eight compliance states.
const (
	StateCompleted      ComplianceState = "completed"
	StateRefreshNear    ComplianceState = "refresh_near"
	StateRefreshOverdue ComplianceState = "refresh_overdue"
	StateNearDue        ComplianceState = "near_due"
	StateOverdue        ComplianceState = "overdue"
	StateNeverTrained   ComplianceState = "never_trained"
	StatePending        ComplianceState = "pending"
	StateWaived         ComplianceState = "waived"
)

// AllComplianceStates lists every state in a fixed order.
func AllComplianceStates() []ComplianceState {
	return []ComplianceState{
		StateCompleted, StateRefreshNear, StateRefreshOverdue, StateNearDue,
		StateOverdue, StateNeverTrained, StatePending, StateWaived,
	}
}

// IsValid returns true if the state is one of the eight defined states.
func (s ComplianceState) IsValid() bool {
	switch s {
	case StateCompleted, StateRefreshNear, StateRefreshOverdue, StateNearDue,
		StateOverdue, StateNeverTrained, StatePending, StateWaived:
		return true
	default:
		return false
	}
}

// IsViolation reports states where the obligation is already missed.
func (s ComplianceState) IsViolation() bool {
	return s == StateRefreshOverdue || s == StateOverdue || s == StateNeverTrained
}

// NeedsAttention reports states that should raise an alert.
func (s ComplianceState) NeedsAttention() bool {
	return s.IsViolation() || s == StateRefreshNear || s == StateNearDue
}

// String returns the string representation.
func (s ComplianceState) String() string {
	return string(s)
}

// Classification is the classifier output for one obligation.
type Classification struct {
	Obligation TrackedObligation
	State      ComplianceState

	// AsOfDays is the signed day offset to the due date: negative means
	// overdue by that many days, positive means days remaining.
	AsOfDays int

	// DueDate is the computed due date; zero for waived obligations and
	// for never_trained obligations without a start date.
	DueDate time.Time

	// ReferenceDate is the resolved reference date, nil when none was found.
	ReferenceDate *NormalizedDate

	// Source names the chain entry ReferenceDate came from.
	Source SourceTag
}

// OverdueDays returns the overdue magnitude, 0 when not overdue.
func (c Classification) OverdueDays() int {
	if c.AsOfDays >= 0 {
		return 0
	}
	return -c.AsOfDays
}

// DisplayDays renders |AsOfDays| capped at dayCap.
func (c Classification) DisplayDays(dayCap int) string {
	return FormatDayCount(c.AsOfDays, dayCap)
}
