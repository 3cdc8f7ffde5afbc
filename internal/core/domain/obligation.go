package domain

import "time"

// ObligationType identifies the kind of tracked obligation.
type ObligationType string

// Available obligation types.
const (
	// ObligationTraining is a driver's defensive-driving certification.
	ObligationTraining ObligationType = "training_compliance"

	// ObligationMaintenance is a vehicle's preventive-maintenance plan.
	ObligationMaintenance ObligationType = "maintenance_due"

	// ObligationStockReorder is a stock item's reorder threshold.
	ObligationStockReorder ObligationType = "stock_reorder"

	// ObligationRepairDuration is the elapsed time of an open repair.
	ObligationRepairDuration ObligationType = "repair_duration"
)

// IsValid returns true if the obligation type is recognised.
func (t ObligationType) IsValid() bool {
	switch t {
	case ObligationTraining, ObligationMaintenance, ObligationStockReorder, ObligationRepairDuration:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t ObligationType) String() string {
	return string(t)
}

// IntervalUnit is the calendar unit of an Interval.
type IntervalUnit string

// Interval units.
const (
	UnitDay   IntervalUnit = "day"
	UnitMonth IntervalUnit = "month"
	UnitYear  IntervalUnit = "year"
)

// Interval is a calendar length such as 120 days or 6 months.
type Interval struct {
	Length int
	Unit   IntervalUnit
}

// Days returns an Interval of n days.
func Days(n int) Interval {
	return Interval{Length: n, Unit: UnitDay}
}

// Months returns an Interval of n months.
func Months(n int) Interval {
	return Interval{Length: n, Unit: UnitMonth}
}

// IsZero reports whether the interval adds nothing.
func (i Interval) IsZero() bool {
	return i.Length == 0
}

// AddTo returns t shifted forward by the interval.
// Unknown units are treated as days.
func (i Interval) AddTo(t time.Time) time.Time {
	switch i.Unit {
	case UnitMonth:
		return t.AddDate(0, i.Length, 0)
	case UnitYear:
		return t.AddDate(i.Length, 0, 0)
	default:
		return t.AddDate(0, 0, i.Length)
	}
}

// RecurrenceRule describes when an obligation falls due.
type RecurrenceRule struct {
	// Initial is the onboarding window measured from the eligibility start
	// date, used when no reference date exists (e.g. 120 days after hire).
	Initial Interval

	// Repeat is added to the reference date to get the next due date
	// (e.g. 365 days after the last training).
	Repeat Interval

	// NearWindowDays is how many days before the due date the obligation
	// counts as "near".
	NearWindowDays int
}

// Eligibility holds the type-specific flags that gate classification.
type Eligibility struct {
	// Waived short-circuits classification (inactive driver or vehicle).
	Waived bool

	// IsNewEntrant marks an entity still inside its onboarding window.
	IsNewEntrant bool

	// StartDate is when the obligation nominally began (hire date,
	// commissioning date). May be empty.
	StartDate string
}

// SourceTag names where a reference date came from.
type SourceTag string

// Known source tags.
const (
	SourceNone              SourceTag = ""
	SourceTrainingDate      SourceTag = "training_date"
	SourceTrainingStartDate SourceTag = "training_start_date"
	SourceTrainingHistory   SourceTag = "history"
	SourceNextDueDate       SourceTag = "next_due_date"
	SourceLastServiceDate   SourceTag = "last_service_date"
	SourceRepairHistory     SourceTag = "repair_history"
	SourceRepairStartDate   SourceTag = "start_date"
	SourceRepairReported    SourceTag = "reported_date"
)

// ReferenceSource is one candidate in a ReferenceDateChain.
type ReferenceSource struct {
	Tag SourceTag

	// Raw is the unparsed date text; empty when the source has no value.
	Raw string

	// IsDueDate marks a source that already names the due date, so no
	// recurrence interval is added to it.
	IsDueDate bool
}

// ReferenceDateChain is an ordered list of candidate sources.
// The first source yielding a parseable date wins; sources are never merged.
type ReferenceDateChain []ReferenceSource

// TrackedObligation is an instance of something whose compliance is evaluated.
// It is rebuilt from the snapshot on every pass and never persisted.
type TrackedObligation struct {
	EntityID    string
	Type        ObligationType
	Label       string
	Eligibility Eligibility
	Recurrence  *RecurrenceRule
	Chain       ReferenceDateChain
}
