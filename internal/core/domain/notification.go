package domain

import (
	"strings"
	"time"
)

// Severity is the urgency of an alert.
type Severity string

// Available severities.
const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// IsValid returns true if the severity is recognised.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityDanger:
		return true
	default:
		return false
	}
}

// Condition kinds used in stable keys outside the compliance states.
const (
	ConditionOutOfStock  = "out_of_stock"
	ConditionLowStock    = "low_stock"
	ConditionLongRunning = "long_running"
)

// StableKey identifies an unresolved condition independently of time.
// The same condition always yields the same key across passes.
func StableKey(obligationType ObligationType, entityID, conditionKind string) string {
	return strings.Join([]string{string(obligationType), entityID, conditionKind}, ":")
}

// AlertCandidate is an alert the orchestrator proposes for emission.
type AlertCandidate struct {
	StableKey      string
	ObligationType ObligationType
	EntityID       string
	Severity       Severity
	Message        string
	LinkTarget     string
}

// NotificationRecord is a persisted alert.
// The engine creates records but never mutates them afterwards.
type NotificationRecord struct {
	ID             string    `json:"id"`
	StableKey      string    `json:"stable_key"`
	ObligationType string    `json:"obligation_type,omitempty"`
	EntityID       string    `json:"entity_id,omitempty"`
	Message        string    `json:"message"`
	Severity       Severity  `json:"severity"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
	LinkTarget     string    `json:"link_target,omitempty"`
}

// IsActive reports whether the record still suppresses re-emission.
func (r NotificationRecord) IsActive() bool {
	return !r.IsRead
}
