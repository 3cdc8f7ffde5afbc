package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/fleetwatch/internal/core/domain"
	"github.com/custodia-labs/fleetwatch/internal/logger"
)

// Orchestrator turns a snapshot into alert candidates.
// Output depends only on the snapshot, the settings and now.
type Orchestrator struct {
	settings   domain.EngineSettings
	resolver   *FactResolver
	classifier *Classifier
	topic      TopicMatcher
}

// NewOrchestrator creates an orchestrator for settings.
func NewOrchestrator(settings domain.EngineSettings) *Orchestrator {
	resolver := NewFactResolver(settings.Location())
	return &Orchestrator{
		settings:   settings,
		resolver:   resolver,
		classifier: NewClassifier(resolver),
		topic:      NewTopicMatcher(settings.Training),
	}
}

// Evaluate produces candidates for stock, maintenance, repair and
// training, in that order.
func (o *Orchestrator) Evaluate(snapshot *domain.Snapshot, now time.Time) []domain.AlertCandidate {
	if snapshot == nil {
		return nil
	}
	var out []domain.AlertCandidate
	out = append(out, o.stockCandidates(snapshot)...)
	out = append(out, o.maintenanceCandidates(snapshot, now)...)
	out = append(out, o.repairCandidates(snapshot, now)...)
	out = append(out, o.trainingCandidates(snapshot, now)...)
	return out
}

// Report classifies every date-based obligation: drivers first, then
// maintenance plans.
func (o *Orchestrator) Report(snapshot *domain.Snapshot, now time.Time) []domain.Classification {
	if snapshot == nil {
		return nil
	}
	obligations := o.Obligations(snapshot)
	out := make([]domain.Classification, 0, len(obligations))
	for _, ob := range obligations {
		out = append(out, o.classifier.Classify(ob, now))
	}
	return out
}

// Obligations builds the tracked training and maintenance obligations.
func (o *Orchestrator) Obligations(snapshot *domain.Snapshot) []domain.TrackedObligation {
	out := make([]domain.TrackedObligation, 0, len(snapshot.Drivers)+len(snapshot.MaintenancePlans))
	for _, d := range snapshot.Drivers {
		out = append(out, o.TrainingObligation(snapshot, d))
	}
	for _, p := range snapshot.MaintenancePlans {
		out = append(out, o.MaintenanceObligation(snapshot, p))
	}
	return out
}

// TrainingObligation builds a driver's defensive-driving obligation.
// Chain: training_date, training_start_date, then the latest matching
// history record.
func (o *Orchestrator) TrainingObligation(snapshot *domain.Snapshot, d domain.Driver) domain.TrackedObligation {
	rule := o.settings.Training.Rule()

	chain := domain.ReferenceDateChain{
		{Tag: domain.SourceTrainingDate, Raw: d.TrainingDate},
		{Tag: domain.SourceTrainingStartDate, Raw: d.TrainingStartDate},
	}
	if rec, ok := o.topic.LatestRecord(snapshot.TrainingRecordsFor(d.ID)); ok {
		chain = append(chain, domain.ReferenceSource{Tag: domain.SourceTrainingHistory, Raw: rec.Date})
	}

	return domain.TrackedObligation{
		EntityID: d.ID,
		Type:     domain.ObligationTraining,
		Label:    driverLabel(d),
		Eligibility: domain.Eligibility{
			Waived:       !d.Active,
			IsNewEntrant: d.NewHire,
			StartDate:    d.HireDate,
		},
		Recurrence: &rule,
		Chain:      chain,
	}
}

// MaintenanceObligation builds a plan's due-date obligation.
// Chain: next_due_date (already a due date), last_service_date, then the
// latest completed repair on the vehicle naming the plan.
func (o *Orchestrator) MaintenanceObligation(snapshot *domain.Snapshot, p domain.MaintenancePlan) domain.TrackedObligation {
	rule := domain.RecurrenceRule{
		Repeat:         p.Interval(),
		NearWindowDays: o.settings.Maintenance.WarningDays,
	}

	chain := domain.ReferenceDateChain{
		{Tag: domain.SourceNextDueDate, Raw: p.NextDueDate, IsDueDate: true},
		{Tag: domain.SourceLastServiceDate, Raw: p.LastServiceDate},
	}
	if raw := latestPlanRepair(snapshot, p); raw != "" {
		chain = append(chain, domain.ReferenceSource{Tag: domain.SourceRepairHistory, Raw: raw})
	}

	// Unknown vehicles are evaluated rather than waived.
	vehicle, known := snapshot.VehicleByID(p.VehicleID)
	return domain.TrackedObligation{
		EntityID:    p.ID,
		Type:        domain.ObligationMaintenance,
		Label:       planLabel(p, vehicle),
		Eligibility: domain.Eligibility{Waived: known && !vehicle.Active},
		Recurrence:  &rule,
		Chain:       chain,
	}
}

func (o *Orchestrator) stockCandidates(snapshot *domain.Snapshot) []domain.AlertCandidate {
	var out []domain.AlertCandidate
	for i, item := range snapshot.StockItems {
		id := entityID(strings.TrimSpace(item.ID), strings.TrimSpace(item.Code))
		if id == "" {
			// No stable key to deduplicate on.
			logger.Debug("Skipping stock item %d without id or code", i)
			continue
		}

		var (
			condition string
			severity  domain.Severity
			message   string
		)
		switch {
		case item.Quantity <= 0:
			condition = domain.ConditionOutOfStock
			severity = domain.SeverityDanger
			message = fmt.Sprintf("Out of stock: %s %s", item.Code, item.Name)
		case item.Quantity <= item.MinStock:
			condition = domain.ConditionLowStock
			severity = domain.SeverityWarning
			message = fmt.Sprintf("Low stock: %s %s (%s of minimum %s%s)",
				item.Code, item.Name, formatQuantity(item.Quantity), formatQuantity(item.MinStock), unitSuffix(item.Unit))
		default:
			continue
		}
		out = append(out, domain.AlertCandidate{
			StableKey:      domain.StableKey(domain.ObligationStockReorder, id, condition),
			ObligationType: domain.ObligationStockReorder,
			EntityID:       id,
			Severity:       severity,
			Message:        strings.TrimSpace(message),
			LinkTarget:     "/stock/" + id,
		})
	}
	return out
}

func (o *Orchestrator) maintenanceCandidates(snapshot *domain.Snapshot, now time.Time) []domain.AlertCandidate {
	var out []domain.AlertCandidate
	for _, p := range snapshot.MaintenancePlans {
		c := o.classifier.Classify(o.MaintenanceObligation(snapshot, p), now)

		var (
			severity domain.Severity
			message  string
		)
		switch c.State {
		case domain.StateRefreshOverdue:
			severity = domain.SeverityDanger
			message = fmt.Sprintf("Maintenance overdue: %s, %s days late", c.Obligation.Label, c.DisplayDays(o.dayCap()))
		case domain.StateRefreshNear:
			severity = domain.SeverityWarning
			message = fmt.Sprintf("Maintenance due soon: %s, in %s days", c.Obligation.Label, c.DisplayDays(o.dayCap()))
		case domain.StateNeverTrained:
			severity = domain.SeverityWarning
			message = fmt.Sprintf("Maintenance never recorded: %s", c.Obligation.Label)
		default:
			continue
		}
		out = append(out, candidateFor(c, severity, message, "/maintenance/"+p.ID))
	}
	return out
}

func (o *Orchestrator) repairCandidates(snapshot *domain.Snapshot, now time.Time) []domain.AlertCandidate {
	limit := time.Duration(o.settings.Repair.MaxInProgressDays) * 24 * time.Hour

	var out []domain.AlertCandidate
	for _, r := range snapshot.Repairs {
		if r.Status != domain.RepairInProgress {
			continue
		}
		fact, ok := o.resolver.Resolve(domain.TrackedObligation{Chain: domain.ReferenceDateChain{
			{Tag: domain.SourceRepairStartDate, Raw: r.StartDate},
			{Tag: domain.SourceRepairReported, Raw: r.ReportedDate},
		}})
		if !ok || now.Sub(fact.Date.Instant) <= limit {
			continue
		}

		days := -domain.DaysUntil(fact.Date.Instant, now)
		subject := r.ID
		if v, known := snapshot.VehicleByID(r.VehicleID); known && v.Plate != "" {
			subject = r.ID + " on " + v.Plate
		}
		out = append(out, domain.AlertCandidate{
			StableKey:      domain.StableKey(domain.ObligationRepairDuration, r.ID, domain.ConditionLongRunning),
			ObligationType: domain.ObligationRepairDuration,
			EntityID:       r.ID,
			Severity:       domain.SeverityInfo,
			Message: fmt.Sprintf("Repair %s in progress for %s days",
				subject, domain.FormatDayCount(days, o.dayCap())),
			LinkTarget: "/repairs/" + r.ID,
		})
	}
	return out
}

func (o *Orchestrator) trainingCandidates(snapshot *domain.Snapshot, now time.Time) []domain.AlertCandidate {
	var out []domain.AlertCandidate
	for _, d := range snapshot.Drivers {
		c := o.classifier.Classify(o.TrainingObligation(snapshot, d), now)
		if !c.State.NeedsAttention() {
			continue
		}

		severity := domain.SeverityWarning
		if c.State.IsViolation() {
			severity = domain.SeverityDanger
		}

		days := c.DisplayDays(o.dayCap())
		var message string
		switch c.State {
		case domain.StateRefreshOverdue:
			message = fmt.Sprintf("Defensive driving refresh overdue: %s, %s days late", c.Obligation.Label, days)
		case domain.StateRefreshNear:
			message = fmt.Sprintf("Defensive driving refresh due: %s, in %s days", c.Obligation.Label, days)
		case domain.StateOverdue:
			message = fmt.Sprintf("Defensive driving training overdue: %s, %s days late", c.Obligation.Label, days)
		case domain.StateNearDue:
			message = fmt.Sprintf("Defensive driving training due: %s, in %s days", c.Obligation.Label, days)
		default:
			message = fmt.Sprintf("Defensive driving training never recorded: %s", c.Obligation.Label)
		}
		out = append(out, candidateFor(c, severity, message, "/drivers/"+d.ID))
	}
	return out
}

func (o *Orchestrator) dayCap() int {
	if o.settings.DayCap > 0 {
		return o.settings.DayCap
	}
	return domain.DefaultDayCap
}

func candidateFor(c domain.Classification, severity domain.Severity, message, link string) domain.AlertCandidate {
	ob := c.Obligation
	return domain.AlertCandidate{
		StableKey:      domain.StableKey(ob.Type, ob.EntityID, c.State.String()),
		ObligationType: ob.Type,
		EntityID:       ob.EntityID,
		Severity:       severity,
		Message:        message,
		LinkTarget:     link,
	}
}

// latestPlanRepair returns the greatest completion date among completed
// repairs on the plan's vehicle whose problem mentions the plan name.
func latestPlanRepair(snapshot *domain.Snapshot, p domain.MaintenancePlan) string {
	name := strings.ToLower(strings.TrimSpace(p.Name))
	if name == "" {
		return ""
	}
	var latest string
	for _, r := range snapshot.Repairs {
		if r.VehicleID != p.VehicleID || r.Status != domain.RepairCompleted {
			continue
		}
		if !strings.Contains(strings.ToLower(r.Problem), name) {
			continue
		}
		if date := strings.TrimSpace(r.CompletedDate); date > latest {
			latest = date
		}
	}
	return latest
}

func driverLabel(d domain.Driver) string {
	name := strings.TrimSpace(d.Name)
	switch {
	case name == "" && d.Code == "":
		return d.ID
	case name == "":
		return d.Code
	case d.Code == "":
		return name
	default:
		return name + " (" + d.Code + ")"
	}
}

func planLabel(p domain.MaintenancePlan, v domain.Vehicle) string {
	subject := v.Plate
	if subject == "" {
		subject = p.VehicleID
	}
	name := p.Name
	if name == "" {
		name = p.ID
	}
	if subject == "" {
		return name
	}
	return subject + " " + name
}

func entityID(id, fallback string) string {
	if id != "" {
		return id
	}
	return fallback
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func unitSuffix(unit string) string {
	if unit == "" {
		return ""
	}
	return " " + unit
}
