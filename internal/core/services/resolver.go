package services

import (
	"strings"
	"time"

	"github.com/custodia-labs/fleetwatch/internal/core/domain"
)

// ResolvedFact is a reference date together with the chain entry it came from.
type ResolvedFact struct {
	Date   domain.NormalizedDate
	Source domain.ReferenceSource
}

// FactResolver picks the reference date for an obligation.
type FactResolver struct {
	parser domain.DateParser
}

// NewFactResolver creates a resolver that reads zone-less dates in loc.
// A nil loc means UTC.
func NewFactResolver(loc *time.Location) *FactResolver {
	return &FactResolver{parser: domain.DateParser{Location: loc}}
}

// Resolve walks the obligation's chain in order and returns the first
// source with a parseable date. The boolean is false when no source
// yields one; that is an expected outcome, not a failure.
func (r *FactResolver) Resolve(obligation domain.TrackedObligation) (ResolvedFact, bool) {
	for _, src := range obligation.Chain {
		if strings.TrimSpace(src.Raw) == "" {
			continue
		}
		date, err := r.parser.Parse(src.Raw)
		if err != nil {
			continue
		}
		return ResolvedFact{Date: date, Source: src}, true
	}
	return ResolvedFact{}, false
}

// ParseOptional parses raw, returning false for empty or bad input.
func (r *FactResolver) ParseOptional(raw string) (domain.NormalizedDate, bool) {
	date, err := r.parser.Parse(raw)
	if err != nil {
		return domain.NormalizedDate{}, false
	}
	return date, true
}

// MatchStrategy reports whether a training record belongs to a topic.
type MatchStrategy struct {
	Name  string
	Match func(rec domain.TrainingRecord) bool
}

// TopicMatcher locates history records for one training topic.
type TopicMatcher struct {
	Code    string
	Aliases []string
	Label   string
}

// NewTopicMatcher builds a matcher from training settings.
func NewTopicMatcher(cfg domain.TrainingSettings) TopicMatcher {
	return TopicMatcher{
		Code:    cfg.TopicCode,
		Aliases: cfg.TopicAliases,
		Label:   cfg.TopicLabel,
	}
}

// Strategies returns the match strategies in priority order:
// exact code, then known aliases, then a case-insensitive label substring.
func (m TopicMatcher) Strategies() []MatchStrategy {
	code := strings.TrimSpace(m.Code)
	label := strings.ToLower(strings.TrimSpace(m.Label))

	aliases := make(map[string]struct{}, len(m.Aliases))
	for _, a := range m.Aliases {
		if a = strings.ToUpper(strings.TrimSpace(a)); a != "" {
			aliases[a] = struct{}{}
		}
	}

	return []MatchStrategy{
		{
			Name: "code",
			Match: func(rec domain.TrainingRecord) bool {
				return code != "" && strings.TrimSpace(rec.TopicCode) == code
			},
		},
		{
			Name: "alias",
			Match: func(rec domain.TrainingRecord) bool {
				_, ok := aliases[strings.ToUpper(strings.TrimSpace(rec.TopicCode))]
				return ok
			},
		},
		{
			Name: "label",
			Match: func(rec domain.TrainingRecord) bool {
				return label != "" && strings.Contains(strings.ToLower(rec.TopicLabel), label)
			},
		},
	}
}

// Match returns the records hit by the first strategy that hits anything.
// Records whose date is blank or unparseable are ignored, so they can
// neither win the latest-date comparison nor stop a later strategy.
func (m TopicMatcher) Match(records []domain.TrainingRecord) []domain.TrainingRecord {
	dated := make([]domain.TrainingRecord, 0, len(records))
	for _, rec := range records {
		if _, err := domain.ParseDate(rec.Date); err == nil {
			dated = append(dated, rec)
		}
	}

	for _, strategy := range m.Strategies() {
		var hits []domain.TrainingRecord
		for _, rec := range dated {
			if strategy.Match(rec) {
				hits = append(hits, rec)
			}
		}
		if len(hits) > 0 {
			return hits
		}
	}
	return nil
}

// LatestRecord returns the matching record with the greatest date string.
// Ties keep the earliest record in snapshot order.
func (m TopicMatcher) LatestRecord(records []domain.TrainingRecord) (domain.TrainingRecord, bool) {
	hits := m.Match(records)
	if len(hits) == 0 {
		return domain.TrainingRecord{}, false
	}
	best := hits[0]
	for _, rec := range hits[1:] {
		if strings.TrimSpace(rec.Date) > strings.TrimSpace(best.Date) {
			best = rec
		}
	}
	return best, true
}
