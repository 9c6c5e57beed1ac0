package domain

import (
	"fmt"
	"time"
)

// EstimateLineItem is a single priced unit of work. LineItemTotal is always
// the sum of the three cost components; use Recalculate after mutating any
// of them.
type EstimateLineItem struct {
	ID              string
	Description     string
	Quantity        float64
	Unit            string // sf, lf, cy, ea, ...
	MaterialCost    float64
	LaborCost       float64
	EquipmentCost   float64
	LineItemTotal   float64
	ConfidenceScore float64 // [0,1]
	WasteFactor     float64 // fractional over-purchase allowance
	LaborHours      float64
	RiskFactors     []string
}

// Recalculate restores the LineItemTotal invariant.
func (li *EstimateLineItem) Recalculate() {
	li.LineItemTotal = li.MaterialCost + li.LaborCost + li.EquipmentCost
}

// Clone returns a deep copy, including the risk factor slice.
func (li EstimateLineItem) Clone() EstimateLineItem {
	out := li
	if li.RiskFactors != nil {
		out.RiskFactors = make([]string, len(li.RiskFactors))
		copy(out.RiskFactors, li.RiskFactors)
	}
	return out
}

// EstimateStatus is the lifecycle state of a complete estimate.
type EstimateStatus string

const (
	StatusDraft    EstimateStatus = "draft"
	StatusReview   EstimateStatus = "review"
	StatusApproved EstimateStatus = "approved"
	StatusSent     EstimateStatus = "sent"
	StatusAccepted EstimateStatus = "accepted"
	StatusRejected EstimateStatus = "rejected"
)

var statusTransitions = map[EstimateStatus][]EstimateStatus{
	StatusDraft:    {StatusReview},
	StatusReview:   {StatusApproved, StatusDraft},
	StatusApproved: {StatusSent, StatusDraft},
	StatusSent:     {StatusAccepted, StatusRejected},
}

// CanTransition reports whether moving from the current status to next is a
// legal lifecycle step.
func (s EstimateStatus) CanTransition(next EstimateStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CompleteEstimate aggregates everything a compilation produces. Alternates
// reference their base scope by ID so the structure serializes acyclically.
type CompleteEstimate struct {
	ID              string
	Project         ProjectSummary
	Phases          []WorkPhase
	CostSummary     CostSummary
	Quality         *QualityMetrics
	Recommendations []Recommendation
	Alternatives    []AlternativeEstimate
	Version         int
	Status          EstimateStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Transition advances the estimate lifecycle and bumps the version.
func (e *CompleteEstimate) Transition(next EstimateStatus, now time.Time) error {
	if !e.Status.CanTransition(next) {
		return fmt.Errorf("illegal status transition %s -> %s", e.Status, next)
	}
	e.Status = next
	e.Version++
	e.UpdatedAt = now
	return nil
}
