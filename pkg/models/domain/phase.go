package domain

import "time"

// RiskLevel grades phases, risk factors and warnings.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// WorkPhase is a sequenced grouping of line items representing one stage of
// construction. PhaseTotal is always the sum of its items' totals.
type WorkPhase struct {
	ID                 string
	Name               string
	Category           string
	SequenceOrder      int
	Items              []EstimateLineItem
	PhaseTotal         float64
	DurationDays       float64
	Prerequisites      []string // names of phases that must finish first
	RiskLevel          RiskLevel
	PermitRequired     bool
	InspectionRequired bool

	// Scheduling window, populated only when the phase has been laid out
	// on a calendar. Zero values mean unscheduled.
	StartDate time.Time
	EndDate   time.Time
}

// Recalculate restores the PhaseTotal invariant from the current items.
func (p *WorkPhase) Recalculate() {
	total := 0.0
	for i := range p.Items {
		p.Items[i].Recalculate()
		total += p.Items[i].LineItemTotal
	}
	p.PhaseTotal = total
}

// LaborHours sums labor hours across the phase's items.
func (p WorkPhase) LaborHours() float64 {
	h := 0.0
	for _, it := range p.Items {
		h += it.LaborHours
	}
	return h
}

// Clone returns a structural deep copy; item slices are never shared with the
// source phase.
func (p WorkPhase) Clone() WorkPhase {
	out := p
	out.Items = make([]EstimateLineItem, len(p.Items))
	for i, it := range p.Items {
		out.Items[i] = it.Clone()
	}
	if p.Prerequisites != nil {
		out.Prerequisites = make([]string, len(p.Prerequisites))
		copy(out.Prerequisites, p.Prerequisites)
	}
	return out
}

// ClonePhases deep-copies a phase slice.
func ClonePhases(phases []WorkPhase) []WorkPhase {
	out := make([]WorkPhase, len(phases))
	for i, p := range phases {
		out[i] = p.Clone()
	}
	return out
}
