// Package phase groups priced line items into sequenced, risk-scored work
// phases.
package phase

import (
	"fmt"
	"sort"

	"github.com/leano777/bidflow/pkg/ids"
	"github.com/leano777/bidflow/pkg/models/domain"
	"github.com/leano777/bidflow/pkg/services/classify"
)

// canonicalPhase is one row of the static category→phase table.
type canonicalPhase struct {
	Name               string
	SequenceOrder      int
	Prerequisites      []string
	PermitRequired     bool
	InspectionRequired bool
	TypicalCrewSize    float64
	SystemsHeavy       bool
}

// canonicalPhases is the fixed construction sequence. Prerequisites always
// point at earlier rows.
var canonicalPhases = []canonicalPhase{
	{Name: "Site Preparation", SequenceOrder: 1, TypicalCrewSize: 3},
	{Name: "Foundation", SequenceOrder: 2, Prerequisites: []string{"Site Preparation"}, PermitRequired: true, InspectionRequired: true, TypicalCrewSize: 4},
	{Name: "Framing", SequenceOrder: 3, Prerequisites: []string{"Foundation"}, PermitRequired: true, InspectionRequired: true, TypicalCrewSize: 5},
	{Name: "Roofing", SequenceOrder: 4, Prerequisites: []string{"Framing"}, InspectionRequired: true, TypicalCrewSize: 4},
	{Name: "Systems", SequenceOrder: 5, Prerequisites: []string{"Framing"}, PermitRequired: true, InspectionRequired: true, TypicalCrewSize: 4, SystemsHeavy: true},
	{Name: "Interior", SequenceOrder: 6, Prerequisites: []string{"Systems"}, TypicalCrewSize: 4},
	{Name: "Exterior", SequenceOrder: 7, Prerequisites: []string{"Roofing"}, TypicalCrewSize: 3},
	{Name: "Closeout", SequenceOrder: 8, Prerequisites: []string{"Interior", "Exterior"}, InspectionRequired: true, TypicalCrewSize: 2},
}

// categoryToPhase routes classifier categories into the canonical sequence.
var categoryToPhase = map[string]string{
	"demolition": "Site Preparation",
	"excavation": "Site Preparation",
	"concrete":   "Foundation",
	"framing":    "Framing",
	"roofing":    "Roofing",
	"electrical": "Systems",
	"plumbing":   "Systems",
	"hvac":       "Systems",
	"insulation": "Interior",
	"drywall":    "Interior",
	"flooring":   "Interior",
	"painting":   "Interior",
	"finish":     "Interior",
	"exterior":   "Exterior",
	"cleanup":    "Closeout",
	"general":    "Interior",
}

// Settings contains the tunable thresholds for phase organization.
type Settings struct {
	// WorkHoursPerDay is the crew working day used for duration estimates.
	WorkHoursPerDay float64
	// SystemsBuffer is the fractional duration buffer for systems-heavy
	// phases (0.10 to 0.20 is typical).
	SystemsBuffer float64
	// LowConfidence and MediumConfidence are the average-confidence
	// thresholds below which a phase is graded high/medium risk.
	LowConfidence    float64
	MediumConfidence float64
	// HighRiskDensity is the risk-factors-per-item density above which a
	// phase is graded high risk.
	HighRiskDensity float64
}

// DefaultSettings returns the standard organizer thresholds.
func DefaultSettings() Settings {
	return Settings{
		WorkHoursPerDay:  8,
		SystemsBuffer:    0.15,
		LowConfidence:    0.6,
		MediumConfidence: 0.75,
		HighRiskDensity:  1.0,
	}
}

// Organizer maps priced line items onto the canonical phase sequence.
type Organizer struct {
	classifier classify.Classifier
	ids        ids.Provider
	settings   Settings
}

// NewOrganizer builds an organizer with the given classifier and id source.
func NewOrganizer(classifier classify.Classifier, provider ids.Provider, settings Settings) *Organizer {
	return &Organizer{classifier: classifier, ids: provider, settings: settings}
}

// Organize groups items into phases, computes totals, durations, risk
// grades and permit flags. Phases come back sorted by sequence order; empty
// phases are omitted.
func (o *Organizer) Organize(items []domain.EstimateLineItem) []domain.WorkPhase {
	grouped := map[string][]domain.EstimateLineItem{}
	for _, item := range items {
		result := o.classifier.Classify(item.Description)
		phaseName, ok := categoryToPhase[result.Category]
		if !ok {
			phaseName = categoryToPhase[classify.DefaultCategory]
		}
		grouped[phaseName] = append(grouped[phaseName], item.Clone())
	}

	var phases []domain.WorkPhase
	for _, cp := range canonicalPhases {
		phaseItems, ok := grouped[cp.Name]
		if !ok {
			continue
		}
		p := domain.WorkPhase{
			ID:                 o.ids.NewID("phase"),
			Name:               cp.Name,
			Category:           cp.Name,
			SequenceOrder:      cp.SequenceOrder,
			Items:              phaseItems,
			Prerequisites:      presentPrerequisites(cp, grouped),
			PermitRequired:     cp.PermitRequired,
			InspectionRequired: cp.InspectionRequired,
		}
		p.Recalculate()
		p.DurationDays = o.estimateDuration(p, cp)
		p.RiskLevel = o.gradeRisk(p)
		phases = append(phases, p)
	}

	sort.SliceStable(phases, func(i, j int) bool {
		return phases[i].SequenceOrder < phases[j].SequenceOrder
	})
	return phases
}

// presentPrerequisites drops prerequisites whose phase has no items in this
// breakdown, so a slab-only job does not depend on absent phases.
func presentPrerequisites(cp canonicalPhase, grouped map[string][]domain.EstimateLineItem) []string {
	var prereqs []string
	for _, pre := range cp.Prerequisites {
		if _, ok := grouped[pre]; ok {
			prereqs = append(prereqs, pre)
		}
	}
	return prereqs
}

func (o *Organizer) estimateDuration(p domain.WorkPhase, cp canonicalPhase) float64 {
	crew := cp.TypicalCrewSize
	if crew <= 0 {
		crew = 2
	}
	days := p.LaborHours() / (crew * o.settings.WorkHoursPerDay)
	if days < 1 {
		days = 1
	}
	if cp.SystemsHeavy {
		days *= 1 + o.settings.SystemsBuffer
	}
	return days
}

func (o *Organizer) gradeRisk(p domain.WorkPhase) domain.RiskLevel {
	if len(p.Items) == 0 {
		return domain.RiskMedium
	}
	confSum := 0.0
	riskFactors := 0
	for _, it := range p.Items {
		confSum += it.ConfidenceScore
		riskFactors += len(it.RiskFactors)
	}
	avgConf := confSum / float64(len(p.Items))
	density := float64(riskFactors) / float64(len(p.Items))

	switch {
	case avgConf < o.settings.LowConfidence || density > o.settings.HighRiskDensity:
		return domain.RiskHigh
	case avgConf < o.settings.MediumConfidence || density > o.settings.HighRiskDensity/2:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

// ValidateSequencing checks that every phase's prerequisites exist in the
// breakdown and sit strictly earlier in sequence order. Issues come back as
// a list; an empty list means the sequencing is sound.
func (o *Organizer) ValidateSequencing(phases []domain.WorkPhase) []string {
	bySeq := map[string]int{}
	for _, p := range phases {
		bySeq[p.Name] = p.SequenceOrder
	}

	var issues []string
	for _, p := range phases {
		for _, pre := range p.Prerequisites {
			seq, ok := bySeq[pre]
			if !ok {
				issues = append(issues, fmt.Sprintf("phase %q requires %q which is not in the breakdown", p.Name, pre))
				continue
			}
			if seq >= p.SequenceOrder {
				issues = append(issues, fmt.Sprintf("phase %q requires %q but it is not sequenced earlier (%d >= %d)", p.Name, pre, seq, p.SequenceOrder))
			}
		}
	}
	return issues
}
