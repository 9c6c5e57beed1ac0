// Package alternates implements the base/alternate scope-inheritance model.
// A base scope tree is snapshotted once and never mutated; every variation
// is an alternate storing only its modifications and the deltas derived from
// them. Absolute totals for an alternate are always recomputed from
// base+deltas, never stored as independent truth.
package alternates

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/leano777/bidflow/pkg/ids"
	"github.com/leano777/bidflow/pkg/models/domain"
	"github.com/leano777/bidflow/pkg/services/costing"
)

// deltaTolerance is the allowed drift between TotalDeltaCost and the sum of
// its cost deltas.
const deltaTolerance = 0.01

// Repository is the injected store for base trees and alternates. Managers
// never keep package-level maps.
type Repository interface {
	CreateBase(tree domain.BaseScopeTree) error
	Base(id string) (domain.BaseScopeTree, bool)
	CreateAlternate(alt domain.AlternateScope) error
	Alternate(id string) (domain.AlternateScope, bool)
	AlternatesFor(baseID string) []domain.AlternateScope
	DeleteAlternate(id string) bool
}

// Manager creates and prices alternates against immutable base scopes.
type Manager struct {
	repo  Repository
	ids   ids.Provider
	rates costing.Rates
	now   func() time.Time
}

// NewManager builds a manager over the given repository. The rates are the
// ones the base was priced with; alternate recomputation reuses them so
// base and alternate stay on the same indirect pipeline.
func NewManager(repo Repository, provider ids.Provider, rates costing.Rates, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{repo: repo, ids: provider, rates: rates, now: now}
}

// CreateBaseScopeTree snapshots the phases and summary as the immutable
// project baseline. The stored copy shares no slices with the caller's.
func (m *Manager) CreateBaseScopeTree(projectID, name, scopeDescription string, phases []domain.WorkPhase, summary domain.CostSummary) (domain.BaseScopeTree, error) {
	if name == "" {
		return domain.BaseScopeTree{}, fmt.Errorf("base scope tree needs a name")
	}
	tree := domain.BaseScopeTree{
		ID:               m.ids.NewID("base"),
		ProjectID:        projectID,
		Name:             name,
		ScopeDescription: scopeDescription,
		BasePhases:       domain.ClonePhases(phases),
		BaseCostSummary:  summary,
		CreatedAt:        m.now(),
	}
	if err := m.repo.CreateBase(tree); err != nil {
		return domain.BaseScopeTree{}, fmt.Errorf("storing base scope tree: %w", err)
	}
	return tree, nil
}

// AlternatesFor lists a base's alternates in id order.
func (m *Manager) AlternatesFor(baseID string) ([]domain.AlternateScope, error) {
	if _, ok := m.repo.Base(baseID); !ok {
		return nil, fmt.Errorf("base scope tree %q not found", baseID)
	}
	return m.repo.AlternatesFor(baseID), nil
}

// contractFactor is the linear factor translating a direct-cost delta into
// its contract-total effect under the manager's rates.
func (m *Manager) contractFactor() float64 {
	k := 1 + m.rates.OverheadRate + m.rates.GeneralConditionsRate + m.rates.ContingencyRate
	f := k * (1 + m.rates.MarkupRate)
	if m.rates.IncludeBonding {
		f *= 1 + m.rates.BondingRate
	}
	return f
}

// CreateAlternateScope derives an alternate from its base: every
// modification yields cost/time delta records tagged with the source
// modification id, and the rollups are sums of those deltas.
func (m *Manager) CreateAlternateScope(baseID, name, description string, scopeMods []domain.ScopeModification, phaseMods []domain.PhaseModification) (domain.AlternateScope, error) {
	base, ok := m.repo.Base(baseID)
	if !ok {
		return domain.AlternateScope{}, fmt.Errorf("base scope tree %q not found", baseID)
	}

	alt := domain.AlternateScope{
		ID:                 m.ids.NewID("alt"),
		BaseID:             base.ID,
		Name:               name,
		Description:        description,
		ScopeModifications: scopeMods,
		PhaseModifications: phaseMods,
		CreatedAt:          m.now(),
	}

	f := m.contractFactor()
	baseTotals := map[string]float64{}
	baseDurations := map[string]float64{}
	for _, p := range base.BasePhases {
		baseTotals[p.Name] = p.PhaseTotal
		baseDurations[p.Name] = p.DurationDays
	}

	for i := range scopeMods {
		mod := &scopeMods[i]
		if mod.ID == "" {
			mod.ID = m.ids.NewID("mod")
		}
		alt.CostDeltas = append(alt.CostDeltas, deriveCostDelta(mod.Type, mod.TargetPhase, mod.ID,
			baseTotals[mod.TargetPhase]*f, mod.CostImpact*f, mod.Confidence))
		if mod.TimeImpactDays != 0 {
			alt.TimeDeltas = append(alt.TimeDeltas, deriveTimeDelta(mod.Type, mod.TargetPhase, mod.ID,
				baseDurations[mod.TargetPhase], mod.TimeImpactDays, mod.Confidence))
		}
	}

	for i := range phaseMods {
		mod := &phaseMods[i]
		if mod.ID == "" {
			mod.ID = m.ids.NewID("mod")
		}
		impact, timeImpact := phaseModImpact(*mod, baseTotals, baseDurations)
		alt.CostDeltas = append(alt.CostDeltas, deriveCostDelta(mod.Type, mod.PhaseName, mod.ID,
			baseTotals[mod.PhaseName]*f, impact*f, mod.Confidence))
		if timeImpact != 0 {
			alt.TimeDeltas = append(alt.TimeDeltas, deriveTimeDelta(mod.Type, mod.PhaseName, mod.ID,
				baseDurations[mod.PhaseName], timeImpact, mod.Confidence))
		}
	}

	for _, d := range alt.CostDeltas {
		alt.TotalDeltaCost += d.DeltaValue
	}
	for _, d := range alt.TimeDeltas {
		alt.TotalDeltaDays += d.DeltaValue
	}
	if base.BaseCostSummary.ContractTotal > 0 {
		alt.DeltaPercentage = alt.TotalDeltaCost / base.BaseCostSummary.ContractTotal
	}
	alt.QualityLevelDelta, alt.RiskLevelDelta = aggregateOrdinals(scopeMods, phaseMods)

	if err := m.repo.CreateAlternate(alt); err != nil {
		return domain.AlternateScope{}, fmt.Errorf("storing alternate: %w", err)
	}
	return alt, nil
}

// phaseModImpact resolves a phase modification's direct cost and time
// impact, falling back to the new-phase totals where explicit impacts are
// absent.
func phaseModImpact(mod domain.PhaseModification, baseTotals, baseDurations map[string]float64) (cost, days float64) {
	cost, days = mod.CostImpact, mod.TimeImpactDays
	switch mod.Type {
	case domain.ModificationAdd:
		if cost == 0 && mod.NewPhase != nil {
			cost = mod.NewPhase.PhaseTotal
		}
		if days == 0 && mod.NewPhase != nil {
			days = mod.NewPhase.DurationDays
		}
	case domain.ModificationRemove:
		if cost == 0 {
			cost = -baseTotals[mod.PhaseName]
		}
		if days == 0 {
			days = -baseDurations[mod.PhaseName]
		}
	case domain.ModificationReplace:
		if cost == 0 && mod.NewPhase != nil {
			cost = mod.NewPhase.PhaseTotal - baseTotals[mod.PhaseName]
		}
		if days == 0 && mod.NewPhase != nil {
			days = mod.NewPhase.DurationDays - baseDurations[mod.PhaseName]
		}
	}
	return cost, days
}

// deriveCostDelta builds one signed delta record. Percentage is relative to
// the base value; a zero base fixes it at ±100% by policy.
func deriveCostDelta(typ domain.ModificationType, category, sourceID string, baseValue, deltaValue, confidence float64) domain.CostDelta {
	if category == "" {
		category = "scope"
	}
	d := domain.CostDelta{
		Category:             fmt.Sprintf("%s:%s", typ, category),
		BaseValue:            baseValue,
		DeltaValue:           deltaValue,
		NewValue:             baseValue + deltaValue,
		SourceModificationID: sourceID,
		Confidence:           defaultConfidence(confidence),
	}
	switch {
	case baseValue != 0:
		d.DeltaPercentage = deltaValue / baseValue
	case deltaValue >= 0:
		d.DeltaPercentage = 1.0
	default:
		d.DeltaPercentage = -1.0
	}
	return d
}

func deriveTimeDelta(typ domain.ModificationType, category, sourceID string, baseValue, deltaValue, confidence float64) domain.TimeDelta {
	c := deriveCostDelta(typ, category, sourceID, baseValue, deltaValue, confidence)
	return domain.TimeDelta{
		Category:             c.Category,
		BaseValue:            c.BaseValue,
		DeltaValue:           c.DeltaValue,
		NewValue:             c.NewValue,
		DeltaPercentage:      c.DeltaPercentage,
		SourceModificationID: c.SourceModificationID,
		Confidence:           c.Confidence,
	}
}

func defaultConfidence(c float64) float64 {
	if c <= 0 {
		return 0.7
	}
	if c > 1 {
		return 1
	}
	return c
}

// aggregateOrdinals infers quality and risk direction from impact tags.
// Risk also escalates on sheer modification volume: more than 3 adds or 5
// modifies means higher execution risk regardless of tags.
func aggregateOrdinals(scopeMods []domain.ScopeModification, phaseMods []domain.PhaseModification) (quality, risk domain.OrdinalLevel) {
	up, down := 0, 0
	adds, modifies := 0, 0

	countTags := func(tags []string) {
		for _, tag := range tags {
			t := strings.ToLower(tag)
			switch {
			case strings.Contains(t, "premium") || strings.Contains(t, "higher") || strings.Contains(t, "upgrade"):
				up++
			case strings.Contains(t, "basic") || strings.Contains(t, "lower") || strings.Contains(t, "economy"):
				down++
			}
		}
	}
	countType := func(typ domain.ModificationType) {
		switch typ {
		case domain.ModificationAdd:
			adds++
		case domain.ModificationModify, domain.ModificationReplace:
			modifies++
		}
	}

	for _, mod := range scopeMods {
		countTags(mod.ImpactTags)
		countType(mod.Type)
	}
	for _, mod := range phaseMods {
		countTags(mod.ImpactTags)
		countType(mod.Type)
	}

	quality = domain.LevelSame
	if up > down {
		quality = domain.LevelHigher
	} else if down > up {
		quality = domain.LevelLower
	}

	risk = domain.LevelSame
	if adds > 3 || modifies > 5 {
		risk = domain.LevelHigher
	} else if down > up {
		// Cheaper scope usually means less robust scope.
		risk = domain.LevelHigher
	} else if up > down {
		risk = domain.LevelSame
	}
	return quality, risk
}

// ValidationReport is the structured result of an integrity check. Failures
// are data, not panics: callers decide what to do with an invalid alternate.
type ValidationReport struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// ValidateAlternateIntegrity checks the delta-sum invariant and the
// alternate's structural references.
func (m *Manager) ValidateAlternateIntegrity(altID string) ValidationReport {
	report := ValidationReport{Valid: true}
	fail := func(msg string) {
		report.Valid = false
		report.Errors = append(report.Errors, msg)
	}

	alt, ok := m.repo.Alternate(altID)
	if !ok {
		fail(fmt.Sprintf("alternate %q not found", altID))
		return report
	}
	if alt.BaseID == "" {
		fail("alternate has no base reference")
	} else if _, ok := m.repo.Base(alt.BaseID); !ok {
		fail(fmt.Sprintf("base scope tree %q not found", alt.BaseID))
	}

	sum := 0.0
	for _, d := range alt.CostDeltas {
		sum += d.DeltaValue
	}
	if math.Abs(sum-alt.TotalDeltaCost) > deltaTolerance {
		fail(fmt.Sprintf("total delta cost %.4f does not match delta sum %.4f", alt.TotalDeltaCost, sum))
	}

	known := map[string]bool{}
	for _, mod := range alt.ScopeModifications {
		known[mod.ID] = true
	}
	for _, mod := range alt.PhaseModifications {
		known[mod.ID] = true
	}
	for _, d := range alt.CostDeltas {
		if !known[d.SourceModificationID] {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("cost delta %q references unknown modification %q", d.Category, d.SourceModificationID))
		}
	}
	return report
}
