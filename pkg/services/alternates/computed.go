package alternates

import (
	"fmt"

	"github.com/leano777/bidflow/pkg/models/domain"
	"github.com/leano777/bidflow/pkg/services/costing"
)

// ComputedState derives an alternate's absolute phases and cost summary
// from its base plus its modifications. Callers may cache the result, but
// the deltas remain the source of truth: rerunning this always rebuilds
// from the stored base.
func (m *Manager) ComputedState(altID string) ([]domain.WorkPhase, domain.CostSummary, error) {
	alt, ok := m.repo.Alternate(altID)
	if !ok {
		return nil, domain.CostSummary{}, fmt.Errorf("alternate %q not found", altID)
	}
	base, ok := m.repo.Base(alt.BaseID)
	if !ok {
		return nil, domain.CostSummary{}, fmt.Errorf("base scope tree %q not found", alt.BaseID)
	}

	phases := domain.ClonePhases(base.BasePhases)
	for _, mod := range alt.PhaseModifications {
		phases = applyPhaseModification(phases, mod)
	}
	if adjustment := scopeAdjustmentPhase(alt, base.BaseCostSummary); adjustment != nil {
		phases = append(phases, *adjustment)
	}

	summary := costing.CalculateCostSummary(phases, nil, m.rates)
	return phases, summary, nil
}

// applyPhaseModification rewrites the phase list for one modification.
// Splits append the carved-out phase after subtracting it from the source;
// merges fold the named phase into its predecessor in sequence order.
func applyPhaseModification(phases []domain.WorkPhase, mod domain.PhaseModification) []domain.WorkPhase {
	idx := -1
	for i, p := range phases {
		if p.Name == mod.PhaseName {
			idx = i
			break
		}
	}

	switch mod.Type {
	case domain.ModificationAdd:
		if mod.NewPhase != nil {
			phases = append(phases, mod.NewPhase.Clone())
		} else if mod.CostImpact != 0 {
			phases = append(phases, syntheticPhase(mod.PhaseName, mod.ID, mod.CostImpact, mod.TimeImpactDays))
		}

	case domain.ModificationRemove:
		if idx >= 0 {
			phases = append(phases[:idx], phases[idx+1:]...)
		}

	case domain.ModificationModify:
		if idx >= 0 {
			scalePhaseBy(&phases[idx], mod.CostImpact)
			phases[idx].DurationDays += mod.TimeImpactDays
		}

	case domain.ModificationReplace:
		if idx >= 0 && mod.NewPhase != nil {
			replacement := mod.NewPhase.Clone()
			replacement.SequenceOrder = phases[idx].SequenceOrder
			phases[idx] = replacement
		}

	case domain.ModificationSplit:
		if idx >= 0 && mod.NewPhase != nil {
			carved := mod.NewPhase.Clone()
			scalePhaseBy(&phases[idx], -carved.PhaseTotal)
			phases = append(phases, carved)
		}

	case domain.ModificationMerge:
		if idx > 0 {
			phases[idx-1].Items = append(phases[idx-1].Items, phases[idx].Items...)
			phases[idx-1].DurationDays += phases[idx].DurationDays
			phases[idx-1].Recalculate()
			phases = append(phases[:idx], phases[idx+1:]...)
		}
	}
	return phases
}

// scalePhaseBy spreads a signed direct-cost impact across a phase's items,
// preserving each item's material/labor/equipment mix, then restores the
// totals invariant.
func scalePhaseBy(p *domain.WorkPhase, impact float64) {
	if impact == 0 || p.PhaseTotal == 0 {
		return
	}
	factor := 1 + impact/p.PhaseTotal
	if factor < 0 {
		factor = 0
	}
	for i := range p.Items {
		p.Items[i].MaterialCost *= factor
		p.Items[i].LaborCost *= factor
		p.Items[i].EquipmentCost *= factor
	}
	p.Recalculate()
}

// scopeAdjustmentPhase materializes narrative scope modifications as one
// synthetic phase so the recomputed summary carries their cost. Impacts are
// allocated across cost components in the base estimate's mix.
func scopeAdjustmentPhase(alt domain.AlternateScope, base domain.CostSummary) *domain.WorkPhase {
	if len(alt.ScopeModifications) == 0 {
		return nil
	}
	mShare, lShare, eShare := 0.4, 0.45, 0.15
	if base.DirectCostTotal > 0 {
		mShare = base.MaterialTotal / base.DirectCostTotal
		lShare = base.LaborTotal / base.DirectCostTotal
		eShare = base.EquipmentTotal / base.DirectCostTotal
	}

	p := domain.WorkPhase{
		ID:            "scope-adjustments-" + alt.ID,
		Name:          "Scope Adjustments",
		Category:      "Scope Adjustments",
		SequenceOrder: 99,
		RiskLevel:     domain.RiskMedium,
	}
	for _, mod := range alt.ScopeModifications {
		if mod.CostImpact == 0 {
			continue
		}
		item := domain.EstimateLineItem{
			ID:              mod.ID,
			Description:     mod.Description,
			Quantity:        1,
			Unit:            "ls",
			MaterialCost:    mod.CostImpact * mShare,
			LaborCost:       mod.CostImpact * lShare,
			EquipmentCost:   mod.CostImpact * eShare,
			ConfidenceScore: defaultConfidence(mod.Confidence),
		}
		item.Recalculate()
		p.Items = append(p.Items, item)
		p.DurationDays += mod.TimeImpactDays
	}
	if len(p.Items) == 0 {
		return nil
	}
	p.Recalculate()
	return &p
}

func syntheticPhase(name, modID string, cost, days float64) domain.WorkPhase {
	p := domain.WorkPhase{
		ID:            "added-" + modID,
		Name:          name,
		Category:      name,
		SequenceOrder: 99,
		DurationDays:  days,
		RiskLevel:     domain.RiskMedium,
	}
	item := domain.EstimateLineItem{
		ID:              modID,
		Description:     name,
		Quantity:        1,
		Unit:            "ls",
		MaterialCost:    cost * 0.4,
		LaborCost:       cost * 0.45,
		EquipmentCost:   cost * 0.15,
		ConfidenceScore: 0.7,
	}
	item.Recalculate()
	p.Items = []domain.EstimateLineItem{item}
	p.Recalculate()
	return p
}
