// Package costing implements the layered direct/indirect cost arithmetic.
// Everything here is a pure transformation: identical inputs and rates
// always produce identical summaries.
package costing

import "github.com/leano777/bidflow/pkg/models/domain"

// Rates parameterizes the indirect cost pipeline. All rates are fractions of
// the value they apply to; PermitCosts is a fixed dollar amount.
type Rates struct {
	OverheadRate          float64
	GeneralConditionsRate float64
	MarkupRate            float64
	ContingencyRate       float64
	BondingRate           float64
	PermitCosts           float64
	IncludeBonding        bool
}

// DefaultRates returns the standard rate bundle.
func DefaultRates() Rates {
	return Rates{
		OverheadRate:          0.15,
		GeneralConditionsRate: 0.05,
		MarkupRate:            0.20,
		ContingencyRate:       0.05,
		BondingRate:           0.015,
		PermitCosts:           0,
		IncludeBonding:        false,
	}
}

// CalculateCostSummary rolls phases up into a full cost summary. Indirect
/// components are derived in a fixed order: overhead, general conditions and
// contingency off direct cost, markup off the running subtotal, bonding off
// subtotal+markup.
func CalculateCostSummary(phases []domain.WorkPhase, project *domain.ProjectSummary, rates Rates) domain.CostSummary {
	var s domain.CostSummary
	for _, p := range phases {
		for _, it := range p.Items {
			s.MaterialTotal += it.MaterialCost
			s.LaborTotal += it.LaborCost
			s.EquipmentTotal += it.EquipmentCost
		}
	}
	s.DirectCostTotal = s.MaterialTotal + s.LaborTotal + s.EquipmentTotal

	s.Overhead = s.DirectCostTotal * rates.OverheadRate
	s.GeneralConditions = s.DirectCostTotal * rates.GeneralConditionsRate
	s.Contingency = s.DirectCostTotal * rates.ContingencyRate
	s.Permits = rates.PermitCosts

	subtotal := s.DirectCostTotal + s.Overhead + s.GeneralConditions + s.Contingency + s.Permits
	s.Markup = subtotal * rates.MarkupRate
	if rates.IncludeBonding {
		s.Bonding = (subtotal + s.Markup) * rates.BondingRate
	}

	s.IndirectCostTotal = s.Overhead + s.GeneralConditions + s.Contingency + s.Permits + s.Markup + s.Bonding
	s.ContractTotal = s.DirectCostTotal + s.IndirectCostTotal

	deriveRatios(&s)
	applyUnitCosts(&s, project)
	return s
}

func deriveRatios(s *domain.CostSummary) {
	if s.DirectCostTotal <= 0 {
		s.MarkupPercentage = 0
		s.LaborPercentage = 0
		s.MaterialPercentage = 0
		s.EquipmentPercentage = 0
		return
	}
	s.MarkupPercentage = s.Markup / s.DirectCostTotal
	s.LaborPercentage = s.LaborTotal / s.DirectCostTotal
	s.MaterialPercentage = s.MaterialTotal / s.DirectCostTotal
	s.EquipmentPercentage = s.EquipmentTotal / s.DirectCostTotal
}

func applyUnitCosts(s *domain.CostSummary, project *domain.ProjectSummary) {
	if project == nil {
		return
	}
	if project.SquareFootage > 0 {
		s.CostPerSquareFoot = s.ContractTotal / project.SquareFootage
	}
	if project.LinearFootage > 0 {
		s.CostPerLinearFoot = s.ContractTotal / project.LinearFootage
	}
}

// Adjustments are component-level overrides applied before the indirect
// pipeline reruns. Zero-valued multipliers mean "leave unchanged".
type Adjustments struct {
	MaterialMultiplier  float64
	LaborMultiplier     float64
	EquipmentMultiplier float64
}

// ApplyCostAdjustments scales the direct components of every item, restores
// the item and phase invariants, and re-derives the entire summary. Totals
// are never adjusted without recomputation. The input phases are not
// mutated.
func ApplyCostAdjustments(phases []domain.WorkPhase, project *domain.ProjectSummary, rates Rates, adj Adjustments) ([]domain.WorkPhase, domain.CostSummary) {
	mm := orOne(adj.MaterialMultiplier)
	lm := orOne(adj.LaborMultiplier)
	em := orOne(adj.EquipmentMultiplier)

	adjusted := domain.ClonePhases(phases)
	for i := range adjusted {
		for j := range adjusted[i].Items {
			it := &adjusted[i].Items[j]
			it.MaterialCost *= mm
			it.LaborCost *= lm
			it.EquipmentCost *= em
		}
		adjusted[i].Recalculate()
	}
	return adjusted, CalculateCostSummary(adjusted, project, rates)
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
