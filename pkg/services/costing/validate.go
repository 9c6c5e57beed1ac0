package costing

import (
	"fmt"

	"github.com/leano777/bidflow/pkg/models/domain"
)

// Validation bands. Ratios are fractions of direct cost, cost/SF in dollars.
const (
	minLaborShare    = 0.35
	maxLaborShare    = 0.55
	minMaterialShare = 0.25
	maxMaterialShare = 0.45
	minMarkupShare   = 0.15
	maxMarkupShare   = 0.30
	minCostPerSF     = 50.0
	maxCostPerSF     = 500.0
)

// ValidateCostSummary flags out-of-band ratios. Findings are advisory
// warnings, never errors: an unusual estimate still compiles.
func ValidateCostSummary(s domain.CostSummary) []domain.Warning {
	var warnings []domain.Warning
	add := func(typ, msg string) {
		warnings = append(warnings, domain.Warning{
			Type:     typ,
			Severity: domain.SeverityMedium,
			Message:  msg,
		})
	}

	if s.DirectCostTotal <= 0 {
		add("empty_estimate", "estimate has no direct cost")
		return warnings
	}

	if s.LaborPercentage < minLaborShare || s.LaborPercentage > maxLaborShare {
		add("labor_ratio", fmt.Sprintf("labor is %.1f%% of direct cost, outside the typical %.0f%%-%.0f%% band",
			s.LaborPercentage*100, minLaborShare*100, maxLaborShare*100))
	}
	if s.MaterialPercentage < minMaterialShare || s.MaterialPercentage > maxMaterialShare {
		add("material_ratio", fmt.Sprintf("material is %.1f%% of direct cost, outside the typical %.0f%%-%.0f%% band",
			s.MaterialPercentage*100, minMaterialShare*100, maxMaterialShare*100))
	}
	if s.MarkupPercentage < minMarkupShare || s.MarkupPercentage > maxMarkupShare {
		add("markup_ratio", fmt.Sprintf("markup is %.1f%% of direct cost, outside the typical %.0f%%-%.0f%% band",
			s.MarkupPercentage*100, minMarkupShare*100, maxMarkupShare*100))
	}
	if s.CostPerSquareFoot > 0 && (s.CostPerSquareFoot < minCostPerSF || s.CostPerSquareFoot > maxCostPerSF) {
		add("cost_per_sf", fmt.Sprintf("cost per square foot $%.2f is outside the typical $%.0f-$%.0f band",
			s.CostPerSquareFoot, minCostPerSF, maxCostPerSF))
	}
	return warnings
}
