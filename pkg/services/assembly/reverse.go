package assembly

import (
	"fmt"
	"math"

	"github.com/leano777/bidflow/pkg/models/domain"
)

// categorySplits are the default composite-rate decompositions per
// category. Each set of shares should sum to 1.0.
var categorySplits = map[string]domain.RateSplit{
	"concrete":   {Labor: 0.40, Material: 0.42, Equipment: 0.08, OverheadProfit: 0.10},
	"excavation": {Labor: 0.35, Material: 0.05, Equipment: 0.48, OverheadProfit: 0.12},
	"framing":    {Labor: 0.45, Material: 0.43, Equipment: 0.02, OverheadProfit: 0.10},
	"electrical": {Labor: 0.55, Material: 0.35, Equipment: 0.02, OverheadProfit: 0.08},
	"plumbing":   {Labor: 0.52, Material: 0.36, Equipment: 0.02, OverheadProfit: 0.10},
	"drywall":    {Labor: 0.55, Material: 0.33, Equipment: 0.02, OverheadProfit: 0.10},
	"roofing":    {Labor: 0.42, Material: 0.44, Equipment: 0.04, OverheadProfit: 0.10},
	"insulation": {Labor: 0.45, Material: 0.45, Equipment: 0.00, OverheadProfit: 0.10},
	"flooring":   {Labor: 0.48, Material: 0.42, Equipment: 0.00, OverheadProfit: 0.10},
}

// fallbackSplit covers categories with no specific decomposition.
var fallbackSplit = domain.RateSplit{Labor: 0.45, Material: 0.38, Equipment: 0.05, OverheadProfit: 0.12}

// assemblySplits lets specific assemblies carry their own decomposition,
// preferred over the category default.
var assemblySplits = map[string]domain.RateSplit{
	"31-2300": {Labor: 0.32, Material: 0.04, Equipment: 0.52, OverheadProfit: 0.12},
}

// categoryLaborRates are the average $/hr used to back labor hours out of a
// labor dollar share.
var categoryLaborRates = map[string]float64{
	"concrete":   42,
	"excavation": 44,
	"framing":    41,
	"electrical": 50,
	"plumbing":   46,
	"drywall":    40,
	"roofing":    40,
	"insulation": 34,
	"flooring":   38,
}

// ReverseEngineerCompositeRate decomposes a known $/unit rate into
// labor/material/equipment/OH&P dollar shares using the assembly-specific
// split when one exists, else the category default. Confidence reflects how
// close the split's shares sum to 1.0.
func (e *Engine) ReverseEngineerCompositeRate(compositeRate float64, unit, category, assemblyCode string) (domain.CompositeRateAnalysis, error) {
	if compositeRate <= 0 {
		return domain.CompositeRateAnalysis{}, fmt.Errorf("composite rate must be positive, got %.2f", compositeRate)
	}

	split, source := resolveSplit(category, assemblyCode)
	laborRate := categoryLaborRates[category]
	if laborRate == 0 {
		laborRate = genericLaborRate
	}

	analysis := domain.CompositeRateAnalysis{
		CompositeRate:    compositeRate,
		Unit:             unit,
		Category:         category,
		AssemblyCode:     source,
		LaborShare:       compositeRate * split.Labor,
		MaterialShare:    compositeRate * split.Material,
		EquipmentShare:   compositeRate * split.Equipment,
		OverheadShare:    compositeRate * split.OverheadProfit,
		AverageLaborRate: laborRate,
	}
	analysis.LaborHoursPerUnit = analysis.LaborShare / laborRate

	drift := math.Abs(split.Sum() - 1.0)
	analysis.Confidence = clamp01(1.0 - drift*2)

	analysis.Assumptions = []string{
		fmt.Sprintf("labor %.0f%%, material %.0f%%, equipment %.0f%%, OH&P %.0f%% split",
			split.Labor*100, split.Material*100, split.Equipment*100, split.OverheadProfit*100),
		fmt.Sprintf("average labor rate $%.0f/hr for %s work", laborRate, category),
	}
	if source == "" {
		analysis.Assumptions = append(analysis.Assumptions, "category-default split; no assembly-specific decomposition")
	}
	return analysis, nil
}

// resolveSplit prefers the assembly-specific split, then the category
// default, then the generic fallback. The returned source is the assembly
// code when its split was used, else empty.
func resolveSplit(category, assemblyCode string) (domain.RateSplit, string) {
	if assemblyCode != "" {
		if split, ok := assemblySplits[assemblyCode]; ok {
			return split, assemblyCode
		}
	}
	if split, ok := categorySplits[category]; ok {
		return split, ""
	}
	return fallbackSplit, ""
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
