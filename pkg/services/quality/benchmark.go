package quality

import (
	"fmt"
	"math"

	"github.com/leano777/bidflow/pkg/models/domain"
)

// Industry reference ratios (shares of direct cost) and cost per square
// foot for light construction.
const (
	industryLaborShare    = 0.45
	industryMaterialShare = 0.35
	industryOverheadShare = 0.15
	industryCostPerSF     = 185.0

	ratioDeviationTolerance  = 0.10
	costSFDeviationTolerance = 0.25
)

// compareBenchmarks measures estimate ratios against the fixed industry
// constants and emits a suggestion only when deviation exceeds tolerance.
func compareBenchmarks(summary domain.CostSummary) domain.BenchmarkComparison {
	var cmp domain.BenchmarkComparison
	if summary.DirectCostTotal <= 0 {
		return cmp
	}

	overheadShare := summary.Overhead / summary.DirectCostTotal

	cmp.Metrics = append(cmp.Metrics,
		benchmarkMetric("labor_share", summary.LaborPercentage, industryLaborShare, ratioDeviationTolerance,
			"review labor pricing or crew productivity assumptions"),
		benchmarkMetric("material_share", summary.MaterialPercentage, industryMaterialShare, ratioDeviationTolerance,
			"review material takeoffs and supplier quotes"),
		benchmarkMetric("overhead_share", overheadShare, industryOverheadShare, ratioDeviationTolerance,
			"revisit the overhead rate against company actuals"),
	)

	if summary.CostPerSquareFoot > 0 {
		cmp.Metrics = append(cmp.Metrics,
			benchmarkMetric("cost_per_sf", summary.CostPerSquareFoot, industryCostPerSF, costSFDeviationTolerance,
				"compare against recent comparable projects in the area"))
	}
	return cmp
}

func benchmarkMetric(name string, estimate, industry, tolerance float64, suggestion string) domain.BenchmarkMetric {
	m := domain.BenchmarkMetric{
		Name:          name,
		EstimateValue: estimate,
		IndustryValue: industry,
		Deviation:     (estimate - industry) / industry,
	}
	if math.Abs(m.Deviation) > tolerance {
		direction := "above"
		if m.Deviation < 0 {
			direction = "below"
		}
		m.Suggestion = fmt.Sprintf("%s is %.0f%% %s the industry reference; %s",
			name, math.Abs(m.Deviation)*100, direction, suggestion)
	}
	return m
}
