package quality

import (
	"fmt"

	"github.com/leano777/bidflow/pkg/models/domain"
)

// detectRisks runs the fixed risk rule set over the snapshot. Every risk has
// a deterministic trigger; rule order fixes output order.
func (c *Controller) detectRisks(phases []domain.WorkPhase, summary domain.CostSummary) []domain.RiskFactor {
	var risks []domain.RiskFactor

	if summary.DirectCostTotal > 0 && summary.MarkupPercentage < c.settings.LowMarkupShare {
		risks = append(risks, domain.RiskFactor{
			Category:    "margin",
			Level:       domain.RiskMedium,
			Probability: 0.6,
			CostImpact:  (c.settings.LowMarkupShare - summary.MarkupPercentage) * summary.DirectCostTotal,
			Description: fmt.Sprintf("markup %.1f%% is below the %.0f%% floor; thin margin leaves no room for surprises", summary.MarkupPercentage*100, c.settings.LowMarkupShare*100),
		})
	}

	if summary.DirectCostTotal > 0 && summary.Contingency < c.settings.LowContingencyShare*summary.DirectCostTotal {
		risks = append(risks, domain.RiskFactor{
			Category:    "contingency",
			Level:       domain.RiskHigh,
			Probability: 0.7,
			CostImpact:  c.settings.LowContingencyShare*summary.DirectCostTotal - summary.Contingency,
			Description: fmt.Sprintf("contingency $%.2f is below %.0f%% of direct cost", summary.Contingency, c.settings.LowContingencyShare*100),
		})
	}

	for _, p := range phases {
		if p.RiskLevel == domain.RiskHigh {
			risks = append(risks, domain.RiskFactor{
				Category:           "phase",
				Level:              domain.RiskHigh,
				Probability:        0.5,
				CostImpact:         p.PhaseTotal * 0.1,
				ScheduleImpactDays: p.DurationDays * 0.2,
				Description:        fmt.Sprintf("phase %q is flagged high risk", p.Name),
			})
		}
	}

	total, lowConf := 0, 0
	for _, p := range phases {
		for _, it := range p.Items {
			total++
			if it.ConfidenceScore < c.settings.LowConfidenceScore {
				lowConf++
			}
		}
	}
	if total > 0 && float64(lowConf)/float64(total) > c.settings.LowConfidenceShare {
		risks = append(risks, domain.RiskFactor{
			Category:    "pricing",
			Level:       domain.RiskMedium,
			Probability: 0.6,
			CostImpact:  summary.DirectCostTotal * 0.05,
			Description: fmt.Sprintf("%d of %d items price below %.1f confidence", lowConf, total, c.settings.LowConfidenceScore),
		})
	}

	unpermitted := 0
	for _, p := range phases {
		if p.PermitRequired {
			unpermitted++
		}
	}
	if unpermitted > 0 && summary.Permits == 0 {
		risks = append(risks, domain.RiskFactor{
			Category:    "permits",
			Level:       domain.RiskHigh,
			Probability: 0.8,
			CostImpact:  c.settings.PermitCostPerPhase * float64(unpermitted),
			Description: fmt.Sprintf("%d permit-required phases but no permit cost carried", unpermitted),
		})
	}

	return risks
}

// detectWarnings runs the fixed warning rule set.
func (c *Controller) detectWarnings(phases []domain.WorkPhase, summary domain.CostSummary) []domain.Warning {
	var warnings []domain.Warning

	for _, p := range phases {
		if len(p.Items) == 0 {
			warnings = append(warnings, domain.Warning{
				Type:     "empty_phase",
				Severity: domain.SeverityMedium,
				Message:  fmt.Sprintf("phase %q has no line items", p.Name),
			})
		}
	}

	if summary.DirectCostTotal > 0 {
		for _, p := range phases {
			for _, it := range p.Items {
				if it.LineItemTotal > c.settings.LargeItemShare*summary.DirectCostTotal {
					warnings = append(warnings, domain.Warning{
						Type:          "concentrated_cost",
						Severity:      domain.SeverityMedium,
						Message:       fmt.Sprintf("item %q is %.1f%% of total direct cost", it.Description, it.LineItemTotal/summary.DirectCostTotal*100),
						AffectedItems: []string{it.ID},
					})
				}
			}
		}
	}

	covered := map[string]bool{}
	for _, p := range phases {
		covered[p.Name] = true
	}
	for _, cat := range requiredCategories {
		if !covered[cat] {
			warnings = append(warnings, domain.Warning{
				Type:     "missing_category",
				Severity: domain.SeverityLow,
				Message:  fmt.Sprintf("no %q scope in this estimate", cat),
			})
		}
	}

	for _, p := range phases {
		for _, it := range p.Items {
			if len(it.RiskFactors) > c.settings.MaxItemRiskFactors {
				warnings = append(warnings, domain.Warning{
					Type:          "risky_item",
					Severity:      domain.SeverityHigh,
					Message:       fmt.Sprintf("item %q carries %d risk factors", it.Description, len(it.RiskFactors)),
					AffectedItems: []string{it.ID},
				})
			}
		}
	}

	return warnings
}
