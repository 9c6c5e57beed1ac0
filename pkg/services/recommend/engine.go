// Package recommend generates prioritized estimate recommendations from a
// fixed, deterministic rule table. The engine is stateless: the same
// snapshot always yields the same recommendations in the same order.
package recommend

import (
	"fmt"
	"sort"

	"github.com/leano777/bidflow/pkg/models/domain"
)

// Snapshot is the read-only input a rule evaluates.
type Snapshot struct {
	Phases  []domain.WorkPhase
	Summary domain.CostSummary
	Quality *domain.QualityMetrics
	Project *domain.ProjectSummary
}

// rule tests one condition and emits one recommendation when triggered.
type rule func(s Snapshot) (domain.Recommendation, bool)

// Engine evaluates the rule table over a snapshot.
type Engine struct {
	rules []rule
}

// NewEngine builds the engine with the standard rule table.
func NewEngine() *Engine {
	return &Engine{rules: standardRules()}
}

// Generate runs every rule and returns triggered recommendations sorted by
// priority (critical first) then confidence descending. Sorting is stable,
// so equal entries keep rule-table order.
func (e *Engine) Generate(s Snapshot) []domain.Recommendation {
	var out []domain.Recommendation
	for _, r := range e.rules {
		if rec, ok := r(s); ok {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority.Rank() != out[j].Priority.Rank() {
			return out[i].Priority.Rank() > out[j].Priority.Rank()
		}
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

func standardRules() []rule {
	return []rule{
		materialHeavyRule,
		highRiskPhasesRule,
		lowConfidenceClusterRule,
		thinMarkupRule,
		missingContingencyRule,
		permitExposureRule,
		valueEngineeringRule,
		scheduleCompressionRule,
	}
}

// materialHeavyRule: material share above 40% of direct cost suggests
// supplier negotiation or substitution.
func materialHeavyRule(s Snapshot) (domain.Recommendation, bool) {
	if s.Summary.DirectCostTotal <= 0 || s.Summary.MaterialPercentage <= 0.40 {
		return domain.Recommendation{}, false
	}
	excess := (s.Summary.MaterialPercentage - 0.35) * s.Summary.DirectCostTotal
	return domain.Recommendation{
		Category:    domain.CategoryCostOptimization,
		Priority:    domain.PriorityHigh,
		Title:       "Negotiate material pricing",
		Description: fmt.Sprintf("Material is %.1f%% of direct cost. Bulk purchasing, supplier bids, or substitutions could recover part of the premium.", s.Summary.MaterialPercentage*100),
		Impact: domain.RecommendationImpact{
			CostSavings:   excess * 0.3,
			RiskReduction: "reduces exposure to material price escalation",
		},
		Effort:       "medium",
		Timeline:     "before contract signing",
		Requirements: []string{"supplier quotes from at least two vendors"},
		Tradeoffs:    []string{"substitutions may change finish quality"},
		Confidence:   0.75,
	}, true
}

// highRiskPhasesRule: more than two high-risk phases calls for a risk
// workshop before committing.
func highRiskPhasesRule(s Snapshot) (domain.Recommendation, bool) {
	var names []string
	for _, p := range s.Phases {
		if p.RiskLevel == domain.RiskHigh {
			names = append(names, p.Name)
		}
	}
	if len(names) <= 2 {
		return domain.Recommendation{}, false
	}
	return domain.Recommendation{
		Category:    domain.CategoryRiskMitigation,
		Priority:    domain.PriorityCritical,
		Title:       "Resolve high-risk phases before bid",
		Description: fmt.Sprintf("%d phases are graded high risk (%v). Walk the scope with the trades involved and reprice the weakest items.", len(names), names),
		Impact: domain.RecommendationImpact{
			RiskReduction: "converts unknowns into priced scope",
		},
		Effort:       "high",
		Timeline:     "1-2 weeks",
		Requirements: []string{"site visit", "trade partner input"},
		Tradeoffs:    []string{"delays bid submission"},
		Confidence:   0.85,
	}, true
}

// lowConfidenceClusterRule: a cluster of low-confidence items needs
// re-pricing from real quotes.
func lowConfidenceClusterRule(s Snapshot) (domain.Recommendation, bool) {
	var affected []string
	for _, p := range s.Phases {
		for _, it := range p.Items {
			if it.ConfidenceScore < 0.6 {
				affected = append(affected, it.ID)
			}
		}
	}
	if len(affected) < 3 {
		return domain.Recommendation{}, false
	}
	return domain.Recommendation{
		Category:    domain.CategoryRiskMitigation,
		Priority:    domain.PriorityHigh,
		Title:       "Reprice low-confidence items",
		Description: fmt.Sprintf("%d items price below 0.6 confidence. Replace allowances with quoted numbers.", len(affected)),
		Impact: domain.RecommendationImpact{
			RiskReduction: "narrows the estimate's error band",
		},
		Effort:       "medium",
		Timeline:     "3-5 days",
		Requirements: []string{"vendor or sub quotes"},
		Confidence:   0.8,
	}, true
}

// thinMarkupRule: markup under 15% of direct cost is a competitive red flag
// in the other direction.
func thinMarkupRule(s Snapshot) (domain.Recommendation, bool) {
	if s.Summary.DirectCostTotal <= 0 || s.Summary.MarkupPercentage >= 0.15 {
		return domain.Recommendation{}, false
	}
	return domain.Recommendation{
		Category:    domain.CategoryCompetitivePositioning,
		Priority:    domain.PriorityMedium,
		Title:       "Markup below sustainable floor",
		Description: fmt.Sprintf("Markup is %.1f%% of direct cost. Winning at this margin risks losing money on change orders and warranty work.", s.Summary.MarkupPercentage*100),
		Impact: domain.RecommendationImpact{
			CostSavings: -(0.15 - s.Summary.MarkupPercentage) * s.Summary.DirectCostTotal,
		},
		Effort:     "low",
		Timeline:   "before submission",
		Tradeoffs:  []string{"higher price may cost the award"},
		Confidence: 0.7,
	}, true
}

// missingContingencyRule: no contingency on a non-trivial estimate.
func missingContingencyRule(s Snapshot) (domain.Recommendation, bool) {
	if s.Summary.DirectCostTotal < 1000 || s.Summary.Contingency > 0 {
		return domain.Recommendation{}, false
	}
	return domain.Recommendation{
		Category:    domain.CategoryRiskMitigation,
		Priority:    domain.PriorityCritical,
		Title:       "Carry a contingency",
		Description: "The estimate carries no contingency. A 5% reserve on direct cost is the minimum for work of this size.",
		Impact: domain.RecommendationImpact{
			CostSavings:   -0.05 * s.Summary.DirectCostTotal,
			RiskReduction: "absorbs unforeseen conditions without change orders",
		},
		Effort:     "low",
		Timeline:   "immediate",
		Confidence: 0.9,
	}, true
}

// permitExposureRule: permit-required phases with no permit budget.
func permitExposureRule(s Snapshot) (domain.Recommendation, bool) {
	count := 0
	for _, p := range s.Phases {
		if p.PermitRequired {
			count++
		}
	}
	if count == 0 || s.Summary.Permits > 0 {
		return domain.Recommendation{}, false
	}
	return domain.Recommendation{
		Category:    domain.CategoryProjectExecution,
		Priority:    domain.PriorityHigh,
		Title:       "Budget permit costs",
		Description: fmt.Sprintf("%d phases require permits but the estimate carries no permit cost.", count),
		Impact: domain.RecommendationImpact{
			CostSavings: -500 * float64(count),
		},
		Effort:     "low",
		Timeline:   "immediate",
		Confidence: 0.85,
	}, true
}

// valueEngineeringRule: labor-heavy estimates usually have prefabrication or
// assembly substitutions available.
func valueEngineeringRule(s Snapshot) (domain.Recommendation, bool) {
	if s.Summary.DirectCostTotal <= 0 || s.Summary.LaborPercentage <= 0.55 {
		return domain.Recommendation{}, false
	}
	return domain.Recommendation{
		Category:    domain.CategoryCostOptimization,
		Priority:    domain.PriorityMedium,
		Title:       "Evaluate prefabrication",
		Description: fmt.Sprintf("Labor is %.1f%% of direct cost. Panelized or prefabricated assemblies could shift hours off site.", s.Summary.LaborPercentage*100),
		Impact: domain.RecommendationImpact{
			CostSavings:       s.Summary.LaborTotal * 0.1,
			TimeReductionDays: totalDuration(s.Phases) * 0.1,
		},
		Effort:     "medium",
		Timeline:   "design phase",
		Tradeoffs:  []string{"requires earlier design freeze"},
		Confidence: 0.65,
	}, true
}

// scheduleCompressionRule: long sequential schedules with systems work can
// usually overlap trades.
func scheduleCompressionRule(s Snapshot) (domain.Recommendation, bool) {
	if totalDuration(s.Phases) < 60 {
		return domain.Recommendation{}, false
	}
	return domain.Recommendation{
		Category:    domain.CategoryProjectExecution,
		Priority:    domain.PriorityLow,
		Title:       "Overlap trade sequences",
		Description: fmt.Sprintf("Sequential duration is %.0f days. Overlapping systems rough-in with framing completion typically recovers 10-15%%.", totalDuration(s.Phases)),
		Impact: domain.RecommendationImpact{
			TimeReductionDays: totalDuration(s.Phases) * 0.12,
		},
		Effort:     "medium",
		Timeline:   "scheduling phase",
		Tradeoffs:  []string{"tighter coordination burden on the superintendent"},
		Confidence: 0.6,
	}, true
}

func totalDuration(phases []domain.WorkPhase) float64 {
	d := 0.0
	for _, p := range phases {
		d += p.DurationDays
	}
	return d
}
