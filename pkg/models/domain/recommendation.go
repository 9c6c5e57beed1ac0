package domain

// RecommendationCategory classifies what a recommendation improves.
type RecommendationCategory string

const (
	CategoryCostOptimization       RecommendationCategory = "cost_optimization"
	CategoryRiskMitigation         RecommendationCategory = "risk_mitigation"
	CategoryCompetitivePositioning RecommendationCategory = "competitive_positioning"
	CategoryProjectExecution       RecommendationCategory = "project_execution"
)

// Priority orders recommendations; Rank gives the sort weight.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Rank returns a sortable weight, higher is more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// RecommendationImpact quantifies what acting on a recommendation is worth.
type RecommendationImpact struct {
	CostSavings       float64 // dollars, negative means added cost
	TimeReductionDays float64
	RiskReduction     string
}

// Recommendation is one rule-generated, prioritized suggestion. Every
// recommendation traces back to a deterministic trigger condition.
type Recommendation struct {
	Category     RecommendationCategory
	Priority     Priority
	Title        string
	Description  string
	Impact       RecommendationImpact
	Effort       string // low, medium, high
	Timeline     string
	Requirements []string
	Tradeoffs    []string
	Confidence   float64 // [0,1]
}
