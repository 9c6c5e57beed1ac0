// Package quality scores estimate confidence and completeness and detects
// risks, warnings and benchmark deviations. All findings are advisory; none
// block compilation.
package quality

import (
	"fmt"
	"time"

	"github.com/leano777/bidflow/pkg/models/domain"
)

// Settings holds the rule thresholds for quality control.
type Settings struct {
	LowMarkupShare       float64 // markup below this share of direct cost is a risk
	LowContingencyShare  float64
	LowConfidenceScore   float64 // items below this score count as low confidence
	LowConfidenceShare   float64 // share of low-confidence items that triggers a risk
	LargeItemShare       float64 // single item above this share of total cost warns
	MaxItemRiskFactors   int
	PermitCostPerPhase   float64 // estimated cost impact per unpermitted phase
}

// DefaultSettings returns the standard quality thresholds.
func DefaultSettings() Settings {
	return Settings{
		LowMarkupShare:      0.15,
		LowContingencyShare: 0.03,
		LowConfidenceScore:  0.6,
		LowConfidenceShare:  0.20,
		LargeItemShare:      0.15,
		MaxItemRiskFactors:  2,
		PermitCostPerPhase:  500,
	}
}

// requiredCategories are the canonical phases a complete scope covers.
var requiredCategories = []string{
	"Site Preparation", "Foundation", "Framing", "Roofing",
	"Systems", "Interior", "Exterior", "Closeout",
}

// Controller runs quality analysis for one compilation session. The audit
// trail is scoped to the controller instance; build a fresh controller per
// compilation.
type Controller struct {
	settings Settings
	now      func() time.Time
	trail    []domain.AuditEntry
}

// NewController builds a session-scoped controller. The clock is injected so
// audit timestamps stay reproducible in tests.
func NewController(settings Settings, now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}
	return &Controller{settings: settings, now: now}
}

// record appends one audit entry to the session trail.
func (c *Controller) record(stage, action, detail string) {
	c.trail = append(c.trail, domain.AuditEntry{
		Timestamp: c.now(),
		Stage:     stage,
		Action:    action,
		Detail:    detail,
	})
}

// AuditTrail returns a copy of the session's append-only trail.
func (c *Controller) AuditTrail() []domain.AuditEntry {
	out := make([]domain.AuditEntry, len(c.trail))
	copy(out, c.trail)
	return out
}

// Analyze produces the full quality metrics for a phase/cost snapshot.
func (c *Controller) Analyze(phases []domain.WorkPhase, summary domain.CostSummary, project *domain.ProjectSummary) domain.QualityMetrics {
	c.record("quality", "analyze", fmt.Sprintf("%d phases, contract total %.2f", len(phases), summary.ContractTotal))

	m := domain.QualityMetrics{
		OverallConfidence: overallConfidence(phases),
		DataCompleteness:  c.dataCompleteness(phases, project),
		PriceAccuracy:     priceAccuracy(phases),
		ScopeCompleteness: scopeCompleteness(phases),
	}
	m.RiskFactors = c.detectRisks(phases, summary)
	m.Warnings = c.detectWarnings(phases, summary)
	m.Benchmark = compareBenchmarks(summary)

	c.record("quality", "scored", fmt.Sprintf(
		"confidence=%.2f completeness=%.2f accuracy=%.2f scope=%.2f risks=%d warnings=%d",
		m.OverallConfidence, m.DataCompleteness, m.PriceAccuracy, m.ScopeCompleteness,
		len(m.RiskFactors), len(m.Warnings)))

	m.AuditTrail = c.AuditTrail()
	return m
}

func overallConfidence(phases []domain.WorkPhase) float64 {
	sum, n := 0.0, 0
	for _, p := range phases {
		for _, it := range p.Items {
			sum += it.ConfidenceScore
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// dataCompleteness is a weighted checklist: 30% project identity fields,
// 30% phase coverage of the required categories, 40% item field
// completeness.
func (c *Controller) dataCompleteness(phases []domain.WorkPhase, project *domain.ProjectSummary) float64 {
	projectScore := 0.0
	if project != nil {
		fields := 0.0
		if project.Name != "" {
			fields++
		}
		if project.Client != "" {
			fields++
		}
		if project.Address != "" {
			fields++
		}
		if project.SquareFootage > 0 || project.LinearFootage > 0 {
			fields++
		}
		if project.ProjectType != "" {
			fields++
		}
		projectScore = fields / 5
	}

	covered := map[string]bool{}
	for _, p := range phases {
		covered[p.Name] = true
	}
	coverage := 0.0
	for _, cat := range requiredCategories {
		if covered[cat] {
			coverage++
		}
	}
	coverage /= float64(len(requiredCategories))

	itemScore, items := 0.0, 0
	for _, p := range phases {
		for _, it := range p.Items {
			fields := 0.0
			if it.Description != "" {
				fields++
			}
			if it.Quantity > 0 {
				fields++
			}
			if it.Unit != "" {
				fields++
			}
			if it.LineItemTotal > 0 {
				fields++
			}
			if it.LaborHours > 0 {
				fields++
			}
			itemScore += fields / 5
			items++
		}
	}
	if items > 0 {
		itemScore /= float64(items)
	}

	return clamp01(0.3*projectScore + 0.3*coverage + 0.4*itemScore)
}

// priceAccuracy discounts item confidence by risk-factor count and boosts
// items carrying a sourced unit calculation (quantity and unit present).
func priceAccuracy(phases []domain.WorkPhase) float64 {
	sum, n := 0.0, 0
	for _, p := range phases {
		for _, it := range p.Items {
			score := it.ConfidenceScore
			score -= 0.05 * float64(len(it.RiskFactors))
			if it.Quantity > 0 && it.Unit != "" {
				score += 0.1
			}
			sum += clamp01(score)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// scopeCompleteness is the covered fraction of required phases with a small
// detail bonus per item, capped at 1.
func scopeCompleteness(phases []domain.WorkPhase) float64 {
	if len(phases) == 0 {
		return 0
	}
	covered := map[string]bool{}
	items := 0
	for _, p := range phases {
		covered[p.Name] = true
		items += len(p.Items)
	}
	base := 0.0
	for _, cat := range requiredCategories {
		if covered[cat] {
			base++
		}
	}
	base /= float64(len(requiredCategories))
	return clamp01(base + 0.005*float64(items))
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
