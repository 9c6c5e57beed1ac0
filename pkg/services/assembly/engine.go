package assembly

import (
	"strings"

	"github.com/leano777/bidflow/pkg/ids"
	"github.com/leano777/bidflow/pkg/models/domain"
	"github.com/leano777/bidflow/pkg/services/classify"
)

// matchThreshold is the minimum word-overlap score for a catalog match;
// below it the engine degrades to a generic assembly.
const matchThreshold = 0.3

// Engine performs scope→assembly mapping and bottom-up costing.
type Engine struct {
	catalog    []domain.CostAssembly
	classifier classify.Classifier
	ids        ids.Provider
	ohpRate    float64
}

// NewEngine builds a pricing engine over a catalog. A nil catalog gets the
// built-in library.
func NewEngine(catalog []domain.CostAssembly, classifier classify.Classifier, provider ids.Provider) *Engine {
	if catalog == nil {
		catalog = BuiltinCatalog()
	}
	return &Engine{
		catalog:    catalog,
		classifier: classifier,
		ids:        provider,
		ohpRate:    defaultOverheadProfitRate,
	}
}

// Match is the result of mapping one scope line to an assembly.
type Match struct {
	Assembly domain.CostAssembly
	Score    float64
	Generic  bool // true when no catalog entry cleared the threshold
}

// MapScopeToAssembly scores every catalog assembly by word overlap against
// the scope line and returns the best match above threshold. A miss is not
// an error: the engine synthesizes a generic assembly for the inferred
// category with a lowered confidence.
func (e *Engine) MapScopeToAssembly(scopeLine string) Match {
	scopeTokens := tokenize(scopeLine)

	best := Match{Score: 0}
	for _, a := range e.catalog {
		score := overlapScore(scopeTokens, tokenize(a.Description+" "+a.Category))
		if score > best.Score {
			best = Match{Assembly: a, Score: score}
		}
	}
	if best.Score >= matchThreshold {
		return best
	}

	inferred := e.classifier.Classify(scopeLine)
	return Match{
		Assembly: genericAssembly(inferred.Category),
		Score:    best.Score,
		Generic:  true,
	}
}

// overlapScore is the fraction of scope tokens found in the assembly text.
func overlapScore(scope, assembly []string) float64 {
	if len(scope) == 0 {
		return 0
	}
	set := map[string]bool{}
	for _, t := range assembly {
		set[t] = true
	}
	hits := 0
	for _, t := range scope {
		if set[t] {
			hits++
		}
	}
	return float64(hits) / float64(len(scope))
}

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "of": true,
	"at": true, "in": true, "on": true, "to": true, "per": true,
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
	var out []string
	for _, f := range fields {
		if len(f) < 3 || stopwords[f] {
			continue
		}
		out = append(out, f)
	}
	return out
}

// genericAssembly synthesizes a minimal assembly for an inferred category:
// default labor rate, 10% waste allowance, 2-person crew.
func genericAssembly(category string) domain.CostAssembly {
	return domain.CostAssembly{
		Code:        "generic",
		Category:    category,
		Description: "generic " + category + " work",
		Unit:        "ea",
		Labor: domain.LaborComponent{
			CrewSize:    genericCrewSize,
			HoursPerDay: 8,
			SkillMix: []domain.SkillAllocation{
				{Role: "journeyman", Share: 1.0, HourlyRate: genericLaborRate},
			},
		},
		Materials: []domain.MaterialComponent{
			{Name: "allowance", QuantityPerUnit: 1.0, UnitCost: 25, WasteFactor: genericWasteFactor},
		},
		ProductivityRate: 40,
	}
}

// wasteAllowanceRate is the small extra allowance added on top of per-line
// waste factors.
const wasteAllowanceRate = 0.02

// ComputeDetailedBreakdown does bottom-up costing of a quantity against an
// assembly: labor from productivity and skill mix, materials with waste,
// equipment with mobilization, then OH&P on direct cost.
func (e *Engine) ComputeDetailedBreakdown(m Match, quantity float64) domain.LineItemBreakdown {
	a := m.Assembly
	b := domain.LineItemBreakdown{
		AssemblyCode: a.Code,
		Category:     a.Category,
		Quantity:     quantity,
		Unit:         a.Unit,
		LaborBySkill: map[string]float64{},
	}

	if a.ProductivityRate > 0 {
		crewDays := quantity / a.ProductivityRate
		b.LaborHours = crewDays * float64(a.Labor.CrewSize) * a.Labor.HoursPerDay
	}
	for _, skill := range a.Labor.SkillMix {
		cost := b.LaborHours * skill.Share * skill.HourlyRate
		b.LaborBySkill[skill.Role] = cost
		b.LaborCost += cost
	}

	materialSubtotal := 0.0
	for _, mat := range a.Materials {
		materialSubtotal += mat.QuantityPerUnit * quantity * mat.UnitCost * (1 + mat.WasteFactor)
	}
	b.WasteAllowance = materialSubtotal * wasteAllowanceRate
	b.MaterialCost = materialSubtotal + b.WasteAllowance

	for _, eq := range a.Equipment {
		hours := eq.HoursPerUnit * quantity
		cost := hours * eq.HourlyRate
		if eq.OperatorRate > 0 {
			cost += hours * eq.OperatorRate
		}
		b.EquipmentCost += cost
		b.Mobilization += eq.MobilizationCost
	}
	b.EquipmentCost += b.Mobilization

	direct := b.LaborCost + b.MaterialCost + b.EquipmentCost
	b.OverheadProfit = direct * e.ohpRate
	b.TotalCost = direct + b.OverheadProfit
	if quantity > 0 {
		b.UnitRate = b.TotalCost / quantity
	}

	b.Confidence = breakdownConfidence(m)
	return b
}

// breakdownConfidence grades the costing: strong catalog matches price with
// high confidence, generic fallbacks are explicitly discounted.
func breakdownConfidence(m Match) float64 {
	if m.Generic {
		return 0.45
	}
	conf := 0.6 + m.Score*0.35
	if conf > 0.95 {
		conf = 0.95
	}
	return conf
}

// PriceScopeLine maps one scope line and prices it into an estimate line
// item ready for phase organization.
func (e *Engine) PriceScopeLine(scopeLine string, quantity float64, unit string) domain.EstimateLineItem {
	m := e.MapScopeToAssembly(scopeLine)
	b := e.ComputeDetailedBreakdown(m, quantity)

	item := domain.EstimateLineItem{
		ID:              e.ids.NewID("item"),
		Description:     scopeLine,
		Quantity:        quantity,
		Unit:            unit,
		MaterialCost:    b.MaterialCost,
		LaborCost:       b.LaborCost + b.OverheadProfit, // OH&P carried with labor for line-level pricing
		EquipmentCost:   b.EquipmentCost,
		ConfidenceScore: b.Confidence,
		WasteFactor:     wasteAllowanceRate,
		LaborHours:      b.LaborHours,
	}
	if unit == "" {
		item.Unit = b.Unit
	}
	if m.Generic {
		item.RiskFactors = append(item.RiskFactors, "priced from generic assembly")
	}
	item.Recalculate()
	return item
}
