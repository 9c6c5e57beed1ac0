// Package scenario derives deterministic alternative pricing scenarios from
// a baseline phase/cost snapshot.
package scenario

import (
	"fmt"

	"github.com/leano777/bidflow/pkg/ids"
	"github.com/leano777/bidflow/pkg/models/domain"
	"github.com/leano777/bidflow/pkg/services/costing"
)

// definition is one named scenario's fixed adjustment bundle.
type definition struct {
	Name         string
	Description  string
	Material     float64
	Labor        float64
	Equipment    float64
	Duration     float64
	Rates        costing.Rates
	QualityLevel domain.OrdinalLevel
	RiskLevel    domain.OrdinalLevel
	Advantages   []string
	Tradeoffs    []string
}

// definitions is the fixed scenario table, in generation order.
var definitions = []definition{
	{
		Name:        "value_engineered",
		Description: "Substitutes premium materials for functional equivalents while keeping skilled labor.",
		Material:    0.85, Labor: 1.05, Equipment: 0.95, Duration: 1.05,
		Rates:        costing.Rates{OverheadRate: 0.15, GeneralConditionsRate: 0.05, MarkupRate: 0.18, ContingencyRate: 0.05, BondingRate: 0.015},
		QualityLevel: domain.LevelLower,
		RiskLevel:    domain.LevelSame,
		Advantages:   []string{"lower contract price", "same functional scope", "easier client approval"},
		Tradeoffs:    []string{"visible finish downgrade", "slightly longer schedule"},
	},
	{
		Name:        "premium_finish",
		Description: "Upgrades finishes and fixtures throughout, with the labor premium to install them.",
		Material:    1.35, Labor: 1.15, Equipment: 1.10, Duration: 1.10,
		Rates:        costing.Rates{OverheadRate: 0.15, GeneralConditionsRate: 0.05, MarkupRate: 0.22, ContingencyRate: 0.05, BondingRate: 0.015},
		QualityLevel: domain.LevelHigher,
		RiskLevel:    domain.LevelSame,
		Advantages:   []string{"higher resale value", "premium materials", "stronger warranty position"},
		Tradeoffs:    []string{"significant price increase", "longer lead times"},
	},
	{
		Name:        "fast_track",
		Description: "Compresses the schedule with overtime and parallel crews.",
		Material:    1.10, Labor: 1.30, Equipment: 1.20, Duration: 0.70,
		Rates:        costing.Rates{OverheadRate: 0.16, GeneralConditionsRate: 0.06, MarkupRate: 0.20, ContingencyRate: 0.07, BondingRate: 0.015},
		QualityLevel: domain.LevelSame,
		RiskLevel:    domain.LevelHigher,
		Advantages:   []string{"30% schedule reduction", "earlier occupancy"},
		Tradeoffs:    []string{"overtime labor premium", "tighter coordination risk", "higher contingency"},
	},
	{
		Name:        "budget_conscious",
		Description: "Minimum-cost rendition: economy materials, lean crews, reduced equipment.",
		Material:    0.80, Labor: 0.95, Equipment: 0.90, Duration: 1.15,
		Rates:        costing.Rates{OverheadRate: 0.13, GeneralConditionsRate: 0.04, MarkupRate: 0.16, ContingencyRate: 0.04, BondingRate: 0.015},
		QualityLevel: domain.LevelLower,
		RiskLevel:    domain.LevelHigher,
		Advantages:   []string{"lowest contract price"},
		Tradeoffs:    []string{"economy finishes", "longer schedule", "thin margins for surprises"},
	},
	{
		Name:        "conservative",
		Description: "Adds pricing headroom and contingency for uncertain scope.",
		Material:    1.05, Labor: 1.10, Equipment: 1.05, Duration: 1.10,
		Rates:        costing.Rates{OverheadRate: 0.17, GeneralConditionsRate: 0.06, MarkupRate: 0.22, ContingencyRate: 0.08, BondingRate: 0.015, IncludeBonding: true},
		QualityLevel: domain.LevelSame,
		RiskLevel:    domain.LevelLower,
		Advantages:   []string{"strong cost protection", "bonded", "room for unknowns"},
		Tradeoffs:    []string{"higher price", "may price out of competitive range"},
	},
}

// Generator derives alternative estimates from a baseline.
type Generator struct {
	ids ids.Provider
}

// NewGenerator builds a generator with the given id source.
func NewGenerator(provider ids.Provider) *Generator {
	return &Generator{ids: provider}
}

// Generate produces the five fixed scenarios against the baseline, in table
// order.
func (g *Generator) Generate(phases []domain.WorkPhase, baseline domain.CostSummary, project *domain.ProjectSummary) []domain.AlternativeEstimate {
	out := make([]domain.AlternativeEstimate, 0, len(definitions))
	for _, def := range definitions {
		out = append(out, g.apply(def, phases, baseline, project))
	}
	return out
}

func (g *Generator) apply(def definition, phases []domain.WorkPhase, baseline domain.CostSummary, project *domain.ProjectSummary) domain.AlternativeEstimate {
	adjusted, summary := costing.ApplyCostAdjustments(phases, project, def.Rates, costing.Adjustments{
		MaterialMultiplier:  def.Material,
		LaborMultiplier:     def.Labor,
		EquipmentMultiplier: def.Equipment,
	})

	modified := make([]string, 0, len(adjusted))
	for i := range adjusted {
		adjusted[i].DurationDays *= def.Duration
		modified = append(modified, adjusted[i].Name)
	}

	alt := domain.AlternativeEstimate{
		ID:             g.ids.NewID("scenario"),
		Name:           def.Name,
		Description:    def.Description,
		TimeVariation:  def.Duration - 1,
		QualityLevel:   def.QualityLevel,
		RiskLevel:      def.RiskLevel,
		ModifiedPhases: modified,
		CostSummary:    summary,
	}
	if baseline.ContractTotal > 0 {
		alt.CostVariation = (summary.ContractTotal - baseline.ContractTotal) / baseline.ContractTotal
	}
	for _, a := range def.Advantages {
		alt.Recommendations = append(alt.Recommendations, "advantage: "+a)
	}
	for _, t := range def.Tradeoffs {
		alt.Recommendations = append(alt.Recommendations, "tradeoff: "+t)
	}
	return alt
}

// CustomParams drives a parameterized scenario.
type CustomParams struct {
	MaxBudget     float64 // 0 means unconstrained
	RiskTolerance string  // low, medium, high
	QualityLevel  string  // economy, standard, premium
}

// GenerateCustom builds one scenario from the caller's budget, risk and
// quality targets.
func (g *Generator) GenerateCustom(params CustomParams, phases []domain.WorkPhase, baseline domain.CostSummary, project *domain.ProjectSummary) domain.AlternativeEstimate {
	def := definition{
		Name:        "custom",
		Description: fmt.Sprintf("Custom scenario: %s quality, %s risk tolerance", params.QualityLevel, params.RiskTolerance),
		Material:    1.0, Labor: 1.0, Equipment: 1.0, Duration: 1.0,
		Rates:        costing.DefaultRates(),
		QualityLevel: domain.LevelSame,
		RiskLevel:    domain.LevelSame,
	}

	switch params.QualityLevel {
	case "economy":
		def.Material = 0.85
		def.QualityLevel = domain.LevelLower
	case "premium":
		def.Material = 1.30
		def.Labor = 1.10
		def.QualityLevel = domain.LevelHigher
	}

	switch params.RiskTolerance {
	case "low":
		def.Rates.ContingencyRate = 0.08
		def.RiskLevel = domain.LevelLower
	case "high":
		def.Rates.ContingencyRate = 0.03
		def.RiskLevel = domain.LevelHigher
	}

	alt := g.apply(def, phases, baseline, project)

	// Scale all three cost multipliers down proportionally when the
	// scenario prices over the ceiling.
	if params.MaxBudget > 0 && alt.CostSummary.ContractTotal > params.MaxBudget {
		scale := params.MaxBudget / alt.CostSummary.ContractTotal
		def.Material *= scale
		def.Labor *= scale
		def.Equipment *= scale
		def.Description += fmt.Sprintf(", scaled to $%.0f budget", params.MaxBudget)
		alt = g.apply(def, phases, baseline, project)
	}
	alt.Name = "custom"
	return alt
}
