package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leano777/bidflow/pkg/ids"
	"github.com/leano777/bidflow/pkg/models/domain"
	"github.com/leano777/bidflow/pkg/services/costing"
)

func baselinePhases() []domain.WorkPhase {
	phase := domain.WorkPhase{
		ID:            "ph-1",
		Name:          "Framing",
		Category:      "structure",
		SequenceOrder: 2,
		DurationDays:  10,
		Items: []domain.EstimateLineItem{
			{ID: "i1", Description: "frame walls", Quantity: 1, Unit: "ls", MaterialCost: 4000, LaborCost: 5000, EquipmentCost: 1000, LaborHours: 110},
		},
	}
	phase.Recalculate()
	return []domain.WorkPhase{phase}
}

func baseline(t *testing.T, phases []domain.WorkPhase, project *domain.ProjectSummary) domain.CostSummary {
	t.Helper()
	return costing.CalculateCostSummary(phases, project, costing.DefaultRates())
}

func TestGenerate(t *testing.T) {
	g := NewGenerator(ids.NewSequenceProvider())
	project := &domain.ProjectSummary{ID: "p1", Name: "Adu"}
	phases := baselinePhases()
	base := baseline(t, phases, project)

	alts := g.Generate(phases, base, project)
	require.Len(t, alts, 5)

	names := make([]string, len(alts))
	byName := map[string]domain.AlternativeEstimate{}
	for i, alt := range alts {
		names[i] = alt.Name
		byName[alt.Name] = alt
	}
	assert.Equal(t, []string{"value_engineered", "premium_finish", "fast_track", "budget_conscious", "conservative"}, names)

	t.Run("cost variation is relative to the baseline", func(t *testing.T) {
		for _, alt := range alts {
			want := (alt.CostSummary.ContractTotal - base.ContractTotal) / base.ContractTotal
			assert.InDelta(t, want, alt.CostVariation, 1e-9, alt.Name)
		}
		assert.Negative(t, byName["budget_conscious"].CostVariation)
		assert.Positive(t, byName["premium_finish"].CostVariation)
	})

	t.Run("budget scenario prices lowest", func(t *testing.T) {
		for _, alt := range alts {
			assert.LessOrEqual(t, byName["budget_conscious"].CostSummary.ContractTotal, alt.CostSummary.ContractTotal, alt.Name)
		}
	})

	t.Run("fast track compresses the schedule", func(t *testing.T) {
		ft := byName["fast_track"]
		assert.InDelta(t, -0.3, ft.TimeVariation, 1e-9)
		assert.Equal(t, domain.LevelHigher, ft.RiskLevel)
	})

	t.Run("conservative carries bonding", func(t *testing.T) {
		assert.Positive(t, byName["conservative"].CostSummary.Bonding)
		assert.Zero(t, byName["value_engineered"].CostSummary.Bonding)
	})

	t.Run("advantages and tradeoffs become labeled recommendations", func(t *testing.T) {
		ve := byName["value_engineered"]
		require.NotEmpty(t, ve.Recommendations)
		assert.Equal(t, "advantage: lower contract price", ve.Recommendations[0])
		assert.Contains(t, ve.Recommendations, "tradeoff: visible finish downgrade")
	})

	t.Run("baseline phases are not mutated", func(t *testing.T) {
		fresh := baselinePhases()
		g.Generate(fresh, base, project)
		assert.Equal(t, baselinePhases(), fresh)
	})
}

func TestGenerateCustom(t *testing.T) {
	g := NewGenerator(ids.NewSequenceProvider())
	project := &domain.ProjectSummary{ID: "p1", Name: "Adu"}
	phases := baselinePhases()
	base := baseline(t, phases, project)

	t.Run("premium quality with low risk tolerance", func(t *testing.T) {
		alt := g.GenerateCustom(CustomParams{QualityLevel: "premium", RiskTolerance: "low"}, phases, base, project)
		assert.Equal(t, "custom", alt.Name)
		assert.Equal(t, domain.LevelHigher, alt.QualityLevel)
		assert.Equal(t, domain.LevelLower, alt.RiskLevel)
		assert.Greater(t, alt.CostSummary.ContractTotal, base.ContractTotal)
	})

	t.Run("economy quality prices below the baseline", func(t *testing.T) {
		alt := g.GenerateCustom(CustomParams{QualityLevel: "economy", RiskTolerance: "medium"}, phases, base, project)
		assert.Equal(t, domain.LevelLower, alt.QualityLevel)
		assert.Less(t, alt.CostSummary.ContractTotal, base.ContractTotal)
	})

	t.Run("budget ceiling scales the scenario onto the budget", func(t *testing.T) {
		budget := base.ContractTotal * 0.8
		alt := g.GenerateCustom(CustomParams{QualityLevel: "premium", RiskTolerance: "high", MaxBudget: budget}, phases, base, project)
		assert.InDelta(t, budget, alt.CostSummary.ContractTotal, 0.01)
		assert.Contains(t, alt.Description, "scaled to")
	})
}
