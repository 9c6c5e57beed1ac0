package recommend

import (
	"testing"

	"github.com/leano777/bidflow/pkg/models/domain"
	"github.com/leano777/bidflow/pkg/services/costing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotWith(rates costing.Rates, phases []domain.WorkPhase) Snapshot {
	summary := costing.CalculateCostSummary(phases, nil, rates)
	return Snapshot{Phases: phases, Summary: summary}
}

func phaseWithItem(name string, seq int, material, labor, equipment float64, conf float64, days float64) domain.WorkPhase {
	it := domain.EstimateLineItem{
		ID: name + "-item", Description: name + " work", Quantity: 1, Unit: "ls",
		MaterialCost: material, LaborCost: labor, EquipmentCost: equipment,
		ConfidenceScore: conf,
	}
	it.Recalculate()
	p := domain.WorkPhase{
		Name: name, SequenceOrder: seq, DurationDays: days,
		RiskLevel: domain.RiskLow, Items: []domain.EstimateLineItem{it},
	}
	p.Recalculate()
	return p
}

func TestGenerate(t *testing.T) {
	engine := NewEngine()

	t.Run("balanced estimate triggers nothing", func(t *testing.T) {
		phases := []domain.WorkPhase{
			phaseWithItem("Foundation", 2, 3000, 4000, 500, 0.9, 4),
			phaseWithItem("Interior", 6, 1000, 1000, 500, 0.85, 3),
		}
		recs := engine.Generate(snapshotWith(costing.DefaultRates(), phases))
		assert.Empty(t, recs)
	})

	t.Run("material heavy estimate suggests negotiation", func(t *testing.T) {
		phases := []domain.WorkPhase{
			phaseWithItem("Foundation", 2, 9000, 1000, 0, 0.9, 4),
		}
		recs := engine.Generate(snapshotWith(costing.DefaultRates(), phases))

		require.NotEmpty(t, recs)
		found := false
		for _, r := range recs {
			if r.Title == "Negotiate material pricing" {
				found = true
				assert.Equal(t, domain.CategoryCostOptimization, r.Category)
				assert.Positive(t, r.Impact.CostSavings)
			}
		}
		assert.True(t, found)
	})

	t.Run("missing contingency is critical and sorts first", func(t *testing.T) {
		rates := costing.DefaultRates()
		rates.ContingencyRate = 0
		rates.MarkupRate = 0.10
		phases := []domain.WorkPhase{
			phaseWithItem("Foundation", 2, 4000, 5000, 0, 0.9, 4),
		}
		recs := engine.Generate(snapshotWith(rates, phases))

		require.GreaterOrEqual(t, len(recs), 2)
		assert.Equal(t, "Carry a contingency", recs[0].Title)
		assert.Equal(t, domain.PriorityCritical, recs[0].Priority)
		for i := 1; i < len(recs); i++ {
			assert.GreaterOrEqual(t, recs[i-1].Priority.Rank(), recs[i].Priority.Rank())
		}
	})

	t.Run("three high risk phases call for a workshop", func(t *testing.T) {
		phases := []domain.WorkPhase{
			phaseWithItem("Site Preparation", 1, 1000, 2000, 0, 0.9, 2),
			phaseWithItem("Foundation", 2, 3000, 4000, 0, 0.9, 4),
			phaseWithItem("Framing", 3, 3000, 4000, 0, 0.9, 5),
		}
		for i := range phases {
			phases[i].RiskLevel = domain.RiskHigh
		}
		recs := engine.Generate(snapshotWith(costing.DefaultRates(), phases))

		found := false
		for _, r := range recs {
			if r.Title == "Resolve high-risk phases before bid" {
				found = true
				assert.Equal(t, domain.PriorityCritical, r.Priority)
			}
		}
		assert.True(t, found)
	})

	t.Run("labor heavy work suggests prefabrication", func(t *testing.T) {
		phases := []domain.WorkPhase{
			phaseWithItem("Framing", 3, 2000, 8000, 0, 0.9, 5),
		}
		recs := engine.Generate(snapshotWith(costing.DefaultRates(), phases))

		found := false
		for _, r := range recs {
			if r.Title == "Evaluate prefabrication" {
				found = true
				assert.InDelta(t, 800.0, r.Impact.CostSavings, 1e-9)
			}
		}
		assert.True(t, found)
	})

	t.Run("long schedules suggest compression", func(t *testing.T) {
		phases := []domain.WorkPhase{
			phaseWithItem("Foundation", 2, 3500, 4500, 0, 0.9, 40),
			phaseWithItem("Framing", 3, 3500, 4500, 0, 0.9, 35),
		}
		recs := engine.Generate(snapshotWith(costing.DefaultRates(), phases))

		found := false
		for _, r := range recs {
			if r.Title == "Overlap trade sequences" {
				found = true
				assert.InDelta(t, 75.0*0.12, r.Impact.TimeReductionDays, 1e-9)
			}
		}
		assert.True(t, found)
	})

	t.Run("identical snapshots yield identical output", func(t *testing.T) {
		phases := []domain.WorkPhase{
			phaseWithItem("Foundation", 2, 9000, 1000, 0, 0.4, 4),
			phaseWithItem("Framing", 3, 8000, 1000, 0, 0.4, 70),
		}
		first := engine.Generate(snapshotWith(costing.DefaultRates(), phases))
		second := engine.Generate(snapshotWith(costing.DefaultRates(), phases))
		assert.Equal(t, first, second)
	})
}
