package calendar

import (
	"testing"
	"time"

	"github.com/leano777/bidflow/pkg/ids"
	"github.com/leano777/bidflow/pkg/models/domain"
	"github.com/leano777/bidflow/pkg/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var calNow = func() time.Time {
	return time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
}

func newCalendarManager() (*Manager, *memory.CalendarRepository) {
	repo := memory.NewCalendarRepository()
	return NewManager(repo, ids.NewSequenceProvider(), calNow), repo
}

func laborPhase(name, category string, seq int, labor float64, hours, days float64) domain.WorkPhase {
	it := domain.EstimateLineItem{
		ID: name + "-item", Description: name, Quantity: 1, Unit: "ls",
		LaborCost: labor, LaborHours: hours, ConfidenceScore: 0.85,
	}
	it.Recalculate()
	p := domain.WorkPhase{
		ID: name, Name: name, Category: category, SequenceOrder: seq,
		DurationDays: days, Items: []domain.EstimateLineItem{it},
	}
	p.Recalculate()
	return p
}

func TestBuildCalendar(t *testing.T) {
	mgr, repo := newCalendarManager()
	cal := mgr.BuildCalendar("2025 phasing", 2025)

	t.Run("four quarterly periods with seasons", func(t *testing.T) {
		require.Len(t, cal.Periods, 4)
		assert.Equal(t, "winter", cal.Periods[0].Season)
		assert.Equal(t, "spring", cal.Periods[1].Season)
		assert.InDelta(t, 0.85, cal.Periods[0].ProductivityFactor, 1e-9)
		assert.InDelta(t, 1.5, cal.Periods[0].RateMultipliers.Overtime, 1e-9)
	})

	t.Run("every day of the year maps to exactly one period", func(t *testing.T) {
		day := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
		for day.Year() == 2025 {
			period := cal.PeriodFor(day)
			require.NotNil(t, period, day.String())
			day = day.AddDate(0, 0, 1)
		}
	})

	t.Run("holiday constraints prohibit work", func(t *testing.T) {
		require.Len(t, cal.ScheduleConstraints, 6)
		byName := map[string]domain.ScheduleConstraint{}
		for _, c := range cal.ScheduleConstraints {
			byName[c.Description] = c
			assert.Equal(t, domain.EffectWorkProhibited, c.Effect)
		}
		assert.Equal(t, time.Date(2025, time.May, 26, 0, 0, 0, 0, time.UTC), byName["Memorial Day"].StartDate)
		assert.Equal(t, time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC), byName["Labor Day"].StartDate)
		assert.Equal(t, time.Date(2025, time.November, 27, 0, 0, 0, 0, time.UTC), byName["Thanksgiving"].StartDate)
	})

	t.Run("calendar is persisted", func(t *testing.T) {
		stored, ok := repo.Calendar(cal.ID)
		require.True(t, ok)
		assert.Equal(t, cal.Name, stored.Name)
	})
}

func TestApplyLearningCurveAdjustments(t *testing.T) {
	mgr, _ := newCalendarManager()
	curve := domain.LearningCurve{
		Trade:              "Interior",
		InitialEfficiency:  1.0,
		FinalEfficiency:    1.25,
		LearningRate:       0.85,
		RepetitionsToFinal: 8,
		MinimumRepetitions: 2,
		ApplyTo:            domain.ApplyToLaborCost,
	}

	repeated := func(n int) []domain.WorkPhase {
		var phases []domain.WorkPhase
		for i := 0; i < n; i++ {
			phases = append(phases, laborPhase("Unit", "Interior", i+1, 10000, 200, 5))
		}
		return phases
	}

	t.Run("labor cost falls monotonically with repetition", func(t *testing.T) {
		adjusted, report := mgr.ApplyLearningCurveAdjustments(repeated(6), []domain.LearningCurve{curve})
		require.Len(t, report, 6)

		for i := 1; i < len(adjusted); i++ {
			assert.LessOrEqual(t, adjusted[i].PhaseTotal, adjusted[i-1].PhaseTotal+1e-9)
		}
		// efficiency climbs toward the final value
		for i := 1; i < len(report); i++ {
			assert.GreaterOrEqual(t, report[i].Efficiency, report[i-1].Efficiency-1e-9)
		}
	})

	t.Run("below the repetition threshold nothing changes", func(t *testing.T) {
		adjusted, report := mgr.ApplyLearningCurveAdjustments(repeated(1), []domain.LearningCurve{curve})
		require.Len(t, report, 1)
		assert.InDelta(t, 10000.0, adjusted[0].PhaseTotal, 1e-9)
		assert.Zero(t, report[0].Savings)
	})

	t.Run("efficiency never exceeds the final value", func(t *testing.T) {
		_, report := mgr.ApplyLearningCurveAdjustments(repeated(20), []domain.LearningCurve{curve})
		for _, adj := range report {
			assert.LessOrEqual(t, adj.Efficiency, curve.FinalEfficiency+1e-9)
			assert.GreaterOrEqual(t, adj.Efficiency, curve.InitialEfficiency-1e-9)
		}
	})

	t.Run("hours target scales hours with cost", func(t *testing.T) {
		hoursCurve := curve
		hoursCurve.ApplyTo = domain.ApplyToLaborHours
		adjusted, _ := mgr.ApplyLearningCurveAdjustments(repeated(6), []domain.LearningCurve{hoursCurve})
		assert.Less(t, adjusted[5].LaborHours(), adjusted[0].LaborHours())
	})

	t.Run("unmatched trades pass through untouched", func(t *testing.T) {
		phases := []domain.WorkPhase{laborPhase("Roof", "Roofing", 1, 8000, 100, 4)}
		adjusted, report := mgr.ApplyLearningCurveAdjustments(phases, []domain.LearningCurve{curve})
		assert.Empty(t, report)
		assert.InDelta(t, 8000.0, adjusted[0].PhaseTotal, 1e-9)
	})

	t.Run("input phases are not mutated", func(t *testing.T) {
		phases := repeated(4)
		_, _ = mgr.ApplyLearningCurveAdjustments(phases, []domain.LearningCurve{curve})
		assert.InDelta(t, 10000.0, phases[3].PhaseTotal, 1e-9)
	})
}

func TestApplyCalendarAdjustments(t *testing.T) {
	mgr, _ := newCalendarManager()
	cal := mgr.BuildCalendar("2025", 2025)

	t.Run("labor is repriced by the blended multiplier and season", func(t *testing.T) {
		phases := []domain.WorkPhase{laborPhase("Trim", "Interior", 6, 10000, 160, 5)}
		start := time.Date(2025, time.April, 7, 0, 0, 0, 0, time.UTC)

		adjusted, report := mgr.ApplyCalendarAdjustments(cal, phases, start)
		require.Len(t, report, 1)
		assert.Equal(t, "spring", report[0].Season)

		// blended = 0.75*1.0 + 0.15*1.5 + 0.05*2.0 + 0.02*2.5 + 0.03*1.2
		blended := 0.75 + 0.225 + 0.10 + 0.05 + 0.036
		expected := 10000 * blended / 1.05
		assert.InDelta(t, expected, adjusted[0].Items[0].LaborCost, 1e-6)
		assert.InDelta(t, expected, report[0].LaborAfter, 1e-6)
	})

	t.Run("trade adjustments apply on top", func(t *testing.T) {
		withTrade := cal
		withTrade.LaborRateAdjustments = []domain.LaborRateAdjustment{
			{Trade: "Interior", Multiplier: 1.10},
		}
		phases := []domain.WorkPhase{laborPhase("Trim", "Interior", 6, 10000, 160, 5)}
		start := time.Date(2025, time.April, 7, 0, 0, 0, 0, time.UTC)

		_, report := mgr.ApplyCalendarAdjustments(withTrade, phases, start)
		require.Len(t, report, 1)
		assert.InDelta(t, report[0].LaborBefore*report[0].BlendedRate/1.05, report[0].LaborAfter, 1e-6)
		assert.Greater(t, report[0].BlendedRate, 1.161) // 1.161 is the untraded blend
	})

	t.Run("phases starting on a holiday slide past it", func(t *testing.T) {
		phases := []domain.WorkPhase{laborPhase("Punch", "Closeout", 8, 2000, 16, 2)}
		start := time.Date(2025, time.July, 4, 0, 0, 0, 0, time.UTC)

		adjusted, _ := mgr.ApplyCalendarAdjustments(cal, phases, start)
		assert.Equal(t, time.Date(2025, time.July, 5, 0, 0, 0, 0, time.UTC), adjusted[0].StartDate)
	})

	t.Run("phases schedule sequentially", func(t *testing.T) {
		phases := []domain.WorkPhase{
			laborPhase("Foundation", "Foundation", 2, 12000, 320, 10),
			laborPhase("Framing", "Framing", 3, 20000, 480, 15),
		}
		start := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

		adjusted, _ := mgr.ApplyCalendarAdjustments(cal, phases, start)
		require.Len(t, adjusted, 2)
		assert.False(t, adjusted[1].StartDate.Before(adjusted[0].EndDate))
	})
}

func TestGenerateComprehensiveCostProjection(t *testing.T) {
	mgr, _ := newCalendarManager()
	cal := mgr.BuildCalendar("2025", 2025)
	cal.LearningCurves = []domain.LearningCurve{{
		Trade:              "Interior",
		InitialEfficiency:  1.0,
		FinalEfficiency:    1.2,
		LearningRate:       0.9,
		RepetitionsToFinal: 6,
		MinimumRepetitions: 2,
		ApplyTo:            domain.ApplyToLaborCost,
	}}

	phases := []domain.WorkPhase{
		laborPhase("Unit A", "Interior", 1, 15000, 300, 10),
		laborPhase("Unit B", "Interior", 2, 15000, 300, 10),
		laborPhase("Unit C", "Interior", 3, 15000, 300, 10),
	}
	start := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	report := mgr.GenerateComprehensiveCostProjection(cal, phases, start)

	assert.InDelta(t, 45000.0, report.BaseTotal, 1e-9)
	assert.Positive(t, report.LearningSavings)
	assert.InDelta(t, report.AdjustedTotal*0.05, report.RiskContingency, 1e-9)
	assert.InDelta(t, report.AdjustedTotal+report.RiskContingency, report.FinalTotal, 1e-9)
	assert.InDelta(t, report.BaseTotal-report.LearningSavings+report.CalendarImpact, report.AdjustedTotal, 1e-6)
	assert.Len(t, report.AdjustedPhases, 3)
}

func TestCreateExecutionPlan(t *testing.T) {
	mgr, repo := newCalendarManager()
	cal := mgr.BuildCalendar("2025", 2025)

	phases := []domain.WorkPhase{
		laborPhase("Framing", "Framing", 3, 20000, 480, 12),
		laborPhase("Foundation", "Foundation", 2, 12000, 320, 10),
	}
	start := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	plan := mgr.CreateExecutionPlan("alt-1", cal, phases, start)

	t.Run("phases run in sequence order", func(t *testing.T) {
		require.Len(t, plan.ExecutionPhases, 2)
		assert.Equal(t, "Foundation", plan.ExecutionPhases[0].Name)
		assert.Equal(t, "Framing", plan.ExecutionPhases[1].Name)
		assert.False(t, plan.ExecutionPhases[1].ScheduledStart.Before(plan.ExecutionPhases[0].ScheduledEnd))
	})

	t.Run("crews are sized from labor hours", func(t *testing.T) {
		// 320 hours over 10 days at 8h/day = 4 workers
		assert.Equal(t, 4, plan.ExecutionPhases[0].CrewSize)
		// 480 hours over 12 days = 5 workers
		assert.Equal(t, 5, plan.ExecutionPhases[1].CrewSize)
	})

	t.Run("material deliveries lead phase starts", func(t *testing.T) {
		for _, ep := range plan.ExecutionPhases {
			assert.Equal(t, ep.ScheduledStart.AddDate(0, 0, -2), ep.MaterialDeliveryDate)
		}
	})

	t.Run("equipment comes from the category table", func(t *testing.T) {
		assert.Contains(t, plan.ExecutionPhases[0].Equipment, "concrete pump")
		assert.Contains(t, plan.ExecutionPhases[1].Equipment, "crane")
	})

	t.Run("resource planning aggregates crew and equipment", func(t *testing.T) {
		byName := map[string]domain.ResourceRequirement{}
		for _, r := range plan.ResourcePlanning {
			byName[r.Resource] = r
		}
		require.Contains(t, byName, "crew")
		assert.Equal(t, 5, byName["crew"].PeakUnits)
		assert.Contains(t, byName, "crane")
	})

	t.Run("cost projection bands around the likely total", func(t *testing.T) {
		assert.InDelta(t, 32000.0, plan.CostProjection.Likely, 1e-9)
		assert.InDelta(t, 32000*0.95, plan.CostProjection.Optimistic, 1e-9)
		assert.InDelta(t, 32000*1.15, plan.CostProjection.Pessimistic, 1e-9)
	})

	t.Run("plan is persisted", func(t *testing.T) {
		stored, ok := repo.Plan(plan.ID)
		require.True(t, ok)
		assert.Equal(t, "alt-1", stored.AlternateID)
	})
}
