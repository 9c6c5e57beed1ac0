package calendar

import (
	"time"

	"github.com/leano777/bidflow/pkg/models/domain"
)

// riskContingencyRate is the fixed reserve added on top of calendar and
// learning adjustments in a comprehensive projection.
const riskContingencyRate = 0.05

// CostProjectionReport composes learning-curve and calendar effects into a
// final projected total.
type CostProjectionReport struct {
	BaseTotal        float64
	LearningSavings  float64
	CalendarImpact   float64 // signed; positive means calendar premiums
	AdjustedTotal    float64
	RiskContingency  float64
	FinalTotal       float64
	LearningDetails  []LearningAdjustment
	CalendarDetails  []CalendarAdjustment
	AdjustedPhases   []domain.WorkPhase
}

// GenerateComprehensiveCostProjection applies learning curves first, then
// calendar adjustments, then the fixed risk contingency.
func (m *Manager) GenerateComprehensiveCostProjection(cal domain.PhasingCalendar, phases []domain.WorkPhase, startDate time.Time) CostProjectionReport {
	base := phasesTotal(phases)

	learned, learningDetails := m.ApplyLearningCurveAdjustments(phases, cal.LearningCurves)
	afterLearning := phasesTotal(learned)

	scheduled, calendarDetails := m.ApplyCalendarAdjustments(cal, learned, startDate)
	adjusted := phasesTotal(scheduled)

	report := CostProjectionReport{
		BaseTotal:       base,
		LearningSavings: base - afterLearning,
		CalendarImpact:  adjusted - afterLearning,
		AdjustedTotal:   adjusted,
		RiskContingency: adjusted * riskContingencyRate,
		LearningDetails: learningDetails,
		CalendarDetails: calendarDetails,
		AdjustedPhases:  scheduled,
	}
	report.FinalTotal = report.AdjustedTotal + report.RiskContingency
	return report
}

func phasesTotal(phases []domain.WorkPhase) float64 {
	t := 0.0
	for _, p := range phases {
		t += p.PhaseTotal
	}
	return t
}
