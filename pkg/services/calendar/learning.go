package calendar

import (
	"math"

	"github.com/leano777/bidflow/pkg/models/domain"
)

// LearningAdjustment reports one phase's learning-curve effect.
type LearningAdjustment struct {
	PhaseName  string
	Trade      string
	Repetition int
	Efficiency float64
	Savings    float64 // dollars of labor cost avoided
}

// curveEfficiency interpolates a Wright's-curve-style efficiency for a
// repetition count. Below the minimum repetition threshold the initial
// efficiency applies unchanged; the result is clamped to
// [initial, final].
func curveEfficiency(curve domain.LearningCurve, repetitions int) float64 {
	if repetitions < curve.MinimumRepetitions {
		return curve.InitialEfficiency
	}
	if curve.RepetitionsToFinal <= 1 {
		return curve.FinalEfficiency
	}
	progress := math.Log(float64(repetitions)) / math.Log(float64(curve.RepetitionsToFinal))
	if progress > 1 {
		progress = 1
	}
	if progress < 0 {
		progress = 0
	}
	exponent := math.Abs(math.Log(curve.LearningRate) / math.Log(2))
	eff := curve.InitialEfficiency + (curve.FinalEfficiency-curve.InitialEfficiency)*math.Pow(progress, exponent)

	lo, hi := curve.InitialEfficiency, curve.FinalEfficiency
	if hi < lo {
		lo, hi = hi, lo
	}
	if eff < lo {
		return lo
	}
	if eff > hi {
		return hi
	}
	return eff
}

// ApplyLearningCurveAdjustments walks phases in order, counting repetitions
// per trade, and once a curve's minimum repetition threshold is met scales
// the phase's labor cost or labor hours by the efficiency gain. Efficiency
// is a productivity multiplier: doubling efficiency halves the adjusted
// quantity. The input phases are not mutated.
func (m *Manager) ApplyLearningCurveAdjustments(phases []domain.WorkPhase, curves []domain.LearningCurve) ([]domain.WorkPhase, []LearningAdjustment) {
	adjusted := domain.ClonePhases(phases)
	var report []LearningAdjustment

	curveByTrade := map[string]domain.LearningCurve{}
	for _, c := range curves {
		curveByTrade[c.Trade] = c
	}
	repetitions := map[string]int{}

	for i := range adjusted {
		p := &adjusted[i]
		curve, ok := curveByTrade[p.Category]
		if !ok {
			continue
		}
		repetitions[p.Category]++
		rep := repetitions[p.Category]

		eff := curveEfficiency(curve, rep)
		if eff <= 0 {
			continue
		}
		factor := curve.InitialEfficiency / eff

		before := p.PhaseTotal
		for j := range p.Items {
			switch curve.ApplyTo {
			case domain.ApplyToLaborHours:
				p.Items[j].LaborHours *= factor
				p.Items[j].LaborCost *= factor
			default:
				p.Items[j].LaborCost *= factor
			}
		}
		p.Recalculate()

		report = append(report, LearningAdjustment{
			PhaseName:  p.Name,
			Trade:      p.Category,
			Repetition: rep,
			Efficiency: eff,
			Savings:    before - p.PhaseTotal,
		})
	}
	return adjusted, report
}
