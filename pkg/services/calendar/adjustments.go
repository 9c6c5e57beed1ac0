package calendar

import (
	"time"

	"github.com/leano777/bidflow/pkg/models/domain"
)

// CalendarAdjustment reports one phase's calendar-driven labor repricing.
type CalendarAdjustment struct {
	PhaseName      string
	Period         string
	Season         string
	LaborBefore    float64
	LaborAfter     float64
	BlendedRate    float64 // effective multiplier across the hour split
	SeasonalFactor float64
}

// ApplyCalendarAdjustments schedules unscheduled phases sequentially from
// startDate, then reprices each phase's labor for its window: the hour
// distribution splits labor across standard/overtime/weekend/holiday/night
// multipliers, trade-specific labor rate adjustments apply on top, and the
// period's seasonal productivity factor scales the result (lower
// productivity costs more). Totals are recomputed; input phases are not
// mutated.
func (m *Manager) ApplyCalendarAdjustments(cal domain.PhasingCalendar, phases []domain.WorkPhase, startDate time.Time) ([]domain.WorkPhase, []CalendarAdjustment) {
	adjusted := domain.ClonePhases(phases)
	var report []CalendarAdjustment

	cursor := startDate
	for i := range adjusted {
		p := &adjusted[i]
		if p.StartDate.IsZero() {
			p.StartDate = skipProhibited(cal, cursor)
			p.EndDate = p.StartDate.AddDate(0, 0, int(p.DurationDays+0.5))
		}
		cursor = p.EndDate

		period := cal.PeriodFor(p.StartDate)
		if period == nil {
			continue
		}

		blended := m.hours.Standard*period.RateMultipliers.Standard +
			m.hours.Overtime*period.RateMultipliers.Overtime +
			m.hours.Weekend*period.RateMultipliers.Weekend +
			m.hours.Holiday*period.RateMultipliers.Holiday +
			m.hours.Night*period.RateMultipliers.Night

		tradeMult := tradeMultiplier(cal.LaborRateAdjustments, p.Category, period.Season)

		seasonal := period.ProductivityFactor
		if seasonal <= 0 {
			seasonal = 1
		}

		before := 0.0
		after := 0.0
		for j := range p.Items {
			before += p.Items[j].LaborCost
			p.Items[j].LaborCost *= blended * tradeMult / seasonal
			after += p.Items[j].LaborCost
		}
		p.Recalculate()

		report = append(report, CalendarAdjustment{
			PhaseName:      p.Name,
			Period:         period.Name,
			Season:         period.Season,
			LaborBefore:    before,
			LaborAfter:     after,
			BlendedRate:    blended * tradeMult,
			SeasonalFactor: seasonal,
		})
	}
	return adjusted, report
}

// tradeMultiplier resolves the labor rate adjustment for a trade and
// season. Empty selector fields on an adjustment match anything; the first
// match wins.
func tradeMultiplier(adjustments []domain.LaborRateAdjustment, trade, season string) float64 {
	for _, adj := range adjustments {
		if adj.Trade != "" && adj.Trade != trade {
			continue
		}
		if adj.Season != "" && adj.Season != season {
			continue
		}
		if adj.Multiplier > 0 {
			return adj.Multiplier
		}
	}
	return 1.0
}

// skipProhibited pushes a start date past any work-prohibited constraint
// window that covers it.
func skipProhibited(cal domain.PhasingCalendar, t time.Time) time.Time {
	moved := true
	for moved {
		moved = false
		for _, c := range cal.ScheduleConstraints {
			if c.Effect != domain.EffectWorkProhibited {
				continue
			}
			if !t.Before(c.StartDate) && t.Before(c.EndDate) {
				t = c.EndDate
				moved = true
			}
		}
	}
	return t
}
