// Package calendar projects phase costs onto real calendar time: rate
// multipliers by period, trade-specific labor adjustments, learning curves
// over repeated work, and multi-phase execution planning.
package calendar

import (
	"fmt"
	"time"

	"github.com/leano777/bidflow/pkg/ids"
	"github.com/leano777/bidflow/pkg/models/domain"
)

// Repository is the injected store for calendars and execution plans.
type Repository interface {
	SaveCalendar(c domain.PhasingCalendar)
	Calendar(id string) (domain.PhasingCalendar, bool)
	Calendars() []domain.PhasingCalendar
	SavePlan(p domain.MultiPhaseExecutionPlan)
	Plan(id string) (domain.MultiPhaseExecutionPlan, bool)
	DeletePlan(id string) bool
}

// HourDistribution is the share of labor hours worked in each rate class.
// The fixed split is a deliberate placeholder until schedules drive it;
// override per manager when actual shift data exists.
type HourDistribution struct {
	Standard float64
	Overtime float64
	Weekend  float64
	Holiday  float64
	Night    float64
}

// DefaultHourDistribution is the standard fixed split.
func DefaultHourDistribution() HourDistribution {
	return HourDistribution{
		Standard: 0.75,
		Overtime: 0.15,
		Weekend:  0.05,
		Holiday:  0.02,
		Night:    0.03,
	}
}

// Manager owns calendar construction and schedule-aware cost adjustment.
type Manager struct {
	repo  Repository
	ids   ids.Provider
	hours HourDistribution
	now   func() time.Time
}

// NewManager builds a calendar manager over the given repository.
func NewManager(repo Repository, provider ids.Provider, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{repo: repo, ids: provider, hours: DefaultHourDistribution(), now: now}
}

// SetHourDistribution overrides the default labor-hour split.
func (m *Manager) SetHourDistribution(h HourDistribution) {
	m.hours = h
}

// seasonFactor maps quarters to seasonal productivity.
var seasonFactors = map[string]float64{
	"winter": 0.85,
	"spring": 1.05,
	"summer": 0.95,
	"fall":   1.00,
}

// BuildCalendar creates a year's phasing calendar: quarterly periods with
// the standard rate multipliers and the fixed holiday constraints.
func (m *Manager) BuildCalendar(name string, year int) domain.PhasingCalendar {
	cal := domain.PhasingCalendar{
		ID:   m.ids.NewID("cal"),
		Name: name,
		Year: year,
	}

	quarters := []struct {
		name   string
		season string
		start  time.Month
	}{
		{"Q1", "winter", time.January},
		{"Q2", "spring", time.April},
		{"Q3", "summer", time.July},
		{"Q4", "fall", time.October},
	}
	for _, q := range quarters {
		start := time.Date(year, q.start, 1, 0, 0, 0, 0, time.UTC)
		cal.Periods = append(cal.Periods, domain.CalendarPeriod{
			ID:        m.ids.NewID("period"),
			Name:      fmt.Sprintf("%s %d", q.name, year),
			StartDate: start,
			EndDate:   start.AddDate(0, 3, 0),
			Season:    q.season,
			RateMultipliers: domain.RateMultipliers{
				Standard: 1.0,
				Overtime: 1.5,
				Weekend:  2.0,
				Holiday:  2.5,
				Night:    1.2,
			},
			ProductivityFactor: seasonFactors[q.season],
		})
	}

	cal.ScheduleConstraints = holidayConstraints(year, m.ids)
	cal.WorkSchedules = []domain.WorkSchedule{
		{Name: "standard", HoursPerDay: 8, DaysPerWeek: 5, ShiftStart: "07:00"},
		{Name: "extended", HoursPerDay: 10, DaysPerWeek: 6, ShiftStart: "06:00"},
	}

	m.repo.SaveCalendar(cal)
	return cal
}

// holidayConstraints generates the fixed national-holiday work prohibitions
// for a year.
func holidayConstraints(year int, provider ids.Provider) []domain.ScheduleConstraint {
	holidays := []struct {
		name string
		date time.Time
	}{
		{"New Year's Day", time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"Memorial Day", lastWeekday(year, time.May, time.Monday)},
		{"Independence Day", time.Date(year, time.July, 4, 0, 0, 0, 0, time.UTC)},
		{"Labor Day", nthWeekday(year, time.September, time.Monday, 1)},
		{"Thanksgiving", nthWeekday(year, time.November, time.Thursday, 4)},
		{"Christmas", time.Date(year, time.December, 25, 0, 0, 0, 0, time.UTC)},
	}

	out := make([]domain.ScheduleConstraint, 0, len(holidays))
	for _, h := range holidays {
		out = append(out, domain.ScheduleConstraint{
			ID:          provider.NewID("constraint"),
			Type:        "holiday",
			StartDate:   h.date,
			EndDate:     h.date.AddDate(0, 0, 1),
			Effect:      domain.EffectWorkProhibited,
			Description: h.name,
		})
	}
	return out
}

// nthWeekday returns the nth given weekday of a month.
func nthWeekday(year int, month time.Month, day time.Weekday, n int) time.Time {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for t.Weekday() != day {
		t = t.AddDate(0, 0, 1)
	}
	return t.AddDate(0, 0, 7*(n-1))
}

// lastWeekday returns the last given weekday of a month.
func lastWeekday(year int, month time.Month, day time.Weekday) time.Time {
	t := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	for t.Weekday() != day {
		t = t.AddDate(0, 0, -1)
	}
	return t
}
