package calendar

import (
	"math"
	"sort"
	"time"

	"github.com/leano777/bidflow/pkg/models/domain"
)

// materialDeliveryLeadDays is how far ahead of phase start deliveries are
// scheduled.
const materialDeliveryLeadDays = 2

// phaseEquipment is the static category → equipment needs table.
var phaseEquipment = map[string][]string{
	"Site Preparation": {"excavator", "skid steer", "dump truck"},
	"Foundation":       {"concrete pump", "plate compactor"},
	"Framing":          {"forklift", "crane"},
	"Roofing":          {"roofing hoist", "compressor"},
	"Systems":          {"scissor lift"},
	"Interior":         {"drywall lift"},
	"Exterior":         {"boom lift", "scaffolding"},
	"Closeout":         {"dumpster"},
}

// CreateExecutionPlan lays phases out sequentially from startDate, sizes
// crews from labor hours, pulls equipment from the category table and
// schedules material deliveries ahead of each phase. The plan is stored in
// the repository.
func (m *Manager) CreateExecutionPlan(alternateID string, cal domain.PhasingCalendar, phases []domain.WorkPhase, startDate time.Time) domain.MultiPhaseExecutionPlan {
	plan := domain.MultiPhaseExecutionPlan{
		ID:          m.ids.NewID("plan"),
		AlternateID: alternateID,
		CalendarID:  cal.ID,
		StartDate:   startDate,
		CreatedAt:   m.now(),
	}

	ordered := domain.ClonePhases(phases)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SequenceOrder < ordered[j].SequenceOrder
	})

	cursor := skipProhibited(cal, startDate)
	likely := 0.0
	for _, p := range ordered {
		days := p.DurationDays
		if days < 1 {
			days = 1
		}
		start := skipProhibited(cal, cursor)
		end := start.AddDate(0, 0, int(days+0.5))

		crew := int(math.Ceil(p.LaborHours() / (days * 8)))
		if crew < 1 {
			crew = 1
		}

		plan.ExecutionPhases = append(plan.ExecutionPhases, domain.ExecutionPhase{
			PhaseID:              p.ID,
			Name:                 p.Name,
			ScheduledStart:       start,
			ScheduledEnd:         end,
			CrewSize:             crew,
			Equipment:            phaseEquipment[p.Name],
			MaterialDeliveryDate: start.AddDate(0, 0, -materialDeliveryLeadDays),
			AdjustedCost:         p.PhaseTotal,
			Status:               domain.ExecutionPlanned,
		})
		likely += p.PhaseTotal
		cursor = end
	}

	plan.ResourcePlanning = aggregateResources(plan.ExecutionPhases)
	plan.CostProjection = domain.CostProjection{
		Optimistic:  likely * 0.95,
		Likely:      likely,
		Pessimistic: likely * 1.15,
	}
	plan.PerformanceMetrics = []domain.PerformanceMetric{
		{Name: "schedule_adherence", Target: 0.9, Unit: "fraction"},
		{Name: "cost_variance", Target: 0.05, Unit: "fraction"},
		{Name: "rework_rate", Target: 0.02, Unit: "fraction"},
	}

	m.repo.SavePlan(plan)
	return plan
}

// aggregateResources rolls crew and equipment demand up across the plan.
func aggregateResources(phases []domain.ExecutionPhase) []domain.ResourceRequirement {
	type usage struct {
		kind  string
		peak  int
		days  float64
	}
	agg := map[string]*usage{}

	for _, ep := range phases {
		days := ep.ScheduledEnd.Sub(ep.ScheduledStart).Hours() / 24

		crew := agg["crew"]
		if crew == nil {
			crew = &usage{kind: "crew"}
			agg["crew"] = crew
		}
		if ep.CrewSize > crew.peak {
			crew.peak = ep.CrewSize
		}
		crew.days += days

		for _, eq := range ep.Equipment {
			u := agg[eq]
			if u == nil {
				u = &usage{kind: "equipment", peak: 1}
				agg[eq] = u
			}
			u.days += days
		}
	}

	names := make([]string, 0, len(agg))
	for name := range agg {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]domain.ResourceRequirement, 0, len(names))
	for _, name := range names {
		u := agg[name]
		out = append(out, domain.ResourceRequirement{
			Resource:  name,
			Kind:      u.kind,
			PeakUnits: u.peak,
			TotalDays: u.days,
		})
	}
	return out
}
