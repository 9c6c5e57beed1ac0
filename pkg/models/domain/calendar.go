package domain

import "time"

// RateMultipliers are labor cost multipliers per working-hour class.
type RateMultipliers struct {
	Standard float64
	Overtime float64
	Weekend  float64
	Holiday  float64
	Night    float64
}

// CalendarPeriod maps a date range to rate multipliers and a seasonal
// productivity factor.
type CalendarPeriod struct {
	ID                 string
	Name               string
	StartDate          time.Time
	EndDate            time.Time
	Season             string // winter, spring, summer, fall
	RateMultipliers    RateMultipliers
	ProductivityFactor float64
}

// Contains reports whether t falls inside the period (inclusive start,
// exclusive end).
func (p CalendarPeriod) Contains(t time.Time) bool {
	return !t.Before(p.StartDate) && t.Before(p.EndDate)
}

// LaborRateAdjustment is a trade/skill-specific multiplier keyed by work
// timing. Empty selector fields match anything.
type LaborRateAdjustment struct {
	Trade      string
	SkillLevel string
	TimeOfDay  string // day, night
	DayOfWeek  string // weekday, weekend
	Season     string
	Multiplier float64
}

// LearningCurveTarget selects what a learning curve adjusts.
type LearningCurveTarget string

const (
	ApplyToLaborCost  LearningCurveTarget = "labor_cost"
	ApplyToLaborHours LearningCurveTarget = "labor_hours"
)

// LearningCurve models efficiency gain over repeated work of the same trade,
// in the Wright's-law shape.
type LearningCurve struct {
	ID                  string
	Trade               string
	InitialEfficiency   float64
	FinalEfficiency     float64
	LearningRate        float64 // e.g. 0.85 for an 85% curve
	RepetitionsToFinal  int
	MinimumRepetitions  int
	ApplyTo             LearningCurveTarget
}

// WorkSchedule describes a crew's working pattern.
type WorkSchedule struct {
	Name        string
	HoursPerDay float64
	DaysPerWeek int
	ShiftStart  string // "07:00"
}

// ConstraintEffect enumerates what a schedule constraint does to work in its
// window.
type ConstraintEffect string

const (
	EffectWorkProhibited        ConstraintEffect = "work_prohibited"
	EffectProductivityReduction ConstraintEffect = "productivity_reduction"
)

// ScheduleConstraint is a holiday/weather/permit window that restricts work.
type ScheduleConstraint struct {
	ID                 string
	Type               string // holiday, weather, permit
	StartDate          time.Time
	EndDate            time.Time
	Effect             ConstraintEffect
	ProductivityFactor float64 // used with EffectProductivityReduction
	Description        string
}

// PhasingCalendar bundles everything needed to project phase costs onto real
// calendar time.
type PhasingCalendar struct {
	ID                   string
	Name                 string
	Year                 int
	Periods              []CalendarPeriod
	LaborRateAdjustments []LaborRateAdjustment
	LearningCurves       []LearningCurve
	WorkSchedules        []WorkSchedule
	ScheduleConstraints  []ScheduleConstraint
}

// PeriodFor returns the calendar period covering t, or nil.
func (c *PhasingCalendar) PeriodFor(t time.Time) *CalendarPeriod {
	for i := range c.Periods {
		if c.Periods[i].Contains(t) {
			return &c.Periods[i]
		}
	}
	return nil
}

// ExecutionStatus tracks an execution phase through delivery.
type ExecutionStatus string

const (
	ExecutionPlanned    ExecutionStatus = "planned"
	ExecutionInProgress ExecutionStatus = "in_progress"
	ExecutionComplete   ExecutionStatus = "complete"
)

// ExecutionPhase is one scheduled work phase in an execution plan.
type ExecutionPhase struct {
	PhaseID              string
	Name                 string
	ScheduledStart       time.Time
	ScheduledEnd         time.Time
	CrewSize             int
	Equipment            []string
	MaterialDeliveryDate time.Time
	AdjustedCost         float64
	Status               ExecutionStatus
}

// ResourceRequirement aggregates one resource's demand across a plan.
type ResourceRequirement struct {
	Resource  string
	Kind      string // crew, equipment
	PeakUnits int
	TotalDays float64
}

// CostProjection spans the plan's cost uncertainty.
type CostProjection struct {
	Optimistic  float64
	Likely      float64
	Pessimistic float64
}

// PerformanceMetric is one tracked plan-level KPI.
type PerformanceMetric struct {
	Name   string
	Target float64
	Unit   string
}

// MultiPhaseExecutionPlan lays a selected alternate out on the calendar with
// resources and cost projections.
type MultiPhaseExecutionPlan struct {
	ID                 string
	AlternateID        string
	CalendarID         string
	StartDate          time.Time
	ExecutionPhases    []ExecutionPhase
	ResourcePlanning   []ResourceRequirement
	CostProjection     CostProjection
	PerformanceMetrics []PerformanceMetric
	CreatedAt          time.Time
}
