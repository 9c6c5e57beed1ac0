package memory

import "github.com/leano777/bidflow/pkg/models/domain"

// ScopeRepository stores base scope trees and their alternates.
type ScopeRepository struct {
	bases      *collection[domain.BaseScopeTree]
	alternates *collection[domain.AlternateScope]
}

// NewScopeRepository builds an empty scope repository.
func NewScopeRepository() *ScopeRepository {
	return &ScopeRepository{
		bases:      newCollection[domain.BaseScopeTree](),
		alternates: newCollection[domain.AlternateScope](),
	}
}

func (r *ScopeRepository) CreateBase(tree domain.BaseScopeTree) error {
	return r.bases.create(tree.ID, tree)
}

func (r *ScopeRepository) Base(id string) (domain.BaseScopeTree, bool) {
	return r.bases.get(id)
}

func (r *ScopeRepository) CreateAlternate(alt domain.AlternateScope) error {
	return r.alternates.create(alt.ID, alt)
}

func (r *ScopeRepository) Alternate(id string) (domain.AlternateScope, bool) {
	return r.alternates.get(id)
}

// AlternatesFor lists a base's alternates in id order.
func (r *ScopeRepository) AlternatesFor(baseID string) []domain.AlternateScope {
	var out []domain.AlternateScope
	for _, alt := range r.alternates.list() {
		if alt.BaseID == baseID {
			out = append(out, alt)
		}
	}
	return out
}

func (r *ScopeRepository) DeleteAlternate(id string) bool {
	return r.alternates.delete(id)
}

// CalendarRepository stores phasing calendars and execution plans.
type CalendarRepository struct {
	calendars *collection[domain.PhasingCalendar]
	plans     *collection[domain.MultiPhaseExecutionPlan]
}

// NewCalendarRepository builds an empty calendar repository.
func NewCalendarRepository() *CalendarRepository {
	return &CalendarRepository{
		calendars: newCollection[domain.PhasingCalendar](),
		plans:     newCollection[domain.MultiPhaseExecutionPlan](),
	}
}

func (r *CalendarRepository) SaveCalendar(c domain.PhasingCalendar) {
	r.calendars.put(c.ID, c)
}

func (r *CalendarRepository) Calendar(id string) (domain.PhasingCalendar, bool) {
	return r.calendars.get(id)
}

func (r *CalendarRepository) Calendars() []domain.PhasingCalendar {
	return r.calendars.list()
}

func (r *CalendarRepository) SavePlan(p domain.MultiPhaseExecutionPlan) {
	r.plans.put(p.ID, p)
}

func (r *CalendarRepository) Plan(id string) (domain.MultiPhaseExecutionPlan, bool) {
	return r.plans.get(id)
}

func (r *CalendarRepository) DeletePlan(id string) bool {
	return r.plans.delete(id)
}
