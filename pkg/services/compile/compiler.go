// Package compile orchestrates the full estimate pipeline: phases, cost
// summary, quality metrics, recommendations and scenario alternatives, all
// from one input snapshot. A compiler instance is cheap; build one per
// session so audit trails never leak across unrelated compilations.
package compile

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/leano777/bidflow/pkg/ids"
	"github.com/leano777/bidflow/pkg/models/domain"
	"github.com/leano777/bidflow/pkg/services/classify"
	"github.com/leano777/bidflow/pkg/services/costing"
	"github.com/leano777/bidflow/pkg/services/phase"
	"github.com/leano777/bidflow/pkg/services/quality"
	"github.com/leano777/bidflow/pkg/services/recommend"
	"github.com/leano777/bidflow/pkg/services/scenario"
)

// ErrInvalidInput tags input-validation failures: these abort compilation.
var ErrInvalidInput = errors.New("invalid estimate input")

// Options parameterizes one compilation.
type Options struct {
	GenerateRecommendations bool
	GenerateAlternatives    bool
	PerformQualityControl   bool
	IncludeAuditTrail       bool
	Rates                   costing.Rates
}

// DefaultOptions enables the full pipeline with standard rates.
func DefaultOptions() Options {
	return Options{
		GenerateRecommendations: true,
		GenerateAlternatives:    true,
		PerformQualityControl:   true,
		IncludeAuditTrail:       true,
		Rates:                   costing.DefaultRates(),
	}
}

// Compiler wires the pipeline services together. All collaborators are
// injected; the zero logger discards events.
type Compiler struct {
	organizer *phase.Organizer
	recommend *recommend.Engine
	scenarios *scenario.Generator
	ids       ids.Provider
	now       func() time.Time
	logger    zerolog.Logger
}

// NewCompiler builds a compiler with the given id source and clock. A nil
// clock means wall time; timestamps only ever land in metadata fields,
// never in cost arithmetic.
func NewCompiler(provider ids.Provider, now func() time.Time, logger zerolog.Logger) *Compiler {
	if now == nil {
		now = time.Now
	}
	classifier := classify.NewKeywordClassifier()
	return &Compiler{
		organizer: phase.NewOrganizer(classifier, provider, phase.DefaultSettings()),
		recommend: recommend.NewEngine(),
		scenarios: scenario.NewGenerator(provider),
		ids:       provider,
		now:       now,
		logger:    logger,
	}
}

// Compile turns priced line items into a complete estimate. Zero items is
// not an error: the result is a flagged minimal estimate. A blank project
// identity is rejected: nothing downstream can attribute the estimate.
func (c *Compiler) Compile(items []domain.EstimateLineItem, project domain.ProjectSummary, opts Options) (est domain.CompleteEstimate, err error) {
	stage := "validate"
	defer func() {
		if r := recover(); r != nil {
			est = domain.CompleteEstimate{}
			err = fmt.Errorf("compile: internal failure in %s stage: %v", stage, r)
		}
	}()

	if project.ID == "" && project.Name == "" {
		return domain.CompleteEstimate{}, fmt.Errorf("%w: project needs an id or name", ErrInvalidInput)
	}
	for i, it := range items {
		if it.Description == "" {
			return domain.CompleteEstimate{}, fmt.Errorf("%w: line item %d has no description", ErrInvalidInput, i)
		}
	}

	now := c.now()
	est = domain.CompleteEstimate{
		ID:        c.ids.NewID("estimate"),
		Project:   project,
		Version:   1,
		Status:    domain.StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}

	stage = "phases"
	phases := c.organizer.Organize(items)
	c.logger.Debug().Int("items", len(items)).Int("phases", len(phases)).Msg("organized phases")

	stage = "costing"
	summary := costing.CalculateCostSummary(phases, &project, opts.Rates)
	est.Phases = phases
	est.CostSummary = summary

	stage = "quality"
	if opts.PerformQualityControl {
		qc := quality.NewController(quality.DefaultSettings(), c.now)
		metrics := qc.Analyze(phases, summary, &project)

		for _, issue := range c.organizer.ValidateSequencing(phases) {
			metrics.Warnings = append(metrics.Warnings, domain.Warning{
				Type:     "sequencing",
				Severity: domain.SeverityHigh,
				Message:  issue,
			})
		}
		metrics.Warnings = append(metrics.Warnings, costing.ValidateCostSummary(summary)...)
		if len(items) == 0 {
			metrics.Warnings = append(metrics.Warnings, domain.Warning{
				Type:     "empty_estimate",
				Severity: domain.SeverityCritical,
				Message:  "no line items supplied; estimate is a placeholder",
			})
		}
		if !opts.IncludeAuditTrail {
			metrics.AuditTrail = nil
		}
		est.Quality = &metrics
	}

	stage = "recommendations"
	if opts.GenerateRecommendations {
		est.Recommendations = c.recommend.Generate(recommend.Snapshot{
			Phases:  phases,
			Summary: summary,
			Quality: est.Quality,
			Project: &project,
		})
	}

	stage = "scenarios"
	if opts.GenerateAlternatives && len(phases) > 0 {
		est.Alternatives = c.scenarios.Generate(phases, summary, &project)
	}

	c.logger.Info().
		Str("estimate_id", est.ID).
		Float64("contract_total", summary.ContractTotal).
		Int("recommendations", len(est.Recommendations)).
		Int("alternatives", len(est.Alternatives)).
		Msg("estimate compiled")
	return est, nil
}

// OrganizeAndCost runs only the phase and costing stages, for callers that
// need a baseline without the rest of the pipeline.
func (c *Compiler) OrganizeAndCost(items []domain.EstimateLineItem, project domain.ProjectSummary, rates costing.Rates) ([]domain.WorkPhase, domain.CostSummary) {
	phases := c.organizer.Organize(items)
	return phases, costing.CalculateCostSummary(phases, &project, rates)
}

// Scenarios prices the fixed scenario table, plus an optional custom
// scenario, against the baseline built from the items.
func (c *Compiler) Scenarios(items []domain.EstimateLineItem, project domain.ProjectSummary, rates costing.Rates, custom *scenario.CustomParams) ([]domain.AlternativeEstimate, error) {
	if project.ID == "" && project.Name == "" {
		return nil, fmt.Errorf("%w: project needs an id or name", ErrInvalidInput)
	}
	phases, summary := c.OrganizeAndCost(items, project, rates)
	if len(phases) == 0 {
		return nil, fmt.Errorf("%w: no line items to derive scenarios from", ErrInvalidInput)
	}

	alts := c.scenarios.Generate(phases, summary, &project)
	if custom != nil {
		alts = append(alts, c.scenarios.GenerateCustom(*custom, phases, summary, &project))
	}
	c.logger.Debug().Int("scenarios", len(alts)).Msg("scenarios generated")
	return alts, nil
}
