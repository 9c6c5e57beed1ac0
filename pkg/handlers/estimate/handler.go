package estimate

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/leano777/bidflow/pkg/models/api"
	"github.com/leano777/bidflow/pkg/models/domain"
	"github.com/leano777/bidflow/pkg/services/assembly"
	"github.com/leano777/bidflow/pkg/services/compile"
	"github.com/leano777/bidflow/pkg/services/scenario"
	"github.com/rs/zerolog"
)

type Handler struct {
	compiler *compile.Compiler
	assembly *assembly.Engine
}

func NewHandler(compiler *compile.Compiler, engine *assembly.Engine) *Handler {
	return &Handler{
		compiler: compiler,
		assembly: engine,
	}
}

// Compile accepts priced line items and returns the full compiled estimate.
func (h *Handler) Compile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.CompileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, logger, http.StatusBadRequest, "malformed request body")
		return
	}

	items := make([]domain.EstimateLineItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, toDomainItem(it))
	}

	est, err := h.compiler.Compile(items, toDomainProject(req.Project), toOptions(req.Options))
	if err != nil {
		if errors.Is(err, compile.ErrInvalidInput) {
			writeError(w, logger, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error().Err(err).Str("project", req.Project.ID).Msg("compilation failed")
		writeError(w, logger, http.StatusInternalServerError, "compilation failed")
		return
	}

	if err := json.NewEncoder(w).Encode(est); err != nil {
		logger.Error().
			Err(err).
			Str("project", req.Project.ID).
			Msg("failed to encode estimate")
	}
}

// Scenarios prices the fixed scenario table against a baseline built from
// the submitted items, plus an optional custom scenario, and names the
// winner per criterion.
func (h *Handler) Scenarios(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.ScenariosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, logger, http.StatusBadRequest, "malformed request body")
		return
	}

	items := make([]domain.EstimateLineItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, toDomainItem(it))
	}

	var custom *scenario.CustomParams
	if req.Custom != nil {
		custom = &scenario.CustomParams{
			MaxBudget:     req.Custom.MaxBudget,
			RiskTolerance: req.Custom.RiskTolerance,
			QualityLevel:  req.Custom.QualityLevel,
		}
	}

	alts, err := h.compiler.Scenarios(items, toDomainProject(req.Project), toOptions(req.Options).Rates, custom)
	if err != nil {
		if errors.Is(err, compile.ErrInvalidInput) {
			writeError(w, logger, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error().Err(err).Str("project", req.Project.ID).Msg("scenario generation failed")
		writeError(w, logger, http.StatusInternalServerError, "scenario generation failed")
		return
	}

	response := struct {
		Scenarios  []domain.AlternativeEstimate `json:"scenarios"`
		Comparison scenario.Comparison          `json:"comparison"`
	}{
		Scenarios:  alts,
		Comparison: scenario.Compare(alts),
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode scenarios")
	}
}

// PriceScope matches free-text scope lines to cost assemblies and prices
// each one bottom-up.
func (h *Handler) PriceScope(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.PriceScopeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, logger, http.StatusBadRequest, "malformed request body")
		return
	}

	items := make([]domain.EstimateLineItem, 0, len(req.Lines))
	for _, line := range req.Lines {
		items = append(items, h.assembly.PriceScopeLine(line.Text, line.Quantity, line.Unit))
	}

	if err := json.NewEncoder(w).Encode(items); err != nil {
		logger.Error().Err(err).Msg("failed to encode priced scope")
	}
}

// Decompose reverse-engineers a composite unit rate into its labor,
// material, equipment and overhead components.
func (h *Handler) Decompose(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.DecomposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, logger, http.StatusBadRequest, "malformed request body")
		return
	}

	analysis, err := h.assembly.ReverseEngineerCompositeRate(req.CompositeRate, req.Unit, req.Category, req.AssemblyCode)
	if err != nil {
		writeError(w, logger, http.StatusBadRequest, err.Error())
		return
	}

	if err := json.NewEncoder(w).Encode(analysis); err != nil {
		logger.Error().
			Err(err).
			Str("category", req.Category).
			Msg("failed to encode rate analysis")
	}
}

func writeError(w http.ResponseWriter, logger *zerolog.Logger, status int, msg string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(api.Error{Error: msg}); err != nil {
		logger.Error().Err(err).Msg("failed to encode error response")
	}
}

func toDomainProject(p api.Project) domain.ProjectSummary {
	return domain.ProjectSummary{
		ID:            p.ID,
		Name:          p.Name,
		Address:       p.Address,
		Client:        p.Client,
		SquareFootage: p.SquareFootage,
		LinearFootage: p.LinearFootage,
		ProjectType:   p.ProjectType,
		DurationDays:  p.DurationDays,
	}
}

func toDomainItem(it api.LineItem) domain.EstimateLineItem {
	item := domain.EstimateLineItem{
		ID:              it.ID,
		Description:     it.Description,
		Quantity:        it.Quantity,
		Unit:            it.Unit,
		MaterialCost:    it.MaterialCost,
		LaborCost:       it.LaborCost,
		EquipmentCost:   it.EquipmentCost,
		ConfidenceScore: it.ConfidenceScore,
		WasteFactor:     it.WasteFactor,
		LaborHours:      it.LaborHours,
		RiskFactors:     it.RiskFactors,
	}
	item.Recalculate()
	return item
}

func toOptions(in *api.CompileOptions) compile.Options {
	opts := compile.DefaultOptions()
	if in == nil {
		return opts
	}
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setRate := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setBool(&opts.GenerateRecommendations, in.GenerateRecommendations)
	setBool(&opts.GenerateAlternatives, in.GenerateAlternatives)
	setBool(&opts.PerformQualityControl, in.PerformQualityControl)
	setBool(&opts.IncludeAuditTrail, in.IncludeAuditTrail)
	rates := opts.Rates
	setRate(&rates.OverheadRate, in.OverheadRate)
	setRate(&rates.GeneralConditionsRate, in.GeneralConditionsRate)
	setRate(&rates.MarkupRate, in.MarkupRate)
	setRate(&rates.ContingencyRate, in.ContingencyRate)
	setRate(&rates.BondingRate, in.BondingRate)
	setRate(&rates.PermitCosts, in.PermitCosts)
	setBool(&rates.IncludeBonding, in.IncludeBonding)
	opts.Rates = rates
	return opts
}
