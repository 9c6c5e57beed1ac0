// Package scope exposes base scope trees and their alternates over HTTP.
package scope

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/leano777/bidflow/pkg/models/api"
	"github.com/leano777/bidflow/pkg/models/domain"
	"github.com/leano777/bidflow/pkg/services/alternates"
	"github.com/leano777/bidflow/pkg/services/compile"
	"github.com/leano777/bidflow/pkg/services/costing"
)

type Handler struct {
	manager  *alternates.Manager
	compiler *compile.Compiler
	rates    costing.Rates
}

// NewHandler builds the scope handler. The rates must match the ones the
// manager prices deltas with.
func NewHandler(manager *alternates.Manager, compiler *compile.Compiler, rates costing.Rates) *Handler {
	return &Handler{
		manager:  manager,
		compiler: compiler,
		rates:    rates,
	}
}

// CreateBase organizes the submitted items into phases and snapshots them
// as an immutable base scope tree.
func (h *Handler) CreateBase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.CreateScopeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, logger, http.StatusBadRequest, "malformed request body")
		return
	}

	items := make([]domain.EstimateLineItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, toDomainItem(it))
	}
	project := domain.ProjectSummary{
		ID:            req.Project.ID,
		Name:          req.Project.Name,
		SquareFootage: req.Project.SquareFootage,
		LinearFootage: req.Project.LinearFootage,
	}
	phases, summary := h.compiler.OrganizeAndCost(items, project, h.rates)

	tree, err := h.manager.CreateBaseScopeTree(req.Project.ID, req.Name, req.Description, phases, summary)
	if err != nil {
		writeError(w, logger, http.StatusBadRequest, err.Error())
		return
	}

	if err := json.NewEncoder(w).Encode(tree); err != nil {
		logger.Error().Err(err).Str("base_id", tree.ID).Msg("failed to encode base scope tree")
	}
}

// CreateAlternate derives a delta-priced alternate from a stored base.
func (h *Handler) CreateAlternate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	baseID := chi.URLParam(r, "baseID")

	var req api.CreateAlternateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, logger, http.StatusBadRequest, "malformed request body")
		return
	}

	scopeMods := make([]domain.ScopeModification, 0, len(req.ScopeModifications))
	for _, mod := range req.ScopeModifications {
		scopeMods = append(scopeMods, domain.ScopeModification{
			Type:           domain.ModificationType(mod.Type),
			TargetPhase:    mod.TargetPhase,
			Description:    mod.Description,
			CostImpact:     mod.CostImpact,
			TimeImpactDays: mod.TimeImpactDays,
			ImpactTags:     mod.ImpactTags,
			Confidence:     mod.Confidence,
		})
	}
	phaseMods := make([]domain.PhaseModification, 0, len(req.PhaseModifications))
	for _, mod := range req.PhaseModifications {
		phaseMods = append(phaseMods, domain.PhaseModification{
			Type:           domain.ModificationType(mod.Type),
			PhaseName:      mod.TargetPhase,
			NewPhase:       toDomainPhase(mod.NewPhase),
			CostImpact:     mod.CostImpact,
			TimeImpactDays: mod.TimeImpactDays,
			ImpactTags:     mod.ImpactTags,
			Confidence:     mod.Confidence,
		})
	}

	alt, err := h.manager.CreateAlternateScope(baseID, req.Name, req.Description, scopeMods, phaseMods)
	if err != nil {
		writeError(w, logger, http.StatusBadRequest, err.Error())
		return
	}

	if err := json.NewEncoder(w).Encode(alt); err != nil {
		logger.Error().Err(err).Str("alternate_id", alt.ID).Msg("failed to encode alternate")
	}
}

// ListAlternates returns a base's alternates in id order.
func (h *Handler) ListAlternates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	baseID := chi.URLParam(r, "baseID")

	alts, err := h.manager.AlternatesFor(baseID)
	if err != nil {
		writeError(w, logger, http.StatusNotFound, err.Error())
		return
	}
	if alts == nil {
		alts = []domain.AlternateScope{}
	}

	if err := json.NewEncoder(w).Encode(alts); err != nil {
		logger.Error().Err(err).Str("base_id", baseID).Msg("failed to encode alternates")
	}
}

// Compare builds a side-by-side comparison of a base's alternates.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	baseID := chi.URLParam(r, "baseID")

	var req api.CompareAlternatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, logger, http.StatusBadRequest, "malformed request body")
		return
	}

	comparison, err := h.manager.CreateAlternateComparison(req.Name, baseID, req.AlternateIDs)
	if err != nil {
		writeError(w, logger, http.StatusBadRequest, err.Error())
		return
	}

	if err := json.NewEncoder(w).Encode(comparison); err != nil {
		logger.Error().Err(err).Str("base_id", baseID).Msg("failed to encode comparison")
	}
}

func writeError(w http.ResponseWriter, logger *zerolog.Logger, status int, msg string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(api.Error{Error: msg}); err != nil {
		logger.Error().Err(err).Msg("failed to encode error response")
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

func toDomainPhase(spec *api.PhaseSpec) *domain.WorkPhase {
	if spec == nil {
		return nil
	}
	phase := domain.WorkPhase{
		Name:         spec.Name,
		Category:     spec.Category,
		DurationDays: spec.DurationDays,
	}
	for _, it := range spec.Items {
		phase.Items = append(phase.Items, toDomainItem(it))
	}
	phase.Recalculate()
	return &phase
}
