package costing

import "github.com/leano777/bidflow/pkg/models/domain"

// Preset names for CalculateMultipleScenarios.
const (
	PresetConservative = "conservative"
	PresetStandard     = "standard"
	PresetAggressive   = "aggressive"
)

// presetOrder keeps scenario output deterministic.
var presetOrder = []string{PresetConservative, PresetStandard, PresetAggressive}

// presetRates are the fixed rate bundles behind each preset.
var presetRates = map[string]Rates{
	PresetConservative: {
		OverheadRate:          0.18,
		GeneralConditionsRate: 0.06,
		MarkupRate:            0.25,
		ContingencyRate:       0.08,
		BondingRate:           0.015,
		IncludeBonding:        true,
	},
	PresetStandard: {
		OverheadRate:          0.15,
		GeneralConditionsRate: 0.05,
		MarkupRate:            0.20,
		ContingencyRate:       0.05,
		BondingRate:           0.015,
	},
	PresetAggressive: {
		OverheadRate:          0.12,
		GeneralConditionsRate: 0.04,
		MarkupRate:            0.15,
		ContingencyRate:       0.03,
		BondingRate:           0.015,
	},
}

// RatePreset is one named preset with its resulting summary.
type RatePreset struct {
	Name    string
	Rates   Rates
	Summary domain.CostSummary
}

// CalculateMultipleScenarios prices the same phases under the conservative,
// standard and aggressive rate bundles, in that order.
func CalculateMultipleScenarios(phases []domain.WorkPhase, project *domain.ProjectSummary) []RatePreset {
	out := make([]RatePreset, 0, len(presetOrder))
	for _, name := range presetOrder {
		rates := presetRates[name]
		out = append(out, RatePreset{
			Name:    name,
			Rates:   rates,
			Summary: CalculateCostSummary(phases, project, rates),
		})
	}
	return out
}
