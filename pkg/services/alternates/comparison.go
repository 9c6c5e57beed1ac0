package alternates

import (
	"fmt"

	"github.com/leano777/bidflow/pkg/models/domain"
)

// Recommendation score weights. The score starts at a neutral 50 and moves
// with cost, schedule, quality and risk position against the base.
const (
	scoreCostWeight    = 40.0
	scoreTimeWeight    = 10.0
	scoreQualityWeight = 15.0
	scoreRiskWeight    = 15.0
)

// CreateAlternateComparison builds a ranked matrix across the named
// alternates, picks per-criterion winners (ties keep the earlier alternate)
// and runs a ±10% sensitivity sweep on the cost deltas.
func (m *Manager) CreateAlternateComparison(name, baseID string, alternateIDs []string) (domain.AlternateComparison, error) {
	base, ok := m.repo.Base(baseID)
	if !ok {
		return domain.AlternateComparison{}, fmt.Errorf("base scope tree %q not found", baseID)
	}

	cmp := domain.AlternateComparison{
		ID:          m.ids.NewID("cmp"),
		BaseID:      baseID,
		Name:        name,
		GeneratedAt: m.now(),
	}

	baseDays := 0.0
	for _, p := range base.BasePhases {
		baseDays += p.DurationDays
	}

	for _, altID := range alternateIDs {
		alt, ok := m.repo.Alternate(altID)
		if !ok {
			return domain.AlternateComparison{}, fmt.Errorf("alternate %q not found", altID)
		}
		if alt.BaseID != baseID {
			return domain.AlternateComparison{}, fmt.Errorf("alternate %q belongs to base %q, not %q", altID, alt.BaseID, baseID)
		}
		_, summary, err := m.ComputedState(altID)
		if err != nil {
			return domain.AlternateComparison{}, err
		}
		cmp.Rows = append(cmp.Rows, domain.ComparisonRow{
			AlternateID:   alt.ID,
			Name:          alt.Name,
			ContractTotal: summary.ContractTotal,
			DeltaCost:     alt.TotalDeltaCost,
			DeltaDays:     alt.TotalDeltaDays,
			QualityLevel:  alt.QualityLevelDelta,
			RiskLevel:     alt.RiskLevelDelta,
			Score:         recommendationScore(alt, base.BaseCostSummary.ContractTotal, baseDays, 1.0),
		})
	}

	rankWinners(&cmp)
	cmp.Sensitivity = m.sensitivitySweep(base, cmp.Rows, baseDays)
	return cmp, nil
}

// recommendationScore is the fixed 0-100 weighted formula. costScale lets
// the sensitivity sweep perturb the cost deltas without re-deriving them.
func recommendationScore(alt domain.AlternateScope, baseContract, baseDays, costScale float64) float64 {
	score := 50.0
	if baseContract > 0 {
		score -= scoreCostWeight * (alt.TotalDeltaCost * costScale / baseContract)
	}
	if baseDays > 0 {
		score -= scoreTimeWeight * (alt.TotalDeltaDays / baseDays)
	}
	score += scoreQualityWeight * float64(ordinalRank(alt.QualityLevelDelta))
	score -= scoreRiskWeight * float64(ordinalRank(alt.RiskLevelDelta))

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func ordinalRank(l domain.OrdinalLevel) int {
	switch l {
	case domain.LevelLower:
		return -1
	case domain.LevelHigher:
		return 1
	}
	return 0
}

// rankWinners fills the per-criterion winners; only a strictly better row
// displaces the current one, so ties resolve to insertion order.
func rankWinners(cmp *domain.AlternateComparison) {
	for i, row := range cmp.Rows {
		if i == 0 {
			cmp.BestCost = row.AlternateID
			cmp.BestTime = row.AlternateID
			cmp.BestQuality = row.AlternateID
			cmp.LowestRisk = row.AlternateID
			cmp.Recommended = row.AlternateID
			continue
		}
		if row.ContractTotal < rowByID(cmp.Rows, cmp.BestCost).ContractTotal {
			cmp.BestCost = row.AlternateID
		}
		if row.DeltaDays < rowByID(cmp.Rows, cmp.BestTime).DeltaDays {
			cmp.BestTime = row.AlternateID
		}
		if ordinalRank(row.QualityLevel) > ordinalRank(rowByID(cmp.Rows, cmp.BestQuality).QualityLevel) {
			cmp.BestQuality = row.AlternateID
		}
		if ordinalRank(row.RiskLevel) < ordinalRank(rowByID(cmp.Rows, cmp.LowestRisk).RiskLevel) {
			cmp.LowestRisk = row.AlternateID
		}
		if row.Score > rowByID(cmp.Rows, cmp.Recommended).Score {
			cmp.Recommended = row.AlternateID
		}
	}
}

func rowByID(rows []domain.ComparisonRow, id string) domain.ComparisonRow {
	for _, r := range rows {
		if r.AlternateID == id {
			return r
		}
	}
	return domain.ComparisonRow{}
}

// sensitivitySweep perturbs every alternate's cost deltas by ±10% and
// reports which alternate the score recommends at each point. A stable
// recommendation across the sweep means the ranking is not cost-fragile.
func (m *Manager) sensitivitySweep(base domain.BaseScopeTree, rows []domain.ComparisonRow, baseDays float64) []domain.SensitivityPoint {
	sweep := []float64{-0.10, 0, 0.10}
	out := make([]domain.SensitivityPoint, 0, len(sweep))

	for _, adj := range sweep {
		bestID := ""
		bestScore := -1.0
		for _, row := range rows {
			alt, ok := m.repo.Alternate(row.AlternateID)
			if !ok {
				continue
			}
			score := recommendationScore(alt, base.BaseCostSummary.ContractTotal, baseDays, 1+adj)
			if score > bestScore {
				bestID, bestScore = row.AlternateID, score
			}
		}
		out = append(out, domain.SensitivityPoint{
			Parameter:   "cost_delta",
			Adjustment:  adj,
			Recommended: bestID,
		})
	}
	return out
}
