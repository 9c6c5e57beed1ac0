package scenario

import (
	"strings"

	"github.com/leano777/bidflow/pkg/models/domain"
)

// Comparison names the winning scenario per criterion.
type Comparison struct {
	LowestCost  string // scenario id
	FastestTime string
	BestValue   string
	LowestRisk  string
	BestQuality string
	ValueScores map[string]float64
}

// Compare ranks scenarios by cost, time, value, risk ordinal and quality
// ordinal. Ties keep the earlier scenario: comparison iterates insertion
// order and only a strictly better candidate displaces the current winner.
func Compare(scenarios []domain.AlternativeEstimate) Comparison {
	cmp := Comparison{ValueScores: map[string]float64{}}
	if len(scenarios) == 0 {
		return cmp
	}

	best := struct {
		cost, time, value float64
		risk, quality     int
	}{}

	for i, s := range scenarios {
		value := valueScore(s)
		cmp.ValueScores[s.ID] = value
		risk := ordinalRank(s.RiskLevel)
		quality := ordinalRank(s.QualityLevel)

		if i == 0 {
			cmp.LowestCost, best.cost = s.ID, s.CostSummary.ContractTotal
			cmp.FastestTime, best.time = s.ID, s.TimeVariation
			cmp.BestValue, best.value = s.ID, value
			cmp.LowestRisk, best.risk = s.ID, risk
			cmp.BestQuality, best.quality = s.ID, quality
			continue
		}
		if s.CostSummary.ContractTotal < best.cost {
			cmp.LowestCost, best.cost = s.ID, s.CostSummary.ContractTotal
		}
		if s.TimeVariation < best.time {
			cmp.FastestTime, best.time = s.ID, s.TimeVariation
		}
		if value > best.value {
			cmp.BestValue, best.value = s.ID, value
		}
		if risk < best.risk {
			cmp.LowestRisk, best.risk = s.ID, risk
		}
		if quality > best.quality {
			cmp.BestQuality, best.quality = s.ID, quality
		}
	}
	return cmp
}

// valueScore is (advantages - tradeoffs) per thousand contract dollars.
func valueScore(s domain.AlternativeEstimate) float64 {
	advantages, tradeoffs := 0, 0
	for _, r := range s.Recommendations {
		switch {
		case strings.HasPrefix(r, "advantage:"):
			advantages++
		case strings.HasPrefix(r, "tradeoff:"):
			tradeoffs++
		}
	}
	if s.CostSummary.ContractTotal <= 0 {
		return 0
	}
	return float64(advantages-tradeoffs) / (s.CostSummary.ContractTotal / 1000)
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
