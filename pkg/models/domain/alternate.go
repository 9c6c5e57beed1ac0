package domain

import "time"

// OrdinalLevel expresses a relative quality or risk position against a
// baseline.
type OrdinalLevel string

const (
	LevelLower  OrdinalLevel = "lower"
	LevelSame   OrdinalLevel = "same"
	LevelHigher OrdinalLevel = "higher"
)

// AlternativeEstimate is a priced scenario variant of a baseline estimate.
// Cost and time variations are signed fractions relative to the baseline.
type AlternativeEstimate struct {
	ID              string
	Name            string
	Description     string
	CostVariation   float64
	TimeVariation   float64
	QualityLevel    OrdinalLevel
	RiskLevel       OrdinalLevel
	ModifiedPhases  []string
	CostSummary     CostSummary
	Recommendations []string
}

// BaseScopeTree is the immutable baseline an alternate derives from. It is
// snapshotted once per project baseline; later edits become new alternates.
type BaseScopeTree struct {
	ID               string
	ProjectID        string
	Name             string
	ScopeDescription string
	BasePhases       []WorkPhase
	BaseCostSummary  CostSummary
	CreatedAt        time.Time
}

// ModificationType enumerates how an alternate changes its base scope.
type ModificationType string

const (
	ModificationAdd     ModificationType = "add"
	ModificationRemove  ModificationType = "remove"
	ModificationModify  ModificationType = "modify"
	ModificationReplace ModificationType = "replace"
	ModificationSplit   ModificationType = "split"
	ModificationMerge   ModificationType = "merge"
)

// ScopeModification is a narrative-level change to the base scope.
type ScopeModification struct {
	ID             string
	Type           ModificationType
	TargetPhase    string
	Description    string
	CostImpact     float64 // signed dollars against the base
	TimeImpactDays float64
	ImpactTags     []string // e.g. "premium", "basic", "higher", "lower"
	Confidence     float64
}

// PhaseModification is a structural change to one base phase.
type PhaseModification struct {
	ID             string
	Type           ModificationType
	PhaseName      string
	NewPhase       *WorkPhase // for add/replace/split results
	CostImpact     float64
	TimeImpactDays float64
	ImpactTags     []string
	Confidence     float64
}

// CostDelta is one derived pricing difference between an alternate and its
// base. When the base value is zero the delta percentage is fixed at +100%
// (or -100% for removals); this divide-by-zero policy is deliberate.
type CostDelta struct {
	Category             string
	BaseValue            float64
	DeltaValue           float64
	NewValue             float64
	DeltaPercentage      float64
	SourceModificationID string
	Confidence           float64
}

// TimeDelta mirrors CostDelta for schedule impact, in days.
type TimeDelta struct {
	Category             string
	BaseValue            float64
	DeltaValue           float64
	NewValue             float64
	DeltaPercentage      float64
	SourceModificationID string
	Confidence           float64
}

// AlternateScope stores only the differences from its base scope tree.
// Computed phases and cost summary are derived as base+deltas on demand;
// cached copies are never the source of truth.
type AlternateScope struct {
	ID                 string
	BaseID             string
	Name               string
	Description        string
	ScopeModifications []ScopeModification
	PhaseModifications []PhaseModification
	CostDeltas         []CostDelta
	TimeDeltas         []TimeDelta
	TotalDeltaCost     float64 // always Σ CostDeltas.DeltaValue
	TotalDeltaDays     float64
	DeltaPercentage    float64 // relative to base contract total
	QualityLevelDelta  OrdinalLevel
	RiskLevelDelta     OrdinalLevel
	CreatedAt          time.Time
}

// AlternateComparison ranks a named set of alternates against their base.
type AlternateComparison struct {
	ID          string
	BaseID      string
	Name        string
	Rows        []ComparisonRow
	BestCost    string // alternate id
	BestTime    string
	BestQuality string
	LowestRisk  string
	Recommended string
	Sensitivity []SensitivityPoint
	GeneratedAt time.Time
}

// ComparisonRow is one alternate's scores in a comparison matrix.
type ComparisonRow struct {
	AlternateID   string
	Name          string
	ContractTotal float64
	DeltaCost     float64
	DeltaDays     float64
	QualityLevel  OrdinalLevel
	RiskLevel     OrdinalLevel
	Score         float64 // 0-100 weighted recommendation score
}

// SensitivityPoint records the comparison outcome when one parameter is
// swept ±10% around its nominal value.
type SensitivityPoint struct {
	Parameter   string
	Adjustment  float64 // e.g. -0.10, 0, +0.10
	Recommended string
}
