package domain

import "time"

// QualityMetrics scores an estimate and carries its advisory findings.
// All four scores are in [0,1].
type QualityMetrics struct {
	OverallConfidence float64
	DataCompleteness  float64
	PriceAccuracy     float64
	ScopeCompleteness float64

	RiskFactors []RiskFactor
	Warnings    []Warning
	Benchmark   BenchmarkComparison
	AuditTrail  []AuditEntry
}

// RiskFactor is one detected estimate risk. Findings are advisory and never
// block compilation.
type RiskFactor struct {
	Category           string
	Level              RiskLevel
	Probability        float64 // [0,1]
	CostImpact         float64 // dollars
	ScheduleImpactDays float64
	Description        string
}

// WarningSeverity grades warnings.
type WarningSeverity string

const (
	SeverityInfo     WarningSeverity = "info"
	SeverityLow      WarningSeverity = "low"
	SeverityMedium   WarningSeverity = "medium"
	SeverityHigh     WarningSeverity = "high"
	SeverityCritical WarningSeverity = "critical"
)

// Warning flags a data or scope issue with the items it affects.
type Warning struct {
	Type          string
	Severity      WarningSeverity
	Message       string
	AffectedItems []string
}

// BenchmarkMetric compares one estimate ratio against an industry value.
type BenchmarkMetric struct {
	Name          string
	EstimateValue float64
	IndustryValue float64
	Deviation     float64 // signed fraction relative to the industry value
	Suggestion    string  // empty when within tolerance
}

// BenchmarkComparison is the full set of benchmark metrics for an estimate.
type BenchmarkComparison struct {
	Metrics []BenchmarkMetric
}

// AuditEntry is one append-only record in a compilation session's trail.
type AuditEntry struct {
	Timestamp time.Time
	Stage     string
	Action    string
	Detail    string
}
