// Package api holds the wire shapes accepted by the HTTP handlers.
package api

// Project identifies the project being estimated.
type Project struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address,omitempty"`
	Client        string  `json:"client,omitempty"`
	SquareFootage float64 `json:"square_footage,omitempty"`
	LinearFootage float64 `json:"linear_footage,omitempty"`
	ProjectType   string  `json:"project_type,omitempty"`
	DurationDays  int     `json:"duration_days,omitempty"`
}

// LineItem is one priced unit of work as submitted by the caller.
type LineItem struct {
	ID              string   `json:"id,omitempty"`
	Description     string   `json:"description"`
	Quantity        float64  `json:"quantity"`
	Unit            string   `json:"unit"`
	MaterialCost    float64  `json:"material_cost"`
	LaborCost       float64  `json:"labor_cost"`
	EquipmentCost   float64  `json:"equipment_cost"`
	ConfidenceScore float64  `json:"confidence_score,omitempty"`
	WasteFactor     float64  `json:"waste_factor,omitempty"`
	LaborHours      float64  `json:"labor_hours,omitempty"`
	RiskFactors     []string `json:"risk_factors,omitempty"`
}

// CompileOptions are the recognized compilation flags. Nil booleans mean
// "use the default" so callers can flip one flag without restating all.
type CompileOptions struct {
	GenerateRecommendations *bool    `json:"generate_recommendations,omitempty"`
	GenerateAlternatives    *bool    `json:"generate_alternatives,omitempty"`
	PerformQualityControl   *bool    `json:"perform_quality_control,omitempty"`
	IncludeAuditTrail       *bool    `json:"include_audit_trail,omitempty"`
	OverheadRate            *float64 `json:"overhead_rate,omitempty"`
	GeneralConditionsRate   *float64 `json:"general_conditions_rate,omitempty"`
	MarkupRate              *float64 `json:"markup_rate,omitempty"`
	ContingencyRate         *float64 `json:"contingency_rate,omitempty"`
	BondingRate             *float64 `json:"bonding_rate,omitempty"`
	PermitCosts             *float64 `json:"permit_costs,omitempty"`
	IncludeBonding          *bool    `json:"include_bonding,omitempty"`
}

// CompileRequest is the body of POST /estimates/compile.
type CompileRequest struct {
	Project Project         `json:"project"`
	Items   []LineItem      `json:"items"`
	Options *CompileOptions `json:"options,omitempty"`
}

// DecomposeRequest is the body of POST /rates/decompose.
type DecomposeRequest struct {
	CompositeRate float64 `json:"composite_rate"`
	Unit          string  `json:"unit"`
	Category      string  `json:"category"`
	AssemblyCode  string  `json:"assembly_code,omitempty"`
}

// PriceScopeRequest is the body of POST /scope/price: free-text scope
// lines to be matched against cost assemblies and priced bottom-up.
type PriceScopeRequest struct {
	Lines []ScopeLine `json:"lines"`
}

// ScopeLine is one narrative scope line with its measured quantity.
type ScopeLine struct {
	Text     string  `json:"text"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
}

// CustomScenario parameterizes one caller-defined scenario.
type CustomScenario struct {
	MaxBudget     float64 `json:"max_budget,omitempty"`
	RiskTolerance string  `json:"risk_tolerance,omitempty"` // low, medium, high
	QualityLevel  string  `json:"quality_level,omitempty"`  // economy, standard, premium
}

// ScenariosRequest is the body of POST /estimates/scenarios.
type ScenariosRequest struct {
	Project Project         `json:"project"`
	Items   []LineItem      `json:"items"`
	Options *CompileOptions `json:"options,omitempty"`
	Custom  *CustomScenario `json:"custom,omitempty"`
}

// CreateScopeRequest is the body of POST /scopes: it snapshots the priced
// items as an immutable base scope tree.
type CreateScopeRequest struct {
	Project     Project    `json:"project"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Items       []LineItem `json:"items"`
}

// Modification is one change an alternate makes against its base. Scope
// modifications are narrative-level; phase modifications are structural and
// may carry a replacement phase.
type Modification struct {
	Type           string     `json:"type"` // add, remove, modify, replace, split, merge
	TargetPhase    string     `json:"target_phase,omitempty"`
	Description    string     `json:"description,omitempty"`
	CostImpact     float64    `json:"cost_impact"`
	TimeImpactDays float64    `json:"time_impact_days,omitempty"`
	ImpactTags     []string   `json:"impact_tags,omitempty"`
	Confidence     float64    `json:"confidence,omitempty"`
	NewPhase       *PhaseSpec `json:"new_phase,omitempty"`
}

// PhaseSpec describes a phase introduced by an add/replace modification.
type PhaseSpec struct {
	Name         string     `json:"name"`
	Category     string     `json:"category,omitempty"`
	DurationDays float64    `json:"duration_days,omitempty"`
	Items        []LineItem `json:"items"`
}

// CreateAlternateRequest is the body of POST /scopes/{baseID}/alternates.
type CreateAlternateRequest struct {
	Name               string         `json:"name"`
	Description        string         `json:"description,omitempty"`
	ScopeModifications []Modification `json:"scope_modifications,omitempty"`
	PhaseModifications []Modification `json:"phase_modifications,omitempty"`
}

// CompareAlternatesRequest is the body of POST /scopes/{baseID}/comparisons.
type CompareAlternatesRequest struct {
	Name         string   `json:"name"`
	AlternateIDs []string `json:"alternate_ids"`
}

// Error is the standard error body.
type Error struct {
	Error string `json:"error"`
}
