package domain

// SkillAllocation is one role's share of an assembly's labor hours.
type SkillAllocation struct {
	Role       string
	Share      float64 // fraction of crew hours
	HourlyRate float64
}

// LaborComponent is the crew makeup of a cost assembly.
type LaborComponent struct {
	CrewSize    int
	HoursPerDay float64
	SkillMix    []SkillAllocation
}

// MaterialComponent is one material line in an assembly.
type MaterialComponent struct {
	Name           string
	QuantityPerUnit float64
	UnitCost       float64
	WasteFactor    float64
}

// EquipmentComponent is one equipment line in an assembly.
type EquipmentComponent struct {
	Name             string
	HoursPerUnit     float64
	HourlyRate       float64
	OperatorRate     float64 // 0 when no dedicated operator
	MobilizationCost float64
}

// CostAssembly is a reusable costing template for a type of work: crew,
// materials, equipment and a productivity rate in units per crew-day.
type CostAssembly struct {
	Code             string
	Category         string
	Description      string
	Unit             string
	Labor            LaborComponent
	Materials        []MaterialComponent
	Equipment        []EquipmentComponent
	ProductivityRate float64 // units per crew-day
}

// LineItemBreakdown is the bottom-up cost detail produced from an assembly.
type LineItemBreakdown struct {
	AssemblyCode   string
	Category       string
	Quantity       float64
	Unit           string
	LaborHours     float64
	LaborCost      float64
	LaborBySkill   map[string]float64
	MaterialCost   float64
	WasteAllowance float64
	EquipmentCost  float64
	Mobilization   float64
	OverheadProfit float64
	TotalCost      float64
	UnitRate       float64
	Confidence     float64
}

// RateSplit is a percentage decomposition of a composite unit rate. The four
// shares are fractions that should sum to 1.0.
type RateSplit struct {
	Labor          float64
	Material       float64
	Equipment      float64
	OverheadProfit float64
}

// Sum returns the total of the four shares.
func (s RateSplit) Sum() float64 {
	return s.Labor + s.Material + s.Equipment + s.OverheadProfit
}

// CompositeRateAnalysis decomposes a single $/unit rate into component
// dollar shares with an explicit confidence and assumptions.
type CompositeRateAnalysis struct {
	CompositeRate     float64
	Unit              string
	Category          string
	AssemblyCode      string // empty when category defaults were used
	LaborShare        float64
	MaterialShare     float64
	EquipmentShare    float64
	OverheadShare     float64
	LaborHoursPerUnit float64
	AverageLaborRate  float64
	Confidence        float64
	Assumptions       []string
}
