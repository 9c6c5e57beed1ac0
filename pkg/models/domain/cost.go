package domain

// CostSummary is the layered cost rollup for a set of phases.
//
// DirectCostTotal is always MaterialTotal+LaborTotal+EquipmentTotal,
// IndirectCostTotal the sum of the indirect components, and ContractTotal
// their sum. These are derived values; recompute, never assign directly.
type CostSummary struct {
	MaterialTotal   float64
	LaborTotal      float64
	EquipmentTotal  float64
	DirectCostTotal float64

	Overhead          float64
	GeneralConditions float64
	Markup            float64
	Contingency       float64
	Bonding           float64
	Permits           float64
	IndirectCostTotal float64

	ContractTotal float64

	// Derived ratios, all relative to DirectCostTotal.
	MarkupPercentage    float64
	LaborPercentage     float64
	MaterialPercentage  float64
	EquipmentPercentage float64

	// Per-unit costs, populated only when project dimensions are known
	// and positive.
	CostPerSquareFoot float64
	CostPerLinearFoot float64
}
