// Package assembly maps free-text scope lines to cost assemblies, performs
// bottom-up costing, and reverse-engineers composite unit rates.
package assembly

import "github.com/leano777/bidflow/pkg/models/domain"

// Standard role rates used across built-in assemblies, dollars per hour.
const (
	rateForeman    = 65.0
	rateJourneyman = 45.0
	rateApprentice = 32.0
	rateLaborer    = 28.0
)

// Generic-assembly fallbacks when no catalog match scores above threshold.
const (
	genericLaborRate   = 45.0
	genericWasteFactor = 0.10
	genericCrewSize    = 2
)

// defaultOverheadProfitRate is the OH&P applied to an assembly's direct
// cost.
const defaultOverheadProfitRate = 0.15

// BuiltinCatalog returns the standard assembly library, covering the common
// trades. Productivity rates are units per crew-day.
func BuiltinCatalog() []domain.CostAssembly {
	return []domain.CostAssembly{
		{
			Code:        "03-3000",
			Category:    "concrete",
			Description: "pour concrete slab on grade with reinforcement",
			Unit:        "sf",
			Labor: domain.LaborComponent{
				CrewSize:    4,
				HoursPerDay: 8,
				SkillMix: []domain.SkillAllocation{
					{Role: "foreman", Share: 0.20, HourlyRate: rateForeman},
					{Role: "journeyman", Share: 0.50, HourlyRate: rateJourneyman},
					{Role: "laborer", Share: 0.30, HourlyRate: rateLaborer},
				},
			},
			Materials: []domain.MaterialComponent{
				{Name: "4000 psi concrete", QuantityPerUnit: 0.0124, UnitCost: 165, WasteFactor: 0.05}, // cy per sf at 4" depth
				{Name: "#4 rebar", QuantityPerUnit: 1.1, UnitCost: 0.85, WasteFactor: 0.08},
				{Name: "vapor barrier", QuantityPerUnit: 1.0, UnitCost: 0.18, WasteFactor: 0.10},
			},
			Equipment: []domain.EquipmentComponent{
				{Name: "concrete pump", HoursPerUnit: 0.004, HourlyRate: 185, MobilizationCost: 350},
				{Name: "power trowel", HoursPerUnit: 0.006, HourlyRate: 22},
			},
			ProductivityRate: 800,
		},
		{
			Code:        "31-2300",
			Category:    "excavation",
			Description: "excavate and grade soil for foundation with track hoe",
			Unit:        "cy",
			Labor: domain.LaborComponent{
				CrewSize:    3,
				HoursPerDay: 8,
				SkillMix: []domain.SkillAllocation{
					{Role: "operator", Share: 0.40, HourlyRate: 55},
					{Role: "laborer", Share: 0.60, HourlyRate: rateLaborer},
				},
			},
			Equipment: []domain.EquipmentComponent{
				{Name: "track hoe", HoursPerUnit: 0.05, HourlyRate: 145, OperatorRate: 0, MobilizationCost: 500},
				{Name: "dump truck", HoursPerUnit: 0.03, HourlyRate: 95},
			},
			ProductivityRate: 160,
		},
		{
			Code:        "06-1100",
			Category:    "framing",
			Description: "frame exterior walls with dimensional lumber at 16 oc",
			Unit:        "sf",
			Labor: domain.LaborComponent{
				CrewSize:    5,
				HoursPerDay: 8,
				SkillMix: []domain.SkillAllocation{
					{Role: "foreman", Share: 0.15, HourlyRate: rateForeman},
					{Role: "journeyman", Share: 0.55, HourlyRate: rateJourneyman},
					{Role: "apprentice", Share: 0.30, HourlyRate: rateApprentice},
				},
			},
			Materials: []domain.MaterialComponent{
				{Name: "2x6 stud lumber", QuantityPerUnit: 1.2, UnitCost: 1.15, WasteFactor: 0.10},
				{Name: "osb sheathing", QuantityPerUnit: 1.05, UnitCost: 0.72, WasteFactor: 0.08},
				{Name: "fasteners", QuantityPerUnit: 1.0, UnitCost: 0.12, WasteFactor: 0.05},
			},
			Equipment: []domain.EquipmentComponent{
				{Name: "forklift", HoursPerUnit: 0.002, HourlyRate: 75, MobilizationCost: 250},
			},
			ProductivityRate: 450,
		},
		{
			Code:        "26-0500",
			Category:    "electrical",
			Description: "install electrical conduit wiring circuits and panel rough-in",
			Unit:        "lf",
			Labor: domain.LaborComponent{
				CrewSize:    2,
				HoursPerDay: 8,
				SkillMix: []domain.SkillAllocation{
					{Role: "journeyman", Share: 0.65, HourlyRate: 58},
					{Role: "apprentice", Share: 0.35, HourlyRate: 34},
				},
			},
			Materials: []domain.MaterialComponent{
				{Name: "3/4 emt conduit", QuantityPerUnit: 1.02, UnitCost: 1.45, WasteFactor: 0.05},
				{Name: "thhn conductor", QuantityPerUnit: 3.2, UnitCost: 0.38, WasteFactor: 0.05},
				{Name: "fittings", QuantityPerUnit: 0.25, UnitCost: 2.10, WasteFactor: 0.03},
			},
			ProductivityRate: 220,
		},
		{
			Code:        "22-1100",
			Category:    "plumbing",
			Description: "install supply and drain pipe rough-in",
			Unit:        "lf",
			Labor: domain.LaborComponent{
				CrewSize:    2,
				HoursPerDay: 8,
				SkillMix: []domain.SkillAllocation{
					{Role: "journeyman", Share: 0.70, HourlyRate: 52},
					{Role: "apprentice", Share: 0.30, HourlyRate: 32},
				},
			},
			Materials: []domain.MaterialComponent{
				{Name: "pex supply line", QuantityPerUnit: 1.05, UnitCost: 0.95, WasteFactor: 0.05},
				{Name: "pvc drain pipe", QuantityPerUnit: 0.6, UnitCost: 2.80, WasteFactor: 0.08},
				{Name: "fittings and hangers", QuantityPerUnit: 0.3, UnitCost: 3.25, WasteFactor: 0.05},
			},
			ProductivityRate: 180,
		},
		{
			Code:        "04-2200",
			Category:    "concrete",
			Description: "lay concrete masonry units for wall with mortar and grout",
			Unit:        "sf",
			Labor: domain.LaborComponent{
				CrewSize:    4,
				HoursPerDay: 8,
				SkillMix: []domain.SkillAllocation{
					{Role: "mason", Share: 0.55, HourlyRate: 48},
					{Role: "tender", Share: 0.45, HourlyRate: rateLaborer},
				},
			},
			Materials: []domain.MaterialComponent{
				{Name: "8in cmu block", QuantityPerUnit: 1.125, UnitCost: 2.45, WasteFactor: 0.06},
				{Name: "mortar", QuantityPerUnit: 0.04, UnitCost: 14.50, WasteFactor: 0.12},
				{Name: "grout and rebar", QuantityPerUnit: 0.5, UnitCost: 1.85, WasteFactor: 0.08},
			},
			Equipment: []domain.EquipmentComponent{
				{Name: "mixer", HoursPerUnit: 0.008, HourlyRate: 18},
			},
			ProductivityRate: 120,
		},
		{
			Code:        "09-2900",
			Category:    "drywall",
			Description: "hang tape and finish gypsum drywall on walls",
			Unit:        "sf",
			Labor: domain.LaborComponent{
				CrewSize:    3,
				HoursPerDay: 8,
				SkillMix: []domain.SkillAllocation{
					{Role: "hanger", Share: 0.45, HourlyRate: 38},
					{Role: "finisher", Share: 0.55, HourlyRate: 42},
				},
			},
			Materials: []domain.MaterialComponent{
				{Name: "5/8 gypsum board", QuantityPerUnit: 1.05, UnitCost: 0.62, WasteFactor: 0.10},
				{Name: "joint compound and tape", QuantityPerUnit: 1.0, UnitCost: 0.14, WasteFactor: 0.05},
			},
			Equipment: []domain.EquipmentComponent{
				{Name: "drywall lift", HoursPerUnit: 0.003, HourlyRate: 12},
			},
			ProductivityRate: 900,
		},
		{
			Code:        "07-3100",
			Category:    "roofing",
			Description: "install asphalt shingles with underlayment and flashing",
			Unit:        "square",
			Labor: domain.LaborComponent{
				CrewSize:    4,
				HoursPerDay: 8,
				SkillMix: []domain.SkillAllocation{
					{Role: "foreman", Share: 0.20, HourlyRate: rateForeman},
					{Role: "roofer", Share: 0.80, HourlyRate: 40},
				},
			},
			Materials: []domain.MaterialComponent{
				{Name: "architectural shingles", QuantityPerUnit: 3.2, UnitCost: 38, WasteFactor: 0.10},
				{Name: "synthetic underlayment", QuantityPerUnit: 1.05, UnitCost: 18, WasteFactor: 0.08},
				{Name: "drip edge and flashing", QuantityPerUnit: 0.4, UnitCost: 12, WasteFactor: 0.05},
			},
			Equipment: []domain.EquipmentComponent{
				{Name: "roofing hoist", HoursPerUnit: 0.3, HourlyRate: 25, MobilizationCost: 150},
			},
			ProductivityRate: 12,
		},
		{
			Code:        "07-2100",
			Category:    "insulation",
			Description: "install batt insulation in wall cavities",
			Unit:        "sf",
			Labor: domain.LaborComponent{
				CrewSize:    2,
				HoursPerDay: 8,
				SkillMix: []domain.SkillAllocation{
					{Role: "installer", Share: 1.0, HourlyRate: 34},
				},
			},
			Materials: []domain.MaterialComponent{
				{Name: "r-19 batt", QuantityPerUnit: 1.0, UnitCost: 0.68, WasteFactor: 0.05},
			},
			ProductivityRate: 1400,
		},
		{
			Code:        "09-6500",
			Category:    "flooring",
			Description: "install tile flooring with thinset and grout",
			Unit:        "sf",
			Labor: domain.LaborComponent{
				CrewSize:    2,
				HoursPerDay: 8,
				SkillMix: []domain.SkillAllocation{
					{Role: "setter", Share: 0.70, HourlyRate: 44},
					{Role: "helper", Share: 0.30, HourlyRate: rateLaborer},
				},
			},
			Materials: []domain.MaterialComponent{
				{Name: "porcelain tile", QuantityPerUnit: 1.08, UnitCost: 3.40, WasteFactor: 0.12},
				{Name: "thinset and grout", QuantityPerUnit: 1.0, UnitCost: 0.55, WasteFactor: 0.08},
			},
			ProductivityRate: 180,
		},
	}
}
