package commands

import (
	"fmt"

	"github.com/leano777/bidflow/pkg/services/assembly"
	"github.com/spf13/cobra"
)

type DecomposeCmd struct {
	rate         float64
	unit         string
	category     string
	assemblyCode string
	engine       *assembly.Engine
}

func NewDecomposeCmd(engine *assembly.Engine) *cobra.Command {
	dc := &DecomposeCmd{engine: engine}
	cmd := &cobra.Command{
		Use:   "decompose",
		Short: "Break a composite unit rate into labor, material, equipment and overhead",
		RunE:  dc.run,
	}

	cmd.Flags().Float64Var(&dc.rate, "rate", 0, "Composite rate in dollars per unit")
	cmd.Flags().StringVar(&dc.unit, "unit", "SF", "Unit of measure (e.g., SF, LF, EA)")
	cmd.Flags().StringVar(&dc.category, "category", "", "Trade category (e.g., concrete, electrical)")
	cmd.Flags().StringVar(&dc.assemblyCode, "assembly", "", "Assembly code for a more specific split")

	_ = cmd.MarkFlagRequired("rate")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func (dc *DecomposeCmd) run(cmd *cobra.Command, args []string) error {
	analysis, err := dc.engine.ReverseEngineerCompositeRate(dc.rate, dc.unit, dc.category, dc.assemblyCode)
	if err != nil {
		return fmt.Errorf("failed to decompose rate: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Composite rate: $%.2f/%s (%s)\n\n", analysis.CompositeRate, analysis.Unit, analysis.Category)
	fmt.Fprintf(out, "  Labor:     $%.2f\n", analysis.LaborShare)
	fmt.Fprintf(out, "  Material:  $%.2f\n", analysis.MaterialShare)
	fmt.Fprintf(out, "  Equipment: $%.2f\n", analysis.EquipmentShare)
	fmt.Fprintf(out, "  Overhead:  $%.2f\n", analysis.OverheadShare)
	fmt.Fprintf(out, "\nEstimated labor: %.3f hours per %s\n", analysis.LaborHoursPerUnit, analysis.Unit)
	fmt.Fprintf(out, "Confidence: %.0f%%\n", analysis.Confidence*100)
	for _, a := range analysis.Assumptions {
		fmt.Fprintf(out, "  note: %s\n", a)
	}
	return nil
}
