package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/leano777/bidflow/pkg/models/api"
	"github.com/leano777/bidflow/pkg/models/domain"
	"github.com/leano777/bidflow/pkg/services/compile"
	"github.com/leano777/bidflow/pkg/services/costing"
	"github.com/leano777/bidflow/pkg/services/scenario"
	"github.com/spf13/cobra"
)

type ScenariosCmd struct {
	inputPath string
	budget    float64
	risk      string
	quality   string
	compiler  *compile.Compiler
}

func NewScenariosCmd(compiler *compile.Compiler) *cobra.Command {
	sc := &ScenariosCmd{compiler: compiler}
	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Price alternative scenarios against a baseline estimate",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.inputPath, "input", "", "Path to a JSON file with project and line items")
	cmd.Flags().Float64Var(&sc.budget, "budget", 0, "Budget ceiling for a custom scenario (0 disables it)")
	cmd.Flags().StringVar(&sc.risk, "risk", "", "Risk tolerance for a custom scenario: low, medium or high")
	cmd.Flags().StringVar(&sc.quality, "quality", "", "Quality level for a custom scenario: economy, standard or premium")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (sc *ScenariosCmd) run(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(sc.inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	var req api.CompileRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("failed to parse input file: %w", err)
	}

	items := make([]domain.EstimateLineItem, 0, len(req.Items))
	for _, it := range req.Items {
		item := domain.EstimateLineItem{
			ID:            it.ID,
			Description:   it.Description,
			Quantity:      it.Quantity,
			Unit:          it.Unit,
			MaterialCost:  it.MaterialCost,
			LaborCost:     it.LaborCost,
			EquipmentCost: it.EquipmentCost,
			LaborHours:    it.LaborHours,
		}
		item.Recalculate()
		items = append(items, item)
	}
	project := domain.ProjectSummary{ID: req.Project.ID, Name: req.Project.Name}

	var custom *scenario.CustomParams
	if sc.budget > 0 || sc.risk != "" || sc.quality != "" {
		custom = &scenario.CustomParams{
			MaxBudget:     sc.budget,
			RiskTolerance: sc.risk,
			QualityLevel:  sc.quality,
		}
	}

	alts, err := sc.compiler.Scenarios(items, project, costing.DefaultRates(), custom)
	if err != nil {
		return fmt.Errorf("scenario generation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, alt := range alts {
		fmt.Fprintf(out, "%-18s $%12.2f  %+6.1f%% cost  %+6.1f%% time  quality %-6s risk %s\n",
			alt.Name, alt.CostSummary.ContractTotal,
			alt.CostVariation*100, alt.TimeVariation*100,
			alt.QualityLevel, alt.RiskLevel)
	}

	comparison := scenario.Compare(alts)
	byID := map[string]string{}
	for _, alt := range alts {
		byID[alt.ID] = alt.Name
	}
	fmt.Fprintf(out, "\nlowest cost: %s\nfastest: %s\nbest value: %s\nlowest risk: %s\nbest quality: %s\n",
		byID[comparison.LowestCost], byID[comparison.FastestTime], byID[comparison.BestValue],
		byID[comparison.LowestRisk], byID[comparison.BestQuality])
	return nil
}
