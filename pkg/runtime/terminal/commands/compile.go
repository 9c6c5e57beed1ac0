package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/leano777/bidflow/pkg/export"
	"github.com/leano777/bidflow/pkg/models/api"
	"github.com/leano777/bidflow/pkg/models/domain"
	terminalexport "github.com/leano777/bidflow/pkg/runtime/terminal/export"
	"github.com/leano777/bidflow/pkg/services/compile"
	"github.com/leano777/bidflow/pkg/services/config"
	"github.com/spf13/cobra"
)

type CompileCmd struct {
	inputPath    string
	ratesPath    string
	profilesPath string
	profile      string
	format       string
	compiler     *compile.Compiler
	reporter     *terminalexport.Reporter
}

func NewCompileCmd(compiler *compile.Compiler, reporter *terminalexport.Reporter) *cobra.Command {
	cc := &CompileCmd{compiler: compiler, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile priced line items into a complete estimate",
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.inputPath, "input", "", "Path to a JSON file with project and line items")
	cmd.Flags().StringVar(&cc.ratesPath, "rates", "", "Path to a rates config file (YAML or JSON)")
	cmd.Flags().StringVar(&cc.profilesPath, "profiles", "", "Path to a regional profiles file (defaults to the built-in profiles)")
	cmd.Flags().StringVar(&cc.profile, "profile", "", "Regional cost profile to apply (e.g. urban, suburban, rural)")
	cmd.Flags().StringVar(&cc.format, "format", "table", "Output format: table, json or csv")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (cc *CompileCmd) run(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(cc.inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	var req api.CompileRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("failed to parse input file: %w", err)
	}

	opts := compile.DefaultOptions()
	if cc.ratesPath != "" {
		rates, err := config.LoadRates(cc.ratesPath)
		if err != nil {
			return fmt.Errorf("failed to load rates config: %w", err)
		}
		opts.Rates = rates
	}

	laborMultiplier := 1.0
	if cc.profile != "" {
		registry := config.DefaultRegistry()
		if cc.profilesPath != "" {
			registry, err = config.NewRegistry(cc.profilesPath)
			if err != nil {
				return fmt.Errorf("failed to load profiles: %w", err)
			}
		}
		p, err := registry.GetProfile(cmd.Context(), cc.profile)
		if err != nil {
			return fmt.Errorf("failed to resolve profile: %w", err)
		}
		opts.Rates = p.Apply(opts.Rates)
		laborMultiplier = p.Multiplier
	}

	items := make([]domain.EstimateLineItem, 0, len(req.Items))
	for _, it := range req.Items {
		item := domain.EstimateLineItem{
			ID:              it.ID,
			Description:     it.Description,
			Quantity:        it.Quantity,
			Unit:            it.Unit,
			MaterialCost:    it.MaterialCost,
			LaborCost:       it.LaborCost,
			EquipmentCost:   it.EquipmentCost,
			ConfidenceScore: it.ConfidenceScore,
			WasteFactor:     it.WasteFactor,
			LaborHours:      it.LaborHours,
			RiskFactors:     it.RiskFactors,
		}
		item.LaborCost *= laborMultiplier
		item.Recalculate()
		items = append(items, item)
	}

	project := domain.ProjectSummary{
		ID:            req.Project.ID,
		Name:          req.Project.Name,
		Address:       req.Project.Address,
		Client:        req.Project.Client,
		SquareFootage: req.Project.SquareFootage,
		LinearFootage: req.Project.LinearFootage,
		ProjectType:   req.Project.ProjectType,
		DurationDays:  req.Project.DurationDays,
	}

	est, err := cc.compiler.Compile(items, project, opts)
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}

	switch cc.format {
	case "json":
		return export.WriteJSON(os.Stdout, est)
	case "csv":
		return export.WriteCSV(os.Stdout, est)
	case "table":
		return cc.reporter.Handle(est)
	default:
		return fmt.Errorf("unsupported output format %q", cc.format)
	}
}
