package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/leano777/bidflow/pkg/services/assembly"
	"github.com/leano777/bidflow/pkg/services/config"
	"github.com/spf13/cobra"
)

type PriceCmd struct {
	scopePath    string
	quantity     float64
	unit         string
	profilesPath string
	profile      string
	engine       *assembly.Engine
}

// NewPriceCmd prices scope lines bottom-up from the assembly catalog. The
// scope file holds one line of work per line of text; a quantity may be
// given inline as "text | qty | unit", otherwise the flag values apply.
func NewPriceCmd(engine *assembly.Engine) *cobra.Command {
	pc := &PriceCmd{engine: engine}
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price free-text scope lines from the cost assembly catalog",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.scopePath, "scope", "", "Path to a text file with one scope line per line")
	cmd.Flags().Float64Var(&pc.quantity, "quantity", 1, "Default quantity for lines without one")
	cmd.Flags().StringVar(&pc.unit, "unit", "EA", "Default unit for lines without one")
	cmd.Flags().StringVar(&pc.profilesPath, "profiles", "", "Path to a regional profiles file (defaults to the built-in profiles)")
	cmd.Flags().StringVar(&pc.profile, "profile", "", "Regional cost profile whose labor multiplier applies (e.g. urban, rural)")

	_ = cmd.MarkFlagRequired("scope")

	return cmd
}

func (pc *PriceCmd) run(cmd *cobra.Command, args []string) error {
	f, err := os.Open(pc.scopePath)
	if err != nil {
		return fmt.Errorf("failed to open scope file: %w", err)
	}
	defer f.Close()

	laborMultiplier := 1.0
	if pc.profile != "" {
		registry := config.DefaultRegistry()
		if pc.profilesPath != "" {
			registry, err = config.NewRegistry(pc.profilesPath)
			if err != nil {
				return fmt.Errorf("failed to load profiles: %w", err)
			}
		}
		p, err := registry.GetProfile(cmd.Context(), pc.profile)
		if err != nil {
			return fmt.Errorf("failed to resolve profile: %w", err)
		}
		laborMultiplier = p.Multiplier
	}

	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(f)
	var total float64
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		text, qty, unit := splitScopeLine(line, pc.quantity, pc.unit)
		item := pc.engine.PriceScopeLine(text, qty, unit)
		item.LaborCost *= laborMultiplier
		item.Recalculate()
		total += item.LineItemTotal
		fmt.Fprintf(out, "%-50s %10.2f %-4s $%12.2f (%.0f%% confidence)\n",
			truncate(text, 50), qty, unit, item.LineItemTotal, item.ConfidenceScore*100)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read scope file: %w", err)
	}

	fmt.Fprintf(out, "%-66s $%12.2f\n", "TOTAL", total)
	return nil
}

func splitScopeLine(line string, defaultQty float64, defaultUnit string) (string, float64, string) {
	parts := strings.Split(line, "|")
	text := strings.TrimSpace(parts[0])
	qty := defaultQty
	unit := defaultUnit
	if len(parts) > 1 {
		if _, err := fmt.Sscanf(strings.TrimSpace(parts[1]), "%f", &qty); err != nil {
			qty = defaultQty
		}
	}
	if len(parts) > 2 {
		unit = strings.TrimSpace(parts[2])
	}
	return text, qty, unit
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}
