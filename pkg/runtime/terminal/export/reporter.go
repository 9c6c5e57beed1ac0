package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leano777/bidflow/pkg/models/domain"
)

type TableConfig struct {
	PhaseWidth  int
	ItemWidth   int
	AmountWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		PhaseWidth:  20,
		ItemWidth:   44,
		AmountWidth: 14,
	}
}

// Reporter renders an estimate as a terminal table.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (r *Reporter) Handle(est domain.CompleteEstimate) error {
	sep := fmt.Sprintf("+%s+%s+%s+%s+%s+",
		strings.Repeat("-", r.config.PhaseWidth+2),
		strings.Repeat("-", r.config.ItemWidth+2),
		strings.Repeat("-", r.config.AmountWidth+2),
		strings.Repeat("-", r.config.AmountWidth+2),
		strings.Repeat("-", r.config.AmountWidth+2))

	row := func(phase, item string, material, labor, total string) string {
		return fmt.Sprintf("| %-*s | %-*s | %*s | %*s | %*s |",
			r.config.PhaseWidth, truncate(phase, r.config.PhaseWidth),
			r.config.ItemWidth, truncate(item, r.config.ItemWidth),
			r.config.AmountWidth, material,
			r.config.AmountWidth, labor,
			r.config.AmountWidth, total)
	}

	lines := []string{
		fmt.Sprintf("Estimate %s (%s)", est.ID, est.Project.Name),
		sep,
		row("Phase", "Item", "Material", "Labor", "Total"),
		sep,
	}
	for _, p := range est.Phases {
		for _, it := range p.Items {
			lines = append(lines, row(p.Name, it.Description,
				dollars(it.MaterialCost), dollars(it.LaborCost), dollars(it.LineItemTotal)))
		}
	}
	lines = append(lines, sep,
		row("", "Direct cost", "", "", dollars(est.CostSummary.DirectCostTotal)),
		row("", "Indirect cost", "", "", dollars(est.CostSummary.IndirectCostTotal)),
		row("", "CONTRACT TOTAL", "", "", dollars(est.CostSummary.ContractTotal)),
		sep)

	for _, rec := range est.Recommendations {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", rec.Priority, rec.Category, rec.Title))
	}

	_, err := fmt.Fprintln(r.writer, strings.Join(lines, "\n"))
	return err
}

func dollars(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[:width-1] + "…"
}
