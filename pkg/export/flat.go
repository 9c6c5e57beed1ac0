// Package export encodes complete estimates into the supported flat
// encodings. Document rendering (PDF, spreadsheets) belongs to external
// collaborators; this package only produces rows and structured records.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/leano777/bidflow/pkg/models/domain"
)

// flatHeader is the column set of the flat tabular encoding.
var flatHeader = []string{
	"phase", "item", "quantity", "unit",
	"material_cost", "labor_cost", "equipment_cost", "total_cost",
}

// WriteCSV emits the flat tabular encoding: one row per line item plus a
// contract-total footer row.
func WriteCSV(w io.Writer, est domain.CompleteEstimate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(flatHeader); err != nil {
		return err
	}
	for _, p := range est.Phases {
		for _, it := range p.Items {
			row := []string{
				p.Name,
				it.Description,
				formatFloat(it.Quantity),
				it.Unit,
				formatFloat(it.MaterialCost),
				formatFloat(it.LaborCost),
				formatFloat(it.EquipmentCost),
				formatFloat(it.LineItemTotal),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	total := []string{"", "CONTRACT TOTAL", "", "", "", "", "", formatFloat(est.CostSummary.ContractTotal)}
	if err := cw.Write(total); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON emits the full structured encoding. The estimate graph is
// acyclic by construction, so plain marshalling is safe.
func WriteJSON(w io.Writer, est domain.CompleteEstimate) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(est)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
