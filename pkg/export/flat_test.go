package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leano777/bidflow/pkg/models/domain"
)

func sampleEstimate() domain.CompleteEstimate {
	phase := domain.WorkPhase{
		Name: "Foundation",
		Items: []domain.EstimateLineItem{
			{Description: "pour footings", Quantity: 12, Unit: "cy", MaterialCost: 1800, LaborCost: 2400, EquipmentCost: 300},
			{Description: "waterproof stem walls", Quantity: 200, Unit: "lf", MaterialCost: 600, LaborCost: 900},
		},
	}
	phase.Recalculate()

	est := domain.CompleteEstimate{
		ID:      "estimate-1",
		Project: domain.ProjectSummary{ID: "p1", Name: "Adu Build"},
		Phases:  []domain.WorkPhase{phase},
	}
	est.CostSummary.ContractTotal = 9000
	return est
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleEstimate()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header, two items, footer

	assert.Equal(t, flatHeader, records[0])
	assert.Equal(t, []string{"Foundation", "pour footings", "12.00", "cy", "1800.00", "2400.00", "300.00", "4500.00"}, records[1])
	assert.Equal(t, "waterproof stem walls", records[2][1])
	assert.Equal(t, "0.00", records[2][6])

	footer := records[3]
	assert.Equal(t, "CONTRACT TOTAL", footer[1])
	assert.Equal(t, "9000.00", footer[7])
}

func TestWriteCSVEmptyEstimate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, domain.CompleteEstimate{}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "CONTRACT TOTAL", records[1][1])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleEstimate()))

	var decoded domain.CompleteEstimate
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "estimate-1", decoded.ID)
	require.Len(t, decoded.Phases, 1)
	assert.InDelta(t, 6000.0, decoded.Phases[0].PhaseTotal, 1e-9)
}
