package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leano777/bidflow/pkg/ids"
	"github.com/leano777/bidflow/pkg/models/api"
	"github.com/leano777/bidflow/pkg/services/assembly"
	"github.com/leano777/bidflow/pkg/services/classify"
	"github.com/leano777/bidflow/pkg/services/compile"
)

func testEngine() *assembly.Engine {
	return assembly.NewEngine(nil, classify.NewKeywordClassifier(), ids.NewSequenceProvider())
}

func testCompiler() *compile.Compiler {
	clock := func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	return compile.NewCompiler(ids.NewSequenceProvider(), clock, zerolog.Nop())
}

func writeInputFile(t *testing.T) string {
	t.Helper()
	req := api.CompileRequest{
		Project: api.Project{ID: "p1", Name: "Adu Build"},
		Items: []api.LineItem{
			{Description: "pour concrete footings", Quantity: 1, Unit: "ls", MaterialCost: 600, LaborCost: 800, EquipmentCost: 100},
		},
	}
	data, err := json.Marshal(req)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestDecomposeCmd(t *testing.T) {
	var buf bytes.Buffer
	cmd := NewDecomposeCmd(testEngine())
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--rate", "10", "--unit", "lf", "--category", "electrical"})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "Labor:     $5.50")
	assert.Contains(t, out, "Material:  $3.50")
	assert.Contains(t, out, "Confidence: 100%")
}

func TestDecomposeCmdRejectsZeroRate(t *testing.T) {
	cmd := NewDecomposeCmd(testEngine())
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--rate", "0", "--category", "concrete"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decompose rate")
}

func TestPriceCmd(t *testing.T) {
	scopePath := filepath.Join(t.TempDir(), "scope.txt")
	scope := "# kitchen remodel\npour concrete slab with reinforcement | 400 | sf\nhang tape and finish drywall | 1200 | sf\n"
	require.NoError(t, os.WriteFile(scopePath, []byte(scope), 0o644))

	var buf bytes.Buffer
	cmd := NewPriceCmd(testEngine())
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--scope", scopePath})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "pour concrete slab with reinforcement")
	assert.Contains(t, out, "hang tape and finish drywall")
	assert.Contains(t, out, "TOTAL")
}

func TestScenariosCmd(t *testing.T) {
	var buf bytes.Buffer
	cmd := NewScenariosCmd(testCompiler())
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--input", writeInputFile(t), "--quality", "premium"})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	for _, name := range []string{"value_engineered", "premium_finish", "fast_track", "budget_conscious", "conservative", "custom"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "lowest cost:")
}
