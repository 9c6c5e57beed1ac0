package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leano777/bidflow/pkg/services/costing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRates(t *testing.T) {
	t.Run("partial file overrides only what it names", func(t *testing.T) {
		path := writeConfig(t, "rates.yaml", "markup_rate: 0.25\npermit_costs: 1500\n")

		rates, err := LoadRates(path)
		require.NoError(t, err)

		defaults := costing.DefaultRates()
		assert.Equal(t, 0.25, rates.MarkupRate)
		assert.Equal(t, 1500.0, rates.PermitCosts)
		assert.Equal(t, defaults.OverheadRate, rates.OverheadRate)
		assert.Equal(t, defaults.ContingencyRate, rates.ContingencyRate)
		assert.Equal(t, defaults.BondingRate, rates.BondingRate)
	})

	t.Run("bonding toggle is honored", func(t *testing.T) {
		path := writeConfig(t, "rates.yaml", "include_bonding: true\nbonding_rate: 0.02\n")

		rates, err := LoadRates(path)
		require.NoError(t, err)
		assert.True(t, rates.IncludeBonding)
		assert.Equal(t, 0.02, rates.BondingRate)
	})

	t.Run("json files load by extension", func(t *testing.T) {
		path := writeConfig(t, "rates.json", `{"overhead_rate": 0.18}`)

		rates, err := LoadRates(path)
		require.NoError(t, err)
		assert.Equal(t, 0.18, rates.OverheadRate)
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := LoadRates(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read rates config")
	})
}
