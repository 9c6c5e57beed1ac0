package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leano777/bidflow/pkg/services/costing"
)

const profileFile = `
[urban]
multiplier = 1.25
markup_rate = 0.22

[coastal]
multiplier = 1.40
overhead_rate = 0.18
contingency_rate = 0.08
`

func TestRegistry(t *testing.T) {
	ctx := context.Background()
	path := writeConfig(t, "profiles.ini", profileFile)

	registry, err := NewRegistry(path)
	require.NoError(t, err)

	t.Run("lists sections with keys", func(t *testing.T) {
		profiles, err := registry.GetProfiles(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"urban", "coastal"}, profiles)
	})

	t.Run("resolves a named profile", func(t *testing.T) {
		p, err := registry.GetProfile(ctx, "coastal")
		require.NoError(t, err)
		assert.Equal(t, 1.40, p.Multiplier)
		assert.Equal(t, 0.18, p.OverheadRate)
		assert.Equal(t, 0.08, p.ContingencyRate)
		assert.Zero(t, p.MarkupRate)
	})

	t.Run("multiplier defaults to one when omitted", func(t *testing.T) {
		path := writeConfig(t, "sparse.ini", "[basic]\nmarkup_rate = 0.19\n")
		sparse, err := NewRegistry(path)
		require.NoError(t, err)

		p, err := sparse.GetProfile(ctx, "basic")
		require.NoError(t, err)
		assert.Equal(t, 1.0, p.Multiplier)
	})

	t.Run("unknown profile errors", func(t *testing.T) {
		_, err := registry.GetProfile(ctx, "arctic")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("bad path errors", func(t *testing.T) {
		_, err := NewRegistry("/nonexistent/profiles.ini")
		require.Error(t, err)
	})
}

func TestProfileApply(t *testing.T) {
	rates := costing.DefaultRates()

	t.Run("overrides replace only named rates", func(t *testing.T) {
		p := Profile{Name: "coastal", Multiplier: 1.4, MarkupRate: 0.22, ContingencyRate: 0.08}
		applied := p.Apply(rates)
		assert.Equal(t, 0.22, applied.MarkupRate)
		assert.Equal(t, 0.08, applied.ContingencyRate)
		assert.Equal(t, rates.OverheadRate, applied.OverheadRate)
	})

	t.Run("multiplier-only profile changes nothing", func(t *testing.T) {
		p := Profile{Name: "rural", Multiplier: 0.85}
		assert.Equal(t, rates, p.Apply(rates))
	})
}

func TestDefaultRegistry(t *testing.T) {
	ctx := context.Background()
	registry := DefaultRegistry()

	profiles, err := registry.GetProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"rural", "suburban", "urban"}, profiles)

	p, err := registry.GetProfile(ctx, "rural")
	require.NoError(t, err)
	assert.Equal(t, 0.85, p.Multiplier)

	_, err = registry.GetProfile(ctx, "metro")
	require.Error(t, err)
}
