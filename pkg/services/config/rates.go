// Package config loads compilation rate configuration and the regional
// cost-profile registry.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/leano777/bidflow/pkg/services/costing"
)

// RatesConfig is the on-disk shape of a rate bundle.
type RatesConfig struct {
	OverheadRate          float64 `mapstructure:"overhead_rate"`
	GeneralConditionsRate float64 `mapstructure:"general_conditions_rate"`
	MarkupRate            float64 `mapstructure:"markup_rate"`
	ContingencyRate       float64 `mapstructure:"contingency_rate"`
	BondingRate           float64 `mapstructure:"bonding_rate"`
	PermitCosts           float64 `mapstructure:"permit_costs"`
	IncludeBonding        bool    `mapstructure:"include_bonding"`
}

// LoadRates reads a rate config file (yaml/toml/json, decided by
// extension). Zero-valued rates fall back to the defaults so a partial
// file overrides only what it names.
func LoadRates(path string) (costing.Rates, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return costing.Rates{}, fmt.Errorf("failed to read rates config: %w", err)
	}

	var cfg RatesConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return costing.Rates{}, fmt.Errorf("failed to parse rates config: %w", err)
	}

	rates := costing.DefaultRates()
	if cfg.OverheadRate > 0 {
		rates.OverheadRate = cfg.OverheadRate
	}
	if cfg.GeneralConditionsRate > 0 {
		rates.GeneralConditionsRate = cfg.GeneralConditionsRate
	}
	if cfg.MarkupRate > 0 {
		rates.MarkupRate = cfg.MarkupRate
	}
	if cfg.ContingencyRate > 0 {
		rates.ContingencyRate = cfg.ContingencyRate
	}
	if cfg.BondingRate > 0 {
		rates.BondingRate = cfg.BondingRate
	}
	if cfg.PermitCosts > 0 {
		rates.PermitCosts = cfg.PermitCosts
	}
	rates.IncludeBonding = cfg.IncludeBonding
	return rates, nil
}
