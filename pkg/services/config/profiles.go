package config

import (
	"context"
	"fmt"
	"sort"

	"gopkg.in/ini.v1"

	"github.com/leano777/bidflow/pkg/services/costing"
)

// Profile is one regional cost profile: a labor-rate multiplier plus
// optional rate overrides. Sections in the profile file look like:
//
//	[suburban]
//	multiplier = 1.0
//	markup_rate = 0.20
type Profile struct {
	Name            string
	Multiplier      float64
	MarkupRate      float64 // 0 means "use default"
	OverheadRate    float64
	ContingencyRate float64
}

// Apply overlays the profile's rate overrides on the given rates. Zero
// overrides leave the incoming value alone. The labor multiplier is not a
// rate; callers apply it to labor costs themselves.
func (p *Profile) Apply(rates costing.Rates) costing.Rates {
	if p.MarkupRate > 0 {
		rates.MarkupRate = p.MarkupRate
	}
	if p.OverheadRate > 0 {
		rates.OverheadRate = p.OverheadRate
	}
	if p.ContingencyRate > 0 {
		rates.ContingencyRate = p.ContingencyRate
	}
	return rates
}

// Registry resolves named regional cost profiles.
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (*Profile, error)
}

type profileRegistry struct {
	cfg *ini.File
}

// NewRegistry loads the profile registry from an ini file.
func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &profileRegistry{cfg: cfg}, nil
}

func (r *profileRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (r *profileRegistry) GetProfile(_ context.Context, name string) (*Profile, error) {
	if !r.cfg.HasSection(name) {
		return nil, fmt.Errorf("profile %s not found", name)
	}
	section := r.cfg.Section(name)

	p := &Profile{
		Name:       name,
		Multiplier: section.Key("multiplier").MustFloat64(1.0),
	}
	p.MarkupRate = section.Key("markup_rate").MustFloat64(0)
	p.OverheadRate = section.Key("overhead_rate").MustFloat64(0)
	p.ContingencyRate = section.Key("contingency_rate").MustFloat64(0)
	return p, nil
}

// DefaultProfiles are the built-in regional multipliers used when no
// profile file is supplied.
var DefaultProfiles = map[string]Profile{
	"urban":    {Name: "urban", Multiplier: 1.20},
	"suburban": {Name: "suburban", Multiplier: 1.00},
	"rural":    {Name: "rural", Multiplier: 0.85},
}

type builtinRegistry struct{}

// DefaultRegistry returns a registry backed by the built-in profiles.
func DefaultRegistry() Registry {
	return builtinRegistry{}
}

func (builtinRegistry) GetProfiles(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(DefaultProfiles))
	for name := range DefaultProfiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (builtinRegistry) GetProfile(_ context.Context, name string) (*Profile, error) {
	p, ok := DefaultProfiles[name]
	if !ok {
		return nil, fmt.Errorf("profile %s not found", name)
	}
	return &p, nil
}
