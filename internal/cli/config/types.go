// Package config provides configuration management for the hubcheck CLI.
// Configuration layers, highest precedence last to first: defaults, config
// file (hubcheck.yaml), environment (HUBCHECK_ prefix), flags.
package config

import (
	"fmt"
	"time"

	"github.com/metricslab/hubcheck/internal/cli/output"
	"github.com/metricslab/hubcheck/pkg/check"
	"github.com/metricslab/hubcheck/pkg/forecast"
)

// ValidSets holds the enumerated value domains. They default to the
// production constants and may be overridden per deployment; once loaded
// they are read-only for the process lifetime.
type ValidSets struct {
	Locations []string  `koanf:"locations"`
	AgeGroups []string  `koanf:"age_groups"`
	Quantiles []float64 `koanf:"quantiles"`
	Horizons  []int     `koanf:"horizons"`
	Types     []string  `koanf:"types"`
}

// Config holds all CLI configuration options.
type Config struct {
	SubmissionsDir string    `koanf:"submissions_dir"`
	Timezone       string    `koanf:"timezone"`
	FreshnessDays  int       `koanf:"freshness_days"`
	OutputFormat   string    `koanf:"output"`
	Verbose        bool      `koanf:"verbose"`
	Workers        int       `koanf:"workers"`
	Valid          ValidSets `koanf:"valid"`
}

// Defaults for top-level options.
const (
	DefaultSubmissionsDir = "forecasts/submissions"
	DefaultTimezone       = "Europe/Berlin"
	DefaultFreshnessDays  = 1
	DefaultOutput         = string(output.ModeAuto)
	DefaultWorkers        = 4
)

// defaultMap returns the koanf defaults layer.
func defaultMap() map[string]interface{} {
	return map[string]interface{}{
		"submissions_dir":  DefaultSubmissionsDir,
		"timezone":         DefaultTimezone,
		"freshness_days":   DefaultFreshnessDays,
		"output":           DefaultOutput,
		"verbose":          false,
		"workers":          DefaultWorkers,
		"valid.locations":  forecast.DefaultLocations(),
		"valid.age_groups": forecast.DefaultAgeGroups(),
		"valid.quantiles":  forecast.DefaultQuantiles(),
		"valid.horizons":   forecast.DefaultHorizons(),
		"valid.types":      forecast.DefaultTypes(),
	}
}

// CheckerConfig assembles the checker configuration from the loaded
// options.
func (c *Config) CheckerConfig() (*check.Config, error) {
	tz, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}
	return &check.Config{
		Locations:     c.Valid.Locations,
		AgeGroups:     c.Valid.AgeGroups,
		Quantiles:     c.Valid.Quantiles,
		Horizons:      c.Valid.Horizons,
		Types:         c.Valid.Types,
		FreshnessDays: c.FreshnessDays,
		Timezone:      tz,
		Now:           time.Now,
	}, nil
}
