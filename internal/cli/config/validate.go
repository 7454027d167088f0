package config

import (
	"fmt"
	"time"

	"github.com/metricslab/hubcheck/internal/cli/output"
)

// Validate checks the loaded configuration for values no command could
// work with.
func (c *Config) Validate() error {
	if !output.ValidMode(c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (want auto, text, markdown or json)", c.OutputFormat)
	}
	if c.FreshnessDays < 0 {
		return fmt.Errorf("freshness_days must not be negative, got %d", c.FreshnessDays)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}
	for _, sets := range []struct {
		name string
		len  int
	}{
		{"valid.locations", len(c.Valid.Locations)},
		{"valid.age_groups", len(c.Valid.AgeGroups)},
		{"valid.quantiles", len(c.Valid.Quantiles)},
		{"valid.horizons", len(c.Valid.Horizons)},
		{"valid.types", len(c.Valid.Types)},
	} {
		if sets.len == 0 {
			return fmt.Errorf("%s must not be empty", sets.name)
		}
	}
	return nil
}
