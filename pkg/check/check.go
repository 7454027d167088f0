// Package check implements the validation rules for forecast submission
// files. Each rule inspects one parsed table (or the file path) and reports
// findings as data; a rule that cannot run at all returns a Go error, which
// the orchestrator downgrades to a single synthetic finding so the remaining
// rules still run.
package check

import (
	"bytes"
	"fmt"
	"path/filepath"
	"time"

	"github.com/metricslab/hubcheck/pkg/forecast"
)

// Diagnostic is one validation finding.
type Diagnostic struct {
	Check   string `json:"check"`
	Message string `json:"message"`
}

// Messages flattens diagnostics into their messages, preserving order.
func Messages(diags []Diagnostic) []string {
	if len(diags) == 0 {
		return nil
	}
	msgs := make([]string, len(diags))
	for i, d := range diags {
		msgs[i] = d.Message
	}
	return msgs
}

// Config holds the enumerated value domains and the freshness policy.
// It is assembled once at startup and treated as read-only.
type Config struct {
	Locations []string
	AgeGroups []string
	Quantiles []float64
	Horizons  []int
	Types     []string

	// FreshnessDays is the maximum distance, in civil days, between the
	// filename date and today for non-retrospective submissions.
	FreshnessDays int

	// Timezone in which "today" is computed for the freshness check.
	Timezone *time.Location

	// Now allows tests to pin the clock. Defaults to time.Now.
	Now func() time.Time
}

// DefaultConfig returns the production value domains and freshness policy.
func DefaultConfig() *Config {
	tz, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		tz = time.UTC
	}
	return &Config{
		Locations:     forecast.DefaultLocations(),
		AgeGroups:     forecast.DefaultAgeGroups(),
		Quantiles:     forecast.DefaultQuantiles(),
		Horizons:      forecast.DefaultHorizons(),
		Types:         forecast.DefaultTypes(),
		FreshnessDays: 1,
		Timezone:      tz,
		Now:           time.Now,
	}
}

// Checker validates forecast submissions against one Config. Checkers are
// stateless across files and safe for concurrent use.
type Checker struct {
	cfg *Config
}

// New returns a Checker for the given config. A nil config uses defaults.
func New(cfg *Config) *Checker {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Timezone == nil {
		cfg.Timezone = time.UTC
	}
	return &Checker{cfg: cfg}
}

// TableRule is one rule over a parsed table. Returned diagnostics are
// findings; a returned error means the rule could not be completed.
type TableRule struct {
	Name        string
	Description string
	Check       func(c *Checker, t *forecast.Table) ([]Diagnostic, error)
}

// TableRules returns the table rules in their fixed execution order.
func TableRules() []TableRule {
	return []TableRule{
		{
			Name:        "header",
			Description: "The column set must match the required schema exactly.",
			Check:       (*Checker).checkHeader,
		},
		{
			Name:        "column_values",
			Description: "Constrained columns may only contain enumerated values.",
			Check:       (*Checker).checkColumnValues,
		},
		{
			Name:        "value",
			Description: "The value column must be complete and numeric.",
			Check:       (*Checker).checkValue,
		},
		{
			Name:        "mean",
			Description: "Rows with type \"mean\" must not carry a quantile.",
			Check:       (*Checker).checkMean,
		},
		{
			Name:        "duplicates",
			Description: "Forecast targets must be unique across the file.",
			Check:       (*Checker).checkDuplicates,
		},
		{
			Name:        "target_dates",
			Description: "Each target_end_date must follow from forecast_date and horizon.",
			Check:       (*Checker).checkTargetDates,
		},
		{
			Name:        "quantiles",
			Description: "Quantile forecasts must cover every canonical quantile level.",
			Check:       (*Checker).checkQuantiles,
		},
	}
}

// PathRules documents the two path-driven rules for listings; they run
// before the table rules and are not dispatched through TableRules.
func PathRules() []TableRule {
	return []TableRule{
		{
			Name:        "filepath",
			Description: "The file must follow the submission naming and location convention.",
		},
		{
			Name:        "forecast_date",
			Description: "Filename date and forecast_date column must agree and be recent.",
		},
	}
}

// Forecast validates one submission. The initial parse is fatal: an
// unparseable file aborts validation with an error and no findings. Every
// rule after the parse is isolated; an empty result means the file is valid.
func (c *Checker) Forecast(path string, content []byte) ([]Diagnostic, error) {
	t, err := forecast.ReadTable(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	var diags []Diagnostic
	if d := c.Filepath(path); d != nil {
		diags = append(diags, *d)
	}

	dateDiags, err := c.ForecastDate(path, t)
	if err != nil {
		diags = append(diags, failedDiagnostic("forecast_date"))
	} else {
		diags = append(diags, dateDiags...)
	}

	for _, rule := range TableRules() {
		found, err := rule.Check(c, t)
		if err != nil {
			diags = append(diags, failedDiagnostic(rule.Name))
			continue
		}
		diags = append(diags, found...)
	}
	return diags, nil
}

func failedDiagnostic(name string) Diagnostic {
	return Diagnostic{
		Check:   name,
		Message: fmt.Sprintf("Fatal error: check %q could not be completed.", name),
	}
}
