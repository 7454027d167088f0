package check

import (
	"fmt"

	"github.com/metricslab/hubcheck/pkg/forecast"
)

// checkColumnValues verifies that every constrained column only contains
// enumerated values. Each column is inspected independently, one finding
// per offending column listing the offending distinct values.
func (c *Checker) checkColumnValues(t *forecast.Table) ([]Diagnostic, error) {
	constrained := []string{
		forecast.ColLocation, forecast.ColQuantile, forecast.ColType,
		forecast.ColAgeGroup, forecast.ColHorizon,
	}
	if !t.HasColumns(constrained...) {
		return nil, fmt.Errorf("constrained columns not present")
	}

	quantileSet := make(map[float64]bool, len(c.cfg.Quantiles))
	for _, q := range c.cfg.Quantiles {
		quantileSet[q] = true
	}
	horizonSet := make(map[int]bool, len(c.cfg.Horizons))
	for _, h := range c.cfg.Horizons {
		horizonSet[h] = true
	}

	invalid := map[string][]string{
		forecast.ColLocation: invalidDistinct(t.Rows,
			func(r forecast.Row) string { return r.Location },
			allowSet(c.cfg.Locations)),
		forecast.ColQuantile: invalidDistinctRaw(t.Rows,
			func(r forecast.Row) (string, bool) {
				if r.Quantile.Null {
					return "", false
				}
				return r.Quantile.Raw, !r.Quantile.OK || !quantileSet[r.Quantile.Float]
			}),
		forecast.ColType: invalidDistinct(t.Rows,
			func(r forecast.Row) string { return r.Type },
			allowSet(c.cfg.Types)),
		forecast.ColAgeGroup: invalidDistinct(t.Rows,
			func(r forecast.Row) string { return r.AgeGroup },
			allowSet(c.cfg.AgeGroups)),
		forecast.ColHorizon: invalidDistinctRaw(t.Rows,
			func(r forecast.Row) (string, bool) {
				return r.Horizon.Raw, !r.Horizon.OK || !horizonSet[r.Horizon.Int]
			}),
	}

	var diags []Diagnostic
	for _, col := range constrained {
		if vals := invalid[col]; len(vals) > 0 {
			diags = append(diags, Diagnostic{
				Check:   "column_values",
				Message: fmt.Sprintf("Invalid entries in column '%s': %v", col, vals),
			})
		}
	}
	return diags, nil
}

func allowSet(allowed []string) func(string) bool {
	set := make(map[string]bool, len(allowed))
	for _, v := range allowed {
		set[v] = true
	}
	return func(v string) bool { return set[v] }
}

// invalidDistinct collects distinct cell values outside the allowed set,
// in first-appearance order.
func invalidDistinct(rows []forecast.Row, get func(forecast.Row) string, allowed func(string) bool) []string {
	var (
		out  []string
		seen = map[string]bool{}
	)
	for _, r := range rows {
		v := get(r)
		if seen[v] || allowed(v) {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// invalidDistinctRaw is invalidDistinct for typed cells: get returns the
// raw literal and whether it is invalid.
func invalidDistinctRaw(rows []forecast.Row, get func(forecast.Row) (string, bool)) []string {
	var (
		out  []string
		seen = map[string]bool{}
	)
	for _, r := range rows {
		raw, invalid := get(r)
		if !invalid || seen[raw] {
			continue
		}
		seen[raw] = true
		out = append(out, raw)
	}
	return out
}
