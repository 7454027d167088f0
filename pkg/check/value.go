package check

import (
	"fmt"

	"github.com/metricslab/hubcheck/pkg/forecast"
)

// checkValue verifies the value column is complete and numeric. Both
// findings are independent and may fire together.
func (c *Checker) checkValue(t *forecast.Table) ([]Diagnostic, error) {
	if !t.HasColumn(forecast.ColValue) {
		return nil, fmt.Errorf("column %q not present", forecast.ColValue)
	}

	var (
		missing    int
		nonNumeric []string
	)
	for _, r := range t.Rows {
		switch {
		case r.Value == "":
			missing++
		case !forecast.IsNumeric(r.Value):
			nonNumeric = append(nonNumeric, r.Value)
		}
	}

	var diags []Diagnostic
	if missing > 0 {
		diags = append(diags, Diagnostic{
			Check:   "value",
			Message: fmt.Sprintf("Missing values in column 'value' are not allowed. %d values are missing.", missing),
		})
	}
	if len(nonNumeric) > 0 {
		diags = append(diags, Diagnostic{
			Check:   "value",
			Message: fmt.Sprintf("Non-numeric entries in column 'value' are not allowed: %v.", nonNumeric),
		})
	}
	return diags, nil
}

// checkMean counts rows that declare type "mean" but still carry a
// quantile level.
func (c *Checker) checkMean(t *forecast.Table) ([]Diagnostic, error) {
	if !t.HasColumns(forecast.ColType, forecast.ColQuantile) {
		return nil, fmt.Errorf("type or quantile column not present")
	}

	n := 0
	for _, r := range t.Rows {
		if r.Type == forecast.TypeMean && !r.Quantile.Null {
			n++
		}
	}
	if n == 0 {
		return nil, nil
	}
	plural := ""
	if n > 1 {
		plural = "s"
	}
	return []Diagnostic{{
		Check: "mean",
		Message: fmt.Sprintf("Rows with type \"mean\" should have NA in column 'quantile'. This was violated %d time%s.",
			n, plural),
	}}, nil
}
