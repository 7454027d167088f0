package check

import (
	"fmt"

	"github.com/metricslab/hubcheck/pkg/forecast"
)

// checkHeader computes the symmetric difference between the file's columns
// and the required schema. Column order is not validated.
func (c *Checker) checkHeader(t *forecast.Table) ([]Diagnostic, error) {
	required := forecast.Columns()

	requiredSet := make(map[string]bool, len(required))
	for _, col := range required {
		requiredSet[col] = true
	}
	presentSet := make(map[string]bool, len(t.Columns))
	for _, col := range t.Columns {
		presentSet[col] = true
	}

	var missing, additional []string
	for _, col := range required {
		if !presentSet[col] {
			missing = append(missing, col)
		}
	}
	for _, col := range t.Columns {
		if !requiredSet[col] {
			additional = append(additional, col)
		}
	}

	var diags []Diagnostic
	if len(missing) > 0 {
		diags = append(diags, Diagnostic{
			Check:   "header",
			Message: fmt.Sprintf("The following columns are missing: %v. Please add them.", missing),
		})
	}
	if len(additional) > 0 {
		diags = append(diags, Diagnostic{
			Check:   "header",
			Message: fmt.Sprintf("The following columns are not accepted: %v. Please remove them.", additional),
		})
	}
	return diags, nil
}
