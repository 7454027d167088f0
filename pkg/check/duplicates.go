package check

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/metricslab/hubcheck/pkg/forecast"
)

// targetKey is the 7-tuple identifying one forecast target. Cells are held
// in canonical form so 0.5 and 0.50 collide.
type targetKey struct {
	location, ageGroup              string
	forecastDate, targetEndDate     string
	horizon, rowType, quantileLevel string
}

func rowTargetKey(r forecast.Row) targetKey {
	return targetKey{
		location:      r.Location,
		ageGroup:      r.AgeGroup,
		forecastDate:  dateKey(r.ForecastDate),
		targetEndDate: dateKey(r.TargetEndDate),
		horizon:       horizonKey(r.Horizon),
		rowType:       r.Type,
		quantileLevel: quantileKey(r.Quantile),
	}
}

func (k targetKey) less(o targetKey) bool {
	a := [7]string{k.location, k.ageGroup, k.forecastDate, k.targetEndDate, k.horizon, k.rowType, k.quantileLevel}
	b := [7]string{o.location, o.ageGroup, o.forecastDate, o.targetEndDate, o.horizon, o.rowType, o.quantileLevel}
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func dateKey(d forecast.DateValue) string {
	if d.OK {
		return d.Date.Format(forecast.DateLayout)
	}
	return d.Raw
}

func horizonKey(h forecast.IntValue) string {
	if h.OK {
		return strconv.Itoa(h.Int)
	}
	return h.Raw
}

func quantileKey(q forecast.FloatValue) string {
	switch {
	case q.Null:
		return ""
	case q.OK:
		return forecast.FormatQuantile(q.Float)
	default:
		return q.Raw
	}
}

// checkDuplicates reports every row whose 7-key target tuple occurs more
// than once. The offending rows are rendered as one table, sorted by key,
// so the result does not depend on row order.
func (c *Checker) checkDuplicates(t *forecast.Table) ([]Diagnostic, error) {
	keyCols := []string{
		forecast.ColLocation, forecast.ColAgeGroup, forecast.ColForecastDate,
		forecast.ColTargetEndDate, forecast.ColHorizon, forecast.ColType, forecast.ColQuantile,
	}
	if !t.HasColumns(keyCols...) {
		return nil, fmt.Errorf("key columns not present")
	}

	counts := make(map[targetKey]int, len(t.Rows))
	for _, r := range t.Rows {
		counts[rowTargetKey(r)]++
	}

	type dup struct {
		key targetKey
		row forecast.Row
	}
	var dups []dup
	for _, r := range t.Rows {
		if k := rowTargetKey(r); counts[k] > 1 {
			dups = append(dups, dup{key: k, row: r})
		}
	}
	if len(dups) == 0 {
		return nil, nil
	}
	sort.SliceStable(dups, func(i, j int) bool {
		if dups[i].key != dups[j].key {
			return dups[i].key.less(dups[j].key)
		}
		// Value is the only column outside the key; break ties on it so
		// the rendering does not depend on row order.
		return dups[i].row.Value < dups[j].row.Value
	})

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	header := make(table.Row, 0, len(forecast.Columns()))
	for _, col := range forecast.Columns() {
		header = append(header, col)
	}
	tw.AppendHeader(header)
	for _, d := range dups {
		tw.AppendRow(table.Row{
			d.key.location, d.key.ageGroup, d.key.forecastDate, d.key.targetEndDate,
			d.key.horizon, d.key.rowType, d.key.quantileLevel, d.row.Value,
		})
	}

	return []Diagnostic{{
		Check: "duplicates",
		Message: fmt.Sprintf("Duplicated targets present. Check the following %d rows.\n\n%s",
			len(dups), tw.Render()),
	}}, nil
}
