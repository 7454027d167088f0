package check

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/metricslab/hubcheck/pkg/forecast"
)

// groupKey identifies one forecast group, the unit of quantile
// completeness.
type groupKey struct {
	location, ageGroup, horizon, targetEndDate string
}

// checkQuantiles verifies that every forecast group of quantile-type rows
// covers all canonical quantile levels. The rule is suppressed entirely for
// mean-only files and for pure-median files.
func (c *Checker) checkQuantiles(t *forecast.Table) ([]Diagnostic, error) {
	groupCols := []string{
		forecast.ColLocation, forecast.ColAgeGroup, forecast.ColHorizon,
		forecast.ColTargetEndDate, forecast.ColType, forecast.ColQuantile,
	}
	if !t.HasColumns(groupCols...) {
		return nil, fmt.Errorf("group columns not present")
	}

	onlyMean := true
	onlyMedian := true
	for _, r := range t.Rows {
		if r.Type != forecast.TypeMean {
			onlyMean = false
		}
		if r.Type == forecast.TypeQuantile && (!r.Quantile.OK || r.Quantile.Float != 0.5) {
			onlyMedian = false
		}
	}
	if onlyMean || onlyMedian {
		return nil, nil
	}

	type group struct {
		key       groupKey
		quantiles []string // distinct non-null levels, first appearance
		seen      map[string]bool
	}
	var (
		order  []*group
		groups = map[groupKey]*group{}
	)
	for _, r := range t.Rows {
		if r.Type == forecast.TypeMean {
			continue
		}
		k := groupKey{
			location:      r.Location,
			ageGroup:      r.AgeGroup,
			horizon:       horizonKey(r.Horizon),
			targetEndDate: dateKey(r.TargetEndDate),
		}
		g := groups[k]
		if g == nil {
			g = &group{key: k, seen: map[string]bool{}}
			groups[k] = g
			order = append(order, g)
		}
		if r.Quantile.Null {
			continue
		}
		if q := quantileKey(r.Quantile); !g.seen[q] {
			g.seen[q] = true
			g.quantiles = append(g.quantiles, q)
		}
	}

	var incomplete []*group
	for _, g := range order {
		if len(g.quantiles) != len(c.cfg.Quantiles) {
			incomplete = append(incomplete, g)
		}
	}
	if len(incomplete) == 0 {
		return nil, nil
	}
	sort.SliceStable(incomplete, func(i, j int) bool {
		a, b := incomplete[i].key, incomplete[j].key
		if a.location != b.location {
			return a.location < b.location
		}
		if a.ageGroup != b.ageGroup {
			return a.ageGroup < b.ageGroup
		}
		if a.horizon != b.horizon {
			return a.horizon < b.horizon
		}
		return a.targetEndDate < b.targetEndDate
	})

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{
		forecast.ColLocation, forecast.ColAgeGroup, forecast.ColHorizon,
		forecast.ColTargetEndDate, "quantiles present",
	})
	for _, g := range incomplete {
		tw.AppendRow(table.Row{
			g.key.location, g.key.ageGroup, g.key.horizon, g.key.targetEndDate,
			"[" + strings.Join(g.quantiles, " ") + "]",
		})
	}

	return []Diagnostic{{
		Check:   "quantiles",
		Message: "Not all quantiles were provided in the following setting(s):\n\n" + tw.Render(),
	}}, nil
}
