package check

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/metricslab/hubcheck/pkg/forecast"
)

// ForecastDate checks that the filename date and the forecast_date column
// agree, parse, and are recent. Unlike the table rules, its steps
// short-circuit: only the first failing step is reported.
func (c *Checker) ForecastDate(path string, t *forecast.Table) ([]Diagnostic, error) {
	diag := func(msg string) []Diagnostic {
		return []Diagnostic{{Check: "forecast_date", Message: msg}}
	}

	base := filepath.Base(path)
	prefix := base
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}
	fileDate, err := forecast.ParseDate(prefix)
	if err != nil {
		return diag(fmt.Sprintf("Date of filename in wrong format: %s. Should be yyyy-mm-dd.", prefix)), nil
	}

	if !t.HasColumn(forecast.ColForecastDate) {
		return nil, fmt.Errorf("column %q not present", forecast.ColForecastDate)
	}
	if len(t.Rows) == 0 {
		return nil, fmt.Errorf("file has no rows")
	}

	distinct := distinctStrings(t.Rows, func(r forecast.Row) string { return r.ForecastDate.Raw })
	if len(distinct) > 1 {
		return diag(fmt.Sprintf("The file contains multiple forecast dates: %v. Forecast date must be unique.", distinct)), nil
	}

	first := t.Rows[0].ForecastDate
	if !first.OK {
		return diag(fmt.Sprintf("Date in column 'forecast_date' in wrong format: %s. Should be yyyy-mm-dd.", first.Raw)), nil
	}

	if !fileDate.Equal(first.Date) {
		return diag(fmt.Sprintf("Date of filename %s does not match column 'forecast_date': %s.",
			base, first.Date.Format(forecast.DateLayout))), nil
	}

	if !IsRetrospectivePath(path) {
		today := civilDate(c.cfg.Now().In(c.cfg.Timezone))
		if days := civilDaysApart(fileDate, today); days > c.cfg.FreshnessDays {
			return diag(fmt.Sprintf("The forecast is not made today. Date of the forecast: %s, today: %s.",
				fileDate.Format(forecast.DateLayout), today.Format(forecast.DateLayout))), nil
		}
	}
	return nil, nil
}

// checkTargetDates verifies target_end_date == forecast_date + horizon
// weeks - 4 days for every row. Rows whose dates or horizon did not parse
// make the rule incompletable.
func (c *Checker) checkTargetDates(t *forecast.Table) ([]Diagnostic, error) {
	if !t.HasColumns(forecast.ColForecastDate, forecast.ColTargetEndDate, forecast.ColHorizon) {
		return nil, fmt.Errorf("date columns not present")
	}

	type mismatch struct {
		forecastDate, targetEndDate string
		horizon                     int
	}
	var (
		order []mismatch
		seen  = map[mismatch]bool{}
	)
	for _, r := range t.Rows {
		if !r.ForecastDate.OK || !r.TargetEndDate.OK || !r.Horizon.OK {
			return nil, fmt.Errorf("unparseable date or horizon")
		}
		expected := forecast.TargetEndDate(r.ForecastDate.Date, r.Horizon.Int)
		if expected.Equal(r.TargetEndDate.Date) {
			continue
		}
		m := mismatch{
			forecastDate:  r.ForecastDate.Date.Format(forecast.DateLayout),
			targetEndDate: r.TargetEndDate.Date.Format(forecast.DateLayout),
			horizon:       r.Horizon.Int,
		}
		if !seen[m] {
			seen[m] = true
			order = append(order, m)
		}
	}
	if len(order) == 0 {
		return nil, nil
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{forecast.ColForecastDate, forecast.ColTargetEndDate, forecast.ColHorizon})
	for _, m := range order {
		tw.AppendRow(table.Row{m.forecastDate, m.targetEndDate, m.horizon})
	}
	return []Diagnostic{{
		Check:   "target_dates",
		Message: "The following target_end_dates are wrong:\n\n" + tw.Render(),
	}}, nil
}

// civilDate truncates a timestamp to its calendar date, normalized to UTC
// so date arithmetic is timezone-free.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// civilDaysApart returns the absolute distance between two civil dates.
func civilDaysApart(a, b time.Time) int {
	days := int(a.Sub(b).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}

// distinctStrings collects distinct values in first-appearance order.
func distinctStrings(rows []forecast.Row, get func(forecast.Row) string) []string {
	var (
		out  []string
		seen = map[string]bool{}
	)
	for _, r := range rows {
		v := get(r)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
