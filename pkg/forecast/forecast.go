// Package forecast defines the domain model for forecast submission files:
// the required column set, the enumerated value domains, and the typed row
// representation that the validation rules operate on.
package forecast

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Column names required in every submission, in canonical order.
const (
	ColLocation      = "location"
	ColAgeGroup      = "age_group"
	ColForecastDate  = "forecast_date"
	ColTargetEndDate = "target_end_date"
	ColHorizon       = "horizon"
	ColType          = "type"
	ColQuantile      = "quantile"
	ColValue         = "value"
)

// Row types.
const (
	TypeMean     = "mean"
	TypeQuantile = "quantile"
)

// DateLayout is the only accepted calendar date format.
const DateLayout = "2006-01-02"

// Columns returns the required column set in canonical order.
func Columns() []string {
	return []string{
		ColLocation, ColAgeGroup, ColForecastDate, ColTargetEndDate,
		ColHorizon, ColType, ColQuantile, ColValue,
	}
}

// DefaultLocations returns the accepted location codes.
func DefaultLocations() []string {
	return []string{
		"DE", "DE-BB-BE", "DE-BW", "DE-BY", "DE-HE", "DE-MV", "DE-NI-HB",
		"DE-NW", "DE-RP-SL", "DE-SH-HH", "DE-SN", "DE-ST", "DE-TH",
	}
}

// DefaultAgeGroups returns the accepted age group codes.
func DefaultAgeGroups() []string {
	return []string{"00+", "00-04", "05-14", "15-34", "35-59", "60-79", "80+", "60+"}
}

// DefaultQuantiles returns the canonical quantile levels a quantile-type
// submission must cover.
func DefaultQuantiles() []float64 {
	return []float64{0.025, 0.1, 0.25, 0.5, 0.75, 0.9, 0.975}
}

// DefaultHorizons returns the accepted horizon offsets, in weeks.
func DefaultHorizons() []int {
	return []int{-3, -2, -1, 0, 1, 2, 3, 4}
}

// DefaultTypes returns the accepted row types.
func DefaultTypes() []string {
	return []string{TypeMean, TypeQuantile}
}

// DateValue is a calendar date cell: the raw literal plus its parsed form.
// OK is false when the literal did not parse as yyyy-mm-dd.
type DateValue struct {
	Raw  string
	Date time.Time
	OK   bool
}

// IntValue is an integer cell such as horizon.
type IntValue struct {
	Raw string
	Int int
	OK  bool
}

// FloatValue is a numeric cell that may be null (empty). Null takes
// precedence: a null cell is never marked OK.
type FloatValue struct {
	Raw   string
	Float float64
	OK    bool
	Null  bool
}

// Row is one typed record of a submission table. Raw literals are kept
// alongside the parsed forms so that validation messages can echo exactly
// what the contributor wrote.
type Row struct {
	Location      string
	AgeGroup      string
	ForecastDate  DateValue
	TargetEndDate DateValue
	Horizon       IntValue
	Type          string
	Quantile      FloatValue
	Value         string
}

// ParseDate parses a yyyy-mm-dd literal.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// NewDateValue parses a raw date cell.
func NewDateValue(raw string) DateValue {
	d, err := ParseDate(raw)
	return DateValue{Raw: raw, Date: d, OK: err == nil}
}

// NewIntValue parses a raw integer cell.
func NewIntValue(raw string) IntValue {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	return IntValue{Raw: raw, Int: n, OK: err == nil}
}

// NewFloatValue parses a raw numeric cell. An empty cell is null.
func NewFloatValue(raw string) FloatValue {
	if raw == "" {
		return FloatValue{Null: true}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	return FloatValue{Raw: raw, Float: f, OK: err == nil}
}

// TargetEndDate returns the target date implied by a forecast date and a
// horizon: the horizon counted in whole weeks, with the reference day
// shifted back four days.
func TargetEndDate(forecastDate time.Time, horizon int) time.Time {
	return forecastDate.AddDate(0, 0, horizon*7-4)
}

// FormatQuantile renders a quantile level canonically (0.5, not 0.50).
func FormatQuantile(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// IsNumeric reports whether a value literal is acceptable for the value
// column: after removing every decimal point character, all remaining
// runes must be digits. Signs are not accepted.
func IsNumeric(s string) bool {
	stripped := strings.ReplaceAll(s, ".", "")
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
