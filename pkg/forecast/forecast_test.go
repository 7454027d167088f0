package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"12", true},
		{"12.5", true},
		{"0.025", true},
		{"12.", true},
		{".5", true},
		{"1.2.3", true}, // dots are stripped before the digit check
		{"", false},
		{".", false},
		{"-5", false}, // signs are not accepted
		{"1e5", false},
		{"abc", false},
		{"12a", false},
		{"NA", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNumeric(tt.value))
		})
	}
}

func TestTargetEndDate(t *testing.T) {
	forecastDate := time.Date(2023, 11, 9, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		horizon int
		want    string
	}{
		{-1, "2023-10-29"},
		{0, "2023-11-05"},
		{1, "2023-11-12"},
		{2, "2023-11-19"},
		{4, "2023-12-03"},
	}
	for _, tt := range tests {
		got := TargetEndDate(forecastDate, tt.horizon)
		assert.Equal(t, tt.want, got.Format(DateLayout), "horizon %d", tt.horizon)
	}
}

func TestNewDateValue(t *testing.T) {
	ok := NewDateValue("2023-11-09")
	require.True(t, ok.OK)
	assert.Equal(t, time.Date(2023, 11, 9, 0, 0, 0, 0, time.UTC), ok.Date)

	for _, raw := range []string{"09-11-2023", "2023-13-01", "next thursday", ""} {
		assert.False(t, NewDateValue(raw).OK, "raw %q", raw)
	}
}

func TestNewFloatValue(t *testing.T) {
	null := NewFloatValue("")
	assert.True(t, null.Null)
	assert.False(t, null.OK)

	q := NewFloatValue("0.50")
	require.True(t, q.OK)
	assert.False(t, q.Null)
	assert.Equal(t, 0.5, q.Float)

	bad := NewFloatValue("half")
	assert.False(t, bad.OK)
	assert.False(t, bad.Null)
	assert.Equal(t, "half", bad.Raw)
}

func TestFormatQuantile(t *testing.T) {
	assert.Equal(t, "0.5", FormatQuantile(0.5))
	assert.Equal(t, "0.025", FormatQuantile(0.025))
	assert.Equal(t, "0.975", FormatQuantile(0.975))
}
