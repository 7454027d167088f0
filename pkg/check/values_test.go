package check

import (
	"testing"

	"github.com/metricslab/hubcheck/pkg/forecast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckColumnValues(t *testing.T) {
	c := testChecker()

	t.Run("all valid", func(t *testing.T) {
		csv := header +
			"DE,00+,2023-11-09,2023-11-12,1,quantile,0.5,120\n" +
			"DE-BW,60+,2023-11-09,2023-11-12,1,mean,,118\n"
		diags, err := c.checkColumnValues(mustTable(t, csv))
		require.NoError(t, err)
		assert.Empty(t, diags)
	})

	t.Run("one finding per offending column", func(t *testing.T) {
		csv := header +
			"XX,0-99,2023-11-09,2023-11-12,7,median,0.33,120\n" +
			"YY,0-99,2023-11-09,2023-11-12,7,median,0.33,120\n"
		diags, err := c.checkColumnValues(mustTable(t, csv))
		require.NoError(t, err)
		require.Len(t, diags, 5)

		assert.Equal(t, "Invalid entries in column 'location': [XX YY]", diags[0].Message)
		assert.Equal(t, "Invalid entries in column 'quantile': [0.33]", diags[1].Message)
		assert.Equal(t, "Invalid entries in column 'type': [median]", diags[2].Message)
		assert.Equal(t, "Invalid entries in column 'age_group': [0-99]", diags[3].Message)
		assert.Equal(t, "Invalid entries in column 'horizon': [7]", diags[4].Message)
	})

	t.Run("null quantiles are exempt", func(t *testing.T) {
		csv := header + "DE,00+,2023-11-09,2023-11-12,1,mean,,120\n"
		diags, err := c.checkColumnValues(mustTable(t, csv))
		require.NoError(t, err)
		assert.Empty(t, diags)
	})

	t.Run("unparseable horizon and quantile are invalid", func(t *testing.T) {
		csv := header + "DE,00+,2023-11-09,2023-11-12,one,quantile,half,120\n"
		diags, err := c.checkColumnValues(mustTable(t, csv))
		require.NoError(t, err)
		require.Len(t, diags, 2)
		assert.Contains(t, diags[0].Message, "'quantile': [half]")
		assert.Contains(t, diags[1].Message, "'horizon': [one]")
	})

	t.Run("missing column makes the rule incompletable", func(t *testing.T) {
		tab := &forecast.Table{Columns: []string{"location"}}
		_, err := c.checkColumnValues(tab)
		assert.Error(t, err)
	})

	t.Run("quantile literal variants collapse by raw literal", func(t *testing.T) {
		// 0.50 parses to a valid level; only genuinely invalid levels are
		// reported.
		csv := header +
			"DE,00+,2023-11-09,2023-11-12,1,quantile,0.50,120\n" +
			"DE,00+,2023-11-09,2023-11-12,1,quantile,0.51,121\n"
		diags, err := c.checkColumnValues(mustTable(t, csv))
		require.NoError(t, err)
		require.Len(t, diags, 1)
		assert.Equal(t, "Invalid entries in column 'quantile': [0.51]", diags[0].Message)
	})
}
