package check

import (
	"testing"

	"github.com/metricslab/hubcheck/pkg/forecast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckValue(t *testing.T) {
	c := testChecker()

	t.Run("all numeric", func(t *testing.T) {
		csv := header +
			"DE,00+,2023-11-09,2023-11-12,1,quantile,0.5,120\n" +
			"DE,00+,2023-11-09,2023-11-12,1,mean,,118.5\n"
		diags, err := c.checkValue(mustTable(t, csv))
		require.NoError(t, err)
		assert.Empty(t, diags)
	})

	t.Run("missing values counted", func(t *testing.T) {
		csv := header +
			"DE,00+,2023-11-09,2023-11-12,1,quantile,0.25,\n" +
			"DE,00+,2023-11-09,2023-11-12,1,quantile,0.5,120\n" +
			"DE,00+,2023-11-09,2023-11-12,1,quantile,0.75,\n"
		diags, err := c.checkValue(mustTable(t, csv))
		require.NoError(t, err)
		require.Len(t, diags, 1)
		assert.Equal(t, "Missing values in column 'value' are not allowed. 2 values are missing.", diags[0].Message)
	})

	t.Run("non-numeric literals listed", func(t *testing.T) {
		csv := header +
			"DE,00+,2023-11-09,2023-11-12,1,quantile,0.25,NA\n" +
			"DE,00+,2023-11-09,2023-11-12,1,quantile,0.5,-5\n"
		diags, err := c.checkValue(mustTable(t, csv))
		require.NoError(t, err)
		require.Len(t, diags, 1)
		assert.Equal(t, "Non-numeric entries in column 'value' are not allowed: [NA -5].", diags[0].Message)
	})

	t.Run("both findings fire together", func(t *testing.T) {
		csv := header +
			"DE,00+,2023-11-09,2023-11-12,1,quantile,0.25,\n" +
			"DE,00+,2023-11-09,2023-11-12,1,quantile,0.5,abc\n"
		diags, err := c.checkValue(mustTable(t, csv))
		require.NoError(t, err)
		require.Len(t, diags, 2)
	})

	t.Run("missing column is incompletable", func(t *testing.T) {
		_, err := c.checkValue(&forecast.Table{Columns: []string{"location"}})
		assert.Error(t, err)
	})
}

func TestCheckMean(t *testing.T) {
	c := testChecker()

	t.Run("mean with null quantile passes", func(t *testing.T) {
		csv := header + "DE,00+,2023-11-09,2023-11-12,1,mean,,120\n"
		diags, err := c.checkMean(mustTable(t, csv))
		require.NoError(t, err)
		assert.Empty(t, diags)
	})

	t.Run("single violation", func(t *testing.T) {
		csv := header + "DE,00+,2023-11-09,2023-11-12,1,mean,0.5,120\n"
		diags, err := c.checkMean(mustTable(t, csv))
		require.NoError(t, err)
		require.Len(t, diags, 1)
		assert.Equal(t, `Rows with type "mean" should have NA in column 'quantile'. This was violated 1 time.`, diags[0].Message)
	})

	t.Run("plural violations", func(t *testing.T) {
		csv := header +
			"DE,00+,2023-11-09,2023-11-12,1,mean,0.5,120\n" +
			"DE,60+,2023-11-09,2023-11-12,1,mean,0.9,130\n"
		diags, err := c.checkMean(mustTable(t, csv))
		require.NoError(t, err)
		require.Len(t, diags, 1)
		assert.Contains(t, diags[0].Message, "violated 2 times.")
	})

	t.Run("quantile rows are unaffected", func(t *testing.T) {
		csv := header + "DE,00+,2023-11-09,2023-11-12,1,quantile,0.5,120\n"
		diags, err := c.checkMean(mustTable(t, csv))
		require.NoError(t, err)
		assert.Empty(t, diags)
	})
}
