package check

import (
	"strings"
	"testing"

	"github.com/metricslab/hubcheck/pkg/forecast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckQuantiles(t *testing.T) {
	c := testChecker()

	t.Run("complete group", func(t *testing.T) {
		csv := header + quantileRows("DE", "00+", "2023-11-09", "2023-11-12", "1")
		diags, err := c.checkQuantiles(mustTable(t, csv))
		require.NoError(t, err)
		assert.Empty(t, diags)
	})

	t.Run("removing any level flags the group", func(t *testing.T) {
		full := quantileRows("DE", "00+", "2023-11-09", "2023-11-12", "1")
		lines := strings.Split(strings.TrimRight(full, "\n"), "\n")
		require.Len(t, lines, 7)

		for drop := range lines {
			kept := make([]string, 0, 6)
			for i, l := range lines {
				if i != drop {
					kept = append(kept, l)
				}
			}
			// A second complete group keeps the file from being pure-median
			// when the 6 kept levels happen to include only 0.5.
			csv := header + strings.Join(kept, "\n") + "\n" +
				quantileRows("DE-BW", "00+", "2023-11-09", "2023-11-12", "1")

			diags, err := c.checkQuantiles(mustTable(t, csv))
			require.NoError(t, err)
			require.Len(t, diags, 1, "dropped line %d", drop)
			assert.Contains(t, diags[0].Message, "Not all quantiles were provided")
			assert.Contains(t, diags[0].Message, "DE")
		}
	})

	t.Run("mean-only file is exempt across horizons", func(t *testing.T) {
		csv := header +
			"DE,00+,2023-11-09,2023-11-12,1,mean,,120\n" +
			"DE,00+,2023-11-09,2023-11-19,2,mean,,125\n" +
			"DE-BW,60+,2023-11-09,2023-11-05,0,mean,,90\n"
		diags, err := c.checkQuantiles(mustTable(t, csv))
		require.NoError(t, err)
		assert.Empty(t, diags)
	})

	t.Run("median-only file is exempt", func(t *testing.T) {
		csv := header +
			"DE,00+,2023-11-09,2023-11-12,1,quantile,0.5,120\n" +
			"DE-BW,00+,2023-11-09,2023-11-12,1,quantile,0.5,130\n" +
			"DE,00+,2023-11-09,2023-11-12,1,mean,,118\n"
		diags, err := c.checkQuantiles(mustTable(t, csv))
		require.NoError(t, err)
		assert.Empty(t, diags)
	})

	t.Run("mixed levels disable the median exemption", func(t *testing.T) {
		csv := header +
			"DE,00+,2023-11-09,2023-11-12,1,quantile,0.5,120\n" +
			"DE,00+,2023-11-09,2023-11-12,1,quantile,0.9,140\n"
		diags, err := c.checkQuantiles(mustTable(t, csv))
		require.NoError(t, err)
		require.Len(t, diags, 1)
	})

	t.Run("duplicate median does not break completeness", func(t *testing.T) {
		// Seven distinct levels plus a duplicated 0.5 row: the distinct
		// count is still seven.
		csv := header +
			quantileRows("DE", "00+", "2023-11-09", "2023-11-12", "1") +
			"DE,00+,2023-11-09,2023-11-12,1,quantile,0.5,999\n"
		diags, err := c.checkQuantiles(mustTable(t, csv))
		require.NoError(t, err)
		assert.Empty(t, diags)
	})

	t.Run("groups split on target date", func(t *testing.T) {
		csv := header +
			quantileRows("DE", "00+", "2023-11-09", "2023-11-12", "1") +
			"DE,00+,2023-11-09,2023-11-19,2,quantile,0.5,100\n" +
			"DE,00+,2023-11-09,2023-11-19,2,quantile,0.9,110\n"
		diags, err := c.checkQuantiles(mustTable(t, csv))
		require.NoError(t, err)
		require.Len(t, diags, 1)
		assert.Contains(t, diags[0].Message, "2023-11-19")
		assert.NotContains(t, diags[0].Message, "2023-11-12")
	})

	t.Run("missing group column is incompletable", func(t *testing.T) {
		_, err := c.checkQuantiles(&forecast.Table{Columns: []string{"location"}})
		assert.Error(t, err)
	})
}
