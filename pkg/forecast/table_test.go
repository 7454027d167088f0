package forecast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `location,age_group,forecast_date,target_end_date,horizon,type,quantile,value
DE,00+,2023-11-09,2023-11-12,1,quantile,0.5,120
DE,00+,2023-11-09,2023-11-12,1,mean,,118.5
`

func TestReadTable(t *testing.T) {
	tab, err := ReadTable(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, Columns(), tab.Columns)
	require.Len(t, tab.Rows, 2)

	first := tab.Rows[0]
	assert.Equal(t, "DE", first.Location)
	assert.Equal(t, "00+", first.AgeGroup)
	assert.True(t, first.ForecastDate.OK)
	assert.Equal(t, "2023-11-09", first.ForecastDate.Raw)
	assert.True(t, first.Horizon.OK)
	assert.Equal(t, 1, first.Horizon.Int)
	assert.Equal(t, TypeQuantile, first.Type)
	require.True(t, first.Quantile.OK)
	assert.Equal(t, 0.5, first.Quantile.Float)
	assert.Equal(t, "120", first.Value)

	second := tab.Rows[1]
	assert.Equal(t, TypeMean, second.Type)
	assert.True(t, second.Quantile.Null)
}

func TestReadTableMissingColumn(t *testing.T) {
	csv := "location,age_group,forecast_date,target_end_date,type,quantile,value\n" +
		"DE,00+,2023-11-09,2023-11-12,quantile,0.5,120\n"
	tab, err := ReadTable(strings.NewReader(csv))
	require.NoError(t, err)

	// Missing columns are a schema finding, not a parse failure.
	assert.False(t, tab.HasColumn(ColHorizon))
	assert.False(t, tab.Rows[0].Horizon.OK)
}

func TestReadTableRaggedRecord(t *testing.T) {
	csv := "location,age_group,forecast_date,target_end_date,horizon,type,quantile,value\n" +
		"DE,00+,2023-11-09\n"
	_, err := ReadTable(strings.NewReader(csv))
	assert.Error(t, err)
}

func TestReadTableEmpty(t *testing.T) {
	_, err := ReadTable(strings.NewReader(""))
	assert.Error(t, err)
}

func TestHasColumns(t *testing.T) {
	tab := &Table{Columns: []string{ColLocation, ColType}}
	assert.True(t, tab.HasColumns(ColLocation, ColType))
	assert.False(t, tab.HasColumns(ColLocation, ColHorizon))
}
