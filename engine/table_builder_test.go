package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kpiRows = `area|regional|networksite|Month|Availability|Accessibility|Final KPI
Area 1|Sumbagut|Medan|Feb|99.5|98|96.456
Area 1|Sumbagut|Medan|Jan|99.1|n/a|79.999
Area 1|Sumbagut|Binjai|Jan|97|95|85
Area 1|Sumbagut|Binjai|Foo|97|95|90
Area 2|Jabar|Bandung|Jan|97|95|`

func kpiSpec() ViewSpec {
	return ViewSpec{
		Name:        "kpi",
		Title:       "KPI Scorecard",
		Intent:      IntentTable,
		Hierarchy:   siteHierarchy()[:3],
		Period:      "Month",
		Columns:     []string{"Availability", "Accessibility"},
		ScoreColumn: "Final KPI",
	}
}

func TestBuildKPITable(t *testing.T) {
	ds := datasetFrom(t, kpiRows)
	table, stats, err := buildKPITable(kpiSpec(), Selection{"area": "Area 1"}, ds, applyOptions(nil))
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Filtered)
	assert.Equal(t, 1, stats.Dropped)
	assert.Equal(t, "KPI Scorecard (Area: Area 1)", table.Title)

	keys := make([]string, 0, len(table.Columns))
	for _, c := range table.Columns {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"No", "area", "regional", "networksite", "Month", "Availability", "Accessibility", "Final KPI"}, keys)
	assert.Equal(t, "Regional", table.Columns[2].Label)

	assert.Equal(t, [][]string{
		{"1", "Area 1", "Sumbagut", "Binjai", "Jan", "97.00", "95.00", "85.00"},
		{"2", "Area 1", "Sumbagut", "Medan", "Jan", "99.10", "", "80.00"},
		{"3", "Area 1", "Sumbagut", "Medan", "Feb", "99.50", "98.00", "96.46"},
	}, table.Rows)
	assert.Equal(t, []Band{BandLightGreen, BandOrange, BandBlue}, table.Bands)
	assert.Equal(t, []float64{85, 80, 96.46}, table.Scores)

	require.NotNil(t, table.Summary)
	assert.Equal(t, "87.15", table.Summary.Values["Final KPI"])
	assert.Equal(t, "light_green", table.Summary.Values["band"])
	assert.Equal(t, 7, table.ColumnIndex("Final KPI"))
	assert.Equal(t, -1, table.ColumnIndex("missing"))
	assert.Equal(t, 7, table.ScoreIndex())
	assert.Equal(t, -1, (&TableData{ScoreColumn: "Final KPI"}).ScoreIndex(), "no bands, no score column")
}

func TestBuildKPITableEmpty(t *testing.T) {
	ds := datasetFrom(t, kpiRows)

	_, err := BuildKPITable(kpiSpec(), Selection{"area": "Area 2"}, ds)
	assert.ErrorIs(t, err, ErrEmptyResult)
	assert.Equal(t, StageAggregate, EmptyStage(err))

	_, err = BuildKPITable(kpiSpec(), Selection{"area": "Area 3"}, ds)
	assert.Equal(t, StageFilter, EmptyStage(err))
}

func TestBuildSeriesTable(t *testing.T) {
	jan, _ := PeriodDate("Jan", DefaultReferenceYear)
	feb, _ := PeriodDate("Feb", DefaultReferenceYear)
	points := []SeriesPoint{
		{Period: "Jan", Group: "Medan", Value: 98.3, Date: jan},
		{Period: "Feb", Group: "Medan", Value: 98.7, Date: feb},
	}

	table := BuildSeriesTable(regionalSpec(), "Regional Availability", points)
	assert.Equal(t, "Regional Availability", table.Title)
	require.Len(t, table.Columns, 4)
	assert.Equal(t, IndexColumn, table.Columns[0].Key)
	assert.Equal(t, [][]string{
		{"1", "Jan 2025", "Medan", "98.30"},
		{"2", "Feb 2025", "Medan", "98.70"},
	}, table.Rows)
	assert.Empty(t, table.Bands)
}
