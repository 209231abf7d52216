package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteChart(t *testing.T) {
	ds := datasetFrom(t, siteRows)
	res, err := Execute(regionalSpec(), ds, Selection{"area": "Area 2", "regional": "Sumbagut"})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, IntentChart, res.Type)
	assert.False(t, res.Empty)
	// The stale regional pick is repaired before aggregation.
	assert.Equal(t, All, res.Selection["regional"])
	assert.True(t, res.Cascade.Dimensions[1].Reset)
	assert.Equal(t, 4, res.Filtered)
	assert.Equal(t, "Number of rows after filtering: 4", res.Reply)
	assert.Equal(t, "Regional Availability (Area: Area 2)", res.Title)
	require.NotNil(t, res.ChartConfig)
	assert.Len(t, res.ChartConfig.Series, 2)
	assert.Len(t, res.Points, 3)
}

func TestExecuteDoesNotMutateSelection(t *testing.T) {
	ds := datasetFrom(t, siteRows)
	sel := Selection{"area": "Area 2", "regional": "Sumbagut"}
	_, err := Execute(regionalSpec(), ds, sel)
	require.NoError(t, err)
	assert.Equal(t, "Sumbagut", sel["regional"])
}

func TestExecuteEmptyAfterFiltering(t *testing.T) {
	ds := NewDataset([]string{"area", "regional", "Month", "Availability (Ave)"}, nil)
	res, err := Execute(regionalSpec(), ds, Selection{})
	require.NoError(t, err)

	assert.True(t, res.Empty)
	assert.Equal(t, "text", res.Type)
	assert.Equal(t, "No valid data available after filtering for Regional Availability.", res.Reply)
	assert.Nil(t, res.ChartConfig)
}

func TestExecuteEmptyAfterAggregation(t *testing.T) {
	ds := datasetFrom(t, `area|regional|Month|Availability (Ave)
Area 1|Sumbagut|Jan|n/a
Area 1|Sumbagut|Feb|`)
	res, err := Execute(regionalSpec(), ds, Selection{})
	require.NoError(t, err)

	assert.True(t, res.Empty)
	assert.Equal(t, 2, res.Filtered)
	assert.Equal(t, 2, res.Dropped)
	assert.Equal(t, "No valid data available after aggregation for Regional Availability.", res.Reply)
}

func TestExecuteFormatError(t *testing.T) {
	ds := datasetFrom(t, siteRows)
	res, err := Execute(regionalSpec(), ds, Selection{}, WithReferenceYear(12345))
	require.Error(t, err)

	var fe *FormatError
	assert.True(t, errors.As(err, &fe))
	assert.False(t, errors.Is(err, ErrEmptyResult))
	require.NotNil(t, res)
	assert.Nil(t, res.ChartConfig)
	assert.False(t, res.Success)
	assert.Equal(t, FormatMessage(err), res.Reply)
	assert.Contains(t, res.Reply, "Error converting months: ")
}

func TestExecuteTable(t *testing.T) {
	ds := datasetFrom(t, kpiRows)
	res, err := Execute(kpiSpec(), ds, Selection{"area": "Area 1"})
	require.NoError(t, err)

	assert.Equal(t, IntentTable, res.Type)
	require.NotNil(t, res.TableData)
	assert.Len(t, res.TableData.Rows, 3)
	assert.Nil(t, res.ChartConfig)
	assert.Equal(t, "Number of rows after filtering: 4", res.Reply)
}

func TestExecuteRejectsBadSpecs(t *testing.T) {
	ds := datasetFrom(t, siteRows)

	noPeriod := regionalSpec()
	noPeriod.Period = ""
	noScore := kpiSpec()
	noScore.ScoreColumn = ""
	noGroup := regionalSpec()
	noGroup.GroupBy = ""
	badIntent := regionalSpec()
	badIntent.Intent = "pie"

	for _, spec := range []ViewSpec{noPeriod, noScore, noGroup, badIntent} {
		res, err := Execute(spec, ds, Selection{})
		assert.Error(t, err, spec.Name)
		assert.Nil(t, res)
	}
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "No valid data available after filtering for Site Availability.", EmptyMessage("", "Site Availability"))
	assert.Equal(t, "Area: Area 1, Regional: All", DescribeSelection(siteHierarchy()[:2], Selection{"area": "Area 1"}))

	jan, _ := PeriodDate("Jan", DefaultReferenceYear)
	mar, _ := PeriodDate("Mar", DefaultReferenceYear)
	assert.Equal(t, "No data", DerivePeriod(nil))
	assert.Equal(t, "Jan", DerivePeriod([]SeriesPoint{{Period: "Jan", Date: jan}}))
	assert.Equal(t, "Jan–Mar", DerivePeriod([]SeriesPoint{{Period: "Mar", Date: mar}, {Period: "Jan", Date: jan}}))
}
