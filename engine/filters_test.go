package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplySelection(t *testing.T) {
	ds := datasetFrom(t, siteRows)

	assert.Equal(t, ds.Len(), ApplySelection(ds, nil).Len())
	assert.Equal(t, ds.Len(), ApplySelection(ds, Selection{"area": All, "regional": ""}).Len())

	v := ApplySelection(ds, Selection{"area": "Area 1", "networksite": "Medan"})
	assert.Equal(t, 3, v.Len())
	for i := 0; i < v.Len(); i++ {
		assert.Equal(t, "Medan", v.Value(i, "networksite"))
	}

	// Matching is exact, not case-folded.
	assert.Equal(t, 0, ApplySelection(ds, Selection{"area": "area 1"}).Len())
}

func TestApplySelectionTrimsCells(t *testing.T) {
	ds := datasetFrom(t, "site\n A \nA\nB")
	assert.Equal(t, 2, ApplySelection(ds, Selection{"site": "A"}).Len())
}

func TestApplySearch(t *testing.T) {
	ds := datasetFrom(t, siteRows)

	assert.Equal(t, ds.Len(), ApplySearch(ds, "site_id", "   ").Len())

	v := ApplySearch(ds, "site_id", "mdn")
	assert.Equal(t, 3, v.Len())

	// Subviews compose and still read through to the parent.
	v = ApplySearch(v, "site_id", "002")
	assert.Equal(t, 1, v.Len())
	assert.Equal(t, "97.50", v.Value(0, "Availability (Ave)"))
	m, ok := v.Measure(0, "Availability (Ave)")
	assert.True(t, ok)
	assert.Equal(t, 97.5, m)
}

func TestSubViewBounds(t *testing.T) {
	ds := datasetFrom(t, siteRows)
	v := ApplySelection(ds, Selection{"area": "Area 2"})

	assert.Equal(t, "", v.Value(-1, "area"))
	assert.Equal(t, "", v.Value(v.Len(), "area"))
	_, ok := v.Measure(v.Len(), "Availability (Ave)")
	assert.False(t, ok)
	assert.Equal(t, ds.Columns(), v.Columns())
	assert.True(t, HasColumn(v, "site_id"))
	assert.False(t, HasColumn(v, "Final KPI"))
}

func TestViewSpecFilters(t *testing.T) {
	spec := ViewSpec{Hierarchy: siteHierarchy()}
	got := spec.Filters(Selection{"site_id": "X", "area": "Area 1", "regional": All, "extra": "ignored"})
	assert.Equal(t, []Filter{{Key: "area", Value: "Area 1"}, {Key: "site_id", Value: "X"}}, got)
}
