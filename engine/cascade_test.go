package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeOptionsUnfiltered(t *testing.T) {
	ds := datasetFrom(t, siteRows)
	c := ComputeOptions(ds, siteHierarchy()[:3], Selection{})

	require.Len(t, c.Dimensions, 3)
	assert.Equal(t, []string{All, "Area 1", "Area 2"}, c.Dimensions[0].Options)
	assert.Equal(t, []string{All, "Jabar", "Jabotabek", "Sumbagsel", "Sumbagut"}, c.Dimensions[1].Options)
	for _, d := range c.Dimensions {
		assert.Equal(t, All, d.Selected)
		assert.False(t, d.Reset, "unset default dimension is not stale")
	}
	assert.Equal(t, ds.Len(), c.Active.Len())
}

func TestComputeOptionsNarrowsLeftToRight(t *testing.T) {
	ds := datasetFrom(t, siteRows)
	c := ComputeOptions(ds, siteHierarchy()[:3], Selection{"area": "Area 2", "regional": "Jabar"})

	assert.Equal(t, []string{All, "Jabar", "Jabotabek"}, c.Dimensions[1].Options)
	assert.Equal(t, []string{All, "Bandung"}, c.Dimensions[2].Options)
	assert.Equal(t, "Jabar", c.Selection["regional"])
	assert.Equal(t, 2, c.Active.Len())
}

func TestComputeOptionsResetsStaleToAll(t *testing.T) {
	ds := datasetFrom(t, siteRows)
	c := ComputeOptions(ds, siteHierarchy()[:3], Selection{"area": "Area 2", "regional": "Sumbagut"})

	assert.Equal(t, All, c.Selection["regional"])
	assert.True(t, c.Dimensions[1].Reset)
	assert.Equal(t, []string{All, "Bandung", "Jakarta"}, c.Dimensions[2].Options)
}

func TestComputeOptionsRandomReset(t *testing.T) {
	ds := datasetFrom(t, siteRows)
	sel := Selection{"area": "Area 1", "regional": "Sumbagut", "networksite": "Medan"}

	c := ComputeOptions(ds, siteHierarchy(), sel, WithPicker(fixedPicker(1)))
	site := c.Dimensions[3]
	assert.Equal(t, []string{All, "MDN001", "MDN002"}, site.Options)
	assert.Equal(t, "MDN002", site.Selected)

	// A remembered valid pick survives the next pass untouched.
	sel["site_id"] = "MDN002"
	c = ComputeOptions(ds, siteHierarchy(), sel, WithPicker(fixedPicker(0)))
	assert.Equal(t, "MDN002", c.Selection["site_id"])
	assert.False(t, c.Dimensions[3].Reset)

	// An explicit All is honored.
	sel["site_id"] = All
	c = ComputeOptions(ds, siteHierarchy(), sel, WithPicker(fixedPicker(0)))
	assert.Equal(t, All, c.Selection["site_id"])
}

func TestComputeOptionsRandomResetWithoutCandidates(t *testing.T) {
	ds := datasetFrom(t, siteRows)
	c := ComputeOptions(ds, siteHierarchy(), Selection{"site_id": "GONE"},
		WithSearch(map[string]string{"site_id": "zzz"}))

	assert.Equal(t, []string{All}, c.Dimensions[3].Options)
	assert.Equal(t, All, c.Selection["site_id"])
	assert.True(t, c.Dimensions[3].Reset)
}

func TestComputeOptionsSearch(t *testing.T) {
	ds := datasetFrom(t, siteRows)
	c := ComputeOptions(ds, siteHierarchy(), Selection{"site_id": All},
		WithSearch(map[string]string{"site_id": " jkt "}))

	assert.Equal(t, []string{All, "JKT001"}, c.Dimensions[3].Options)
	assert.Equal(t, "jkt", c.Dimensions[3].Search)
	assert.Equal(t, 2, c.Active.Len())
}

func TestComputeOptionsEmptyDataset(t *testing.T) {
	ds := NewDataset([]string{"area", "regional"}, nil)
	c := ComputeOptions(ds, siteHierarchy(), Selection{"area": "Area 1"})

	for _, d := range c.Dimensions {
		assert.Equal(t, []string{All}, d.Options)
		assert.Equal(t, All, d.Selected)
	}
}

func TestDistinctValuesNumericSort(t *testing.T) {
	ds := datasetFrom(t, "site_id\n10\n9\n100\n\n9")
	assert.Equal(t, []string{"9", "10", "100"}, DistinctValues(ds, "site_id"))
}

// Narrowing dimension i never grows the candidate set of dimension i+1.
func TestCascadeMonotonicity(t *testing.T) {
	ds := datasetFrom(t, siteRows)
	h := siteHierarchy()

	base := ComputeOptions(ds, h, Selection{"site_id": All})
	for i := 0; i < len(h)-1; i++ {
		for _, v := range base.Dimensions[i].Options[1:] {
			sel := Selection{"site_id": All}
			for j := 0; j < i; j++ {
				sel[h[j].Key] = All
			}
			sel[h[i].Key] = v
			narrowed := ComputeOptions(ds, h, sel)
			assert.LessOrEqual(t, len(narrowed.Dimensions[i+1].Options), len(base.Dimensions[i+1].Options),
				"dimension %s=%s", h[i].Key, v)
		}
	}
}

// After one pass every resolved value is All or one of its options.
func TestSelfHealingInvariant(t *testing.T) {
	ds := datasetFrom(t, siteRows)
	h := siteHierarchy()
	r := rand.New(rand.NewPCG(1, 2))
	values := []string{All, "", "Area 1", "Area 2", "Jabar", "Sumbagut", "Medan", "Jakarta", "MDN001", "JKT001", "stale"}

	for n := 0; n < 200; n++ {
		sel := Selection{}
		for _, d := range h {
			sel[d.Key] = values[r.IntN(len(values))]
		}
		c := ComputeOptions(ds, h, sel, WithPicker(r))
		for _, d := range c.Dimensions {
			assert.Contains(t, d.Options, d.Selected, "selection %v", sel)
		}
	}
}
