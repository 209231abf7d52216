package dashboard

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enomcdcdash/enomdash/config"
	"github.com/enomcdcdash/enomdash/engine"
	"github.com/enomcdcdash/enomdash/metrics"
)

const availabilityCSV = `area,regional,networksite,site_id,Month,Availability (Ave)
Area 1,Sumbagut,Medan,MDN001,Jan,99.10
Area 1,Sumbagut,Medan,MDN001,Feb,98.70
Area 1,Sumbagsel,Palembang,PLB001,Jan,99.90
Area 2,Jabar,Bandung,BDG001,Feb,98.00
`

const kpiCSV = `area,regional,networksite,Month,Availability,Accessibility,Retainability,Integrity,Mobility,Final KPI
Area 1,Sumbagut,Medan,Jan,99.1,98,97,99,96,91.25
Area 1,Sumbagut,Binjai,Jan,97,95,94,96,93,79.5
`

// testDashboard writes the fixture files and a config pointing at them.
// The nop source has a header and no rows.
func testDashboard(t *testing.T) (*Dashboard, string) {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("availability.csv", availabilityCSV)
	write("empty.csv", "area,regional,networksite,Month,Availability (Ave)\n")
	write("kpi.csv", kpiCSV)
	write("enomdash.yaml", `
server:
  mode: test
data:
  dir: `+dir+`
  seed: 7
sources:
  regional:
    path: availability.csv
  nop:
    path: empty.csv
  site:
    path: availability.csv
  kpi:
    path: kpi.csv
`)

	cfg, err := config.Load(filepath.Join(dir, "enomdash.yaml"))
	require.NoError(t, err)
	return New(cfg, nil), dir
}

func TestRenderRemembersSelection(t *testing.T) {
	d, _ := testDashboard(t)

	res, err := d.Render("regional", Request{Selections: engine.Selection{"area": "Area 1"}})
	require.NoError(t, err)
	assert.Equal(t, engine.IntentChart, res.Type)
	assert.Equal(t, 3, res.Filtered)
	assert.Equal(t, engine.Selection{"area": "Area 1", "regional": engine.All}, res.Selection)
	assert.Equal(t, "Number of rows after filtering: 3", res.Reply)
	assert.Equal(t, "regional", d.Session().Tab())

	// A request with no overrides reuses the stored selection.
	res, err = d.Render("regional", Request{})
	require.NoError(t, err)
	assert.Equal(t, "Area 1", res.Selection["area"])
	assert.Equal(t, 3, res.Filtered)
}

func TestRenderRepairsStaleSelection(t *testing.T) {
	d, _ := testDashboard(t)
	stale := testutil.ToFloat64(metrics.StaleSelectionsTotal.WithLabelValues("regional", "regional"))

	res, err := d.Render("regional", Request{Selections: engine.Selection{"area": "Area 2", "regional": "Sumbagut"}})
	require.NoError(t, err)
	assert.Equal(t, engine.All, res.Selection["regional"])
	assert.True(t, res.Cascade.Dimensions[1].Reset)
	assert.Equal(t, 1, res.Filtered)
	assert.Equal(t, stale+1, testutil.ToFloat64(metrics.StaleSelectionsTotal.WithLabelValues("regional", "regional")))

	snap := d.Session().Snapshot()
	assert.Equal(t, engine.All, snap.Selections["regional"]["regional"])
}

func TestRenderSiteLandsOnConcreteMember(t *testing.T) {
	d, _ := testDashboard(t)

	res, err := d.Render("site", Request{})
	require.NoError(t, err)
	assert.Contains(t, []string{"BDG001", "MDN001", "PLB001"}, res.Selection["site_id"])
	require.NotNil(t, res.ChartConfig)
	assert.Len(t, res.ChartConfig.Series, 1)
}

func TestRenderEmpty(t *testing.T) {
	d, _ := testDashboard(t)
	before := testutil.ToFloat64(metrics.PipelineRunsTotal.WithLabelValues("nop", metrics.OutcomeEmpty))

	res, err := d.Render("nop", Request{})
	require.NoError(t, err)
	assert.True(t, res.Empty)
	assert.Equal(t, "No valid data available after filtering for NOP Availability.", res.Reply)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.PipelineRunsTotal.WithLabelValues("nop", metrics.OutcomeEmpty)))

	_, err = d.Export("nop", Request{})
	assert.ErrorIs(t, err, engine.ErrEmptyResult)
}

func TestRenderUnknownView(t *testing.T) {
	d, _ := testDashboard(t)
	_, err := d.Render("cluster", Request{})
	assert.ErrorIs(t, err, ErrUnknownView)
	assert.ErrorIs(t, d.SetTab("cluster"), ErrUnknownView)
	assert.NoError(t, d.SetTab("kpi"))
	assert.Equal(t, "kpi", d.Session().Tab())
}

func TestRenderMissingSource(t *testing.T) {
	d, dir := testDashboard(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "kpi.csv")))

	_, err := d.Render("kpi", Request{})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnknownView))
}

func TestExportChart(t *testing.T) {
	d, _ := testDashboard(t)

	table, err := d.Export("regional", Request{Selections: engine.Selection{"area": "Area 1"}})
	require.NoError(t, err)

	keys := make([]string, 0, len(table.Columns))
	for _, c := range table.Columns {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{engine.IndexColumn, "Month", "regional", "Availability (Ave)"}, keys)
	assert.Equal(t, [][]string{
		{"1", "Jan 2025", "Sumbagsel", "99.90"},
		{"2", "Jan 2025", "Sumbagut", "99.10"},
		{"3", "Feb 2025", "Sumbagut", "98.70"},
	}, table.Rows)
}

func TestExportKPI(t *testing.T) {
	d, _ := testDashboard(t)

	table, err := d.Export("kpi", Request{})
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []engine.Band{engine.BandRed, engine.BandGreen}, table.Bands)
}

func TestOptionsDoesNotRemember(t *testing.T) {
	d, _ := testDashboard(t)

	cascade, err := d.Options("regional", Request{Selections: engine.Selection{"area": "Area 2"}})
	require.NoError(t, err)
	assert.Equal(t, []string{engine.All, "Jabar"}, cascade.Dimensions[1].Options)
	assert.Empty(t, d.Session().Snapshot().Selections)
}

func TestOptionsPreviewsRandomPick(t *testing.T) {
	d, _ := testDashboard(t)

	first, err := d.Options("site", Request{})
	require.NoError(t, err)
	second, err := d.Options("site", Request{})
	require.NoError(t, err)
	site := first.Selection["site_id"]
	require.NotEqual(t, engine.All, site)
	assert.Equal(t, site, second.Selection["site_id"], "previews do not advance the session")

	res, err := d.Render("site", Request{})
	require.NoError(t, err)
	assert.Equal(t, site, res.Selection["site_id"])
}

func TestInspectAndInvalidate(t *testing.T) {
	d, _ := testDashboard(t)

	report, err := d.Inspect("site")
	require.NoError(t, err)
	assert.True(t, report.OK())

	_, err = d.Render("regional", Request{})
	require.NoError(t, err)
	// regional and site share one file.
	assert.Equal(t, 1, d.Invalidate())
	assert.Equal(t, 0, d.Invalidate())
}
