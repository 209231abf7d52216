package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enomcdcdash/enomdash/engine"
)

func dataset(t *testing.T, table string) *engine.Dataset {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(table), "\n")
	headers := strings.Split(lines[0], "|")
	var records []engine.Record
	for _, line := range lines[1:] {
		cells := strings.Split(line, "|")
		rec := engine.Record{Values: map[string]string{}}
		for i, h := range headers {
			if i < len(cells) {
				rec.Values[h] = cells[i]
			}
		}
		records = append(records, rec)
	}
	return engine.NewDataset(headers, records)
}

const nopRows = `area|regional|networksite|Month|Availability (Ave)|remark
Area 1|Sumbagut|Medan|Jan|99.10|ok
Area 1|Sumbagut|Medan|Feb|98.70|
Area 1|Sumbagut|Binjai|Jan|n/a|late
Area 2|Jabar|Bandung|Mar|97.00|ok`

func findColumn(r *Report, name string) ColumnReport {
	for _, c := range r.Columns {
		if c.Column == name {
			return c
		}
	}
	return ColumnReport{}
}

func TestInspectNOP(t *testing.T) {
	v, _ := Preset("nop")
	r := Inspect(v, dataset(t, nopRows))

	assert.True(t, r.OK())
	assert.Equal(t, 4, r.Rows)

	month := findColumn(r, "Month")
	assert.Equal(t, RolePeriod, month.Role)
	assert.Equal(t, TypeTemporal, month.Type)
	assert.Equal(t, "MMM", month.TemporalFormat)

	metric := findColumn(r, "Availability (Ave)")
	assert.Equal(t, RoleMetric, metric.Role)
	assert.Equal(t, TypeNumeric, metric.Type)
	assert.Equal(t, 1, metric.Nulls)

	site := findColumn(r, "networksite")
	assert.Equal(t, RoleDimension, site.Role)
	assert.Equal(t, []string{"Bandung", "Binjai", "Medan"}, site.Samples)
	assert.Equal(t, "low", site.CardinalityHint)

	assert.Equal(t, RoleUnused, findColumn(r, "remark").Role)

	require.Len(t, r.Hierarchy, 2)
	for _, h := range r.Hierarchy {
		assert.True(t, h.Consistent, "%s → %s", h.Parent, h.Child)
	}
}

func TestInspectMissingColumns(t *testing.T) {
	v, _ := Preset("site")
	r := Inspect(v, dataset(t, nopRows))

	assert.False(t, r.OK())
	assert.Equal(t, []string{"site_id"}, r.Missing)
	assert.Len(t, r.Hierarchy, 2, "levels with a missing column are skipped")
}

func TestInspectHierarchyConflict(t *testing.T) {
	v, _ := Preset("regional")
	r := Inspect(v, dataset(t, `area|regional|Month|Availability (Ave)
Area 1|Jabar|Jan|99
Area 2|Jabar|Jan|98
Area 2|Jabotabek|Jan|97`))

	require.Len(t, r.Hierarchy, 1)
	assert.False(t, r.Hierarchy[0].Consistent)
	assert.Equal(t, []string{"Jabar"}, r.Hierarchy[0].Conflicts)
	assert.True(t, r.OK(), "conflicts are warnings")
}

func TestDetectType(t *testing.T) {
	assert.Equal(t, TypeNumeric, detectType([]string{"99.1", "1,234", "97%"}))
	assert.Equal(t, TypeTemporal, detectType([]string{"2025-01-01", "2025-02-01"}))
	assert.Equal(t, TypeBool, detectType([]string{"yes", "no", "true"}))
	assert.Equal(t, TypeText, detectType([]string{"Medan", "Binjai"}))
}

func TestDetectTemporalPattern(t *testing.T) {
	ok, format := detectTemporalPattern([]string{"January", "February", "March"})
	assert.True(t, ok)
	assert.Equal(t, "MMMM", format)

	ok, _ = detectTemporalPattern([]string{"Medan", "Binjai", "Bandung"})
	assert.False(t, ok)

	ok, _ = detectTemporalPattern([]string{"BDG", "JKT"})
	assert.False(t, ok)
}
