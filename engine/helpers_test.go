package engine

import (
	"strings"
	"testing"
)

// ============================================================================
// TEST FIXTURES
// ============================================================================

// siteRows is a small availability extract: area, regional, networksite,
// site_id, Month, Availability (Ave).
var siteRows = `area|regional|networksite|site_id|Month|Availability (Ave)
Area 1|Sumbagut|Medan|MDN001|Jan|99.10
Area 1|Sumbagut|Medan|MDN001|Feb|98.70
Area 1|Sumbagut|Medan|MDN002|Jan|97.50
Area 1|Sumbagut|Binjai|BNJ001|Jan|96.00
Area 1|Sumbagsel|Palembang|PLB001|Jan|99.90
Area 1|Sumbagsel|Palembang|PLB001|Feb|n/a
Area 2|Jabotabek|Jakarta|JKT001|Jan|99.50
Area 2|Jabotabek|Jakarta|JKT001|Mar|99.00
Area 2|Jabar|Bandung|BDG001|Feb|98.00
Area 2|Jabar|Bandung|BDG002|Feb|97.00`

func datasetFrom(t *testing.T, table string) *Dataset {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(table), "\n")
	headers := strings.Split(lines[0], "|")
	records := make([]Record, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cells := strings.Split(line, "|")
		rec := Record{Values: make(map[string]string, len(headers))}
		for i, h := range headers {
			if i < len(cells) {
				rec.Values[h] = cells[i]
			}
		}
		records = append(records, rec)
	}
	return NewDataset(headers, records)
}

func siteHierarchy() []Dimension {
	return []Dimension{
		{Key: "area"},
		{Key: "regional"},
		{Key: "networksite"},
		{Key: "site_id", Reset: ResetToRandom, Search: true},
	}
}

// fixedPicker always returns the same index (clamped to n).
type fixedPicker int

func (p fixedPicker) IntN(n int) int {
	if int(p) >= n {
		return n - 1
	}
	return int(p)
}
