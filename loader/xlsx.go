package loader

import (
	"fmt"
	"io"

	"github.com/enomcdcdash/enomdash/engine"
	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads one worksheet whose first non-empty row is the header.
// An empty sheet name selects the first sheet in the workbook.
func ParseXLSX(r io.Reader, sheet string, opts ...Option) (*engine.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, ErrNoHeader
		}
		sheet = list[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	// Skip leading blank rows so titled sheets still find their header.
	start := 0
	for start < len(rows) && blankRow(rows[start]) {
		start++
	}
	if start == len(rows) {
		return nil, ErrNoHeader
	}

	return buildDataset(rows[start], rows[start+1:], applyOptions(opts))
}
