package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/enomcdcdash/enomdash/engine"
)

// ============================================================================
// CSV SOURCE: Parses CSV text into an engine.Dataset
// ============================================================================
// Ragged rows are allowed: short rows leave trailing cells missing, long rows
// lose their extra cells. Malformed rows are skipped.
// ============================================================================

// ParseCSV reads a header row followed by data rows.
func ParseCSV(r io.Reader, opts ...Option) (*engine.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	// Read header
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	// Read rows
	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		rows = append(rows, row)
	}

	return buildDataset(header, rows, applyOptions(opts))
}
