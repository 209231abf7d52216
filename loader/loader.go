package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/enomcdcdash/enomdash/engine"
)

// ============================================================================
// LOADER: Reads source files into an engine.Dataset
// ============================================================================
// The loader is the only place that touches source files. It guarantees:
//   - every header is trimmed, blank rows are skipped
//   - the period column holds canonical month labels ("Jan".."Dec")
// Everything else stays raw text; numeric coercion happens in the engine.
// ============================================================================

// DefaultMonthColumn is the period column normalized on load.
const DefaultMonthColumn = "Month"

// Source names one file (and sheet, for spreadsheets) backing a view.
type Source struct {
	Name  string `mapstructure:"name" yaml:"name" json:"name"`
	Path  string `mapstructure:"path" yaml:"path" json:"path"`
	Sheet string `mapstructure:"sheet" yaml:"sheet,omitempty" json:"sheet,omitempty"`
}

func (s Source) key() string {
	return s.Path + "#" + s.Sheet
}

func (s Source) label() string {
	if s.Name != "" {
		return s.Name
	}
	return filepath.Base(s.Path)
}

// Option configures loading.
type Option func(*options)

type options struct {
	monthColumn string
}

// WithMonthColumn sets the column normalized to canonical months.
// An empty name disables normalization.
func WithMonthColumn(column string) Option {
	return func(o *options) { o.monthColumn = column }
}

func applyOptions(opts []Option) *options {
	o := &options{monthColumn: DefaultMonthColumn}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Load reads a source by file extension: .csv, or .xlsx / .xlsm.
func Load(src Source, opts ...Option) (*engine.Dataset, error) {
	f, err := os.Open(src.Path)
	if err != nil {
		return nil, newSourceError(src, err)
	}
	defer f.Close()

	var ds *engine.Dataset
	switch strings.ToLower(filepath.Ext(src.Path)) {
	case ".csv":
		ds, err = ParseCSV(f, opts...)
	case ".xlsx", ".xlsm":
		ds, err = ParseXLSX(f, src.Sheet, opts...)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(src.Path))
	}
	if err != nil {
		return nil, newSourceError(src, err)
	}
	return ds, nil
}

// buildDataset turns a header row and raw rows into a Dataset.
func buildDataset(header []string, rows [][]string, o *options) (*engine.Dataset, error) {
	columns := make([]string, 0, len(header))
	keep := make([]int, 0, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		columns = append(columns, h)
		keep = append(keep, i)
	}
	if len(columns) == 0 {
		return nil, ErrNoHeader
	}
	if o.monthColumn != "" && !seen[o.monthColumn] {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, o.monthColumn)
	}

	records := make([]engine.Record, 0, len(rows))
	for _, row := range rows {
		if blankRow(row) {
			continue
		}
		rec := engine.Record{Values: make(map[string]string, len(columns))}
		for j, col := range columns {
			idx := keep[j]
			if idx >= len(row) {
				continue
			}
			rec.Values[col] = strings.TrimSpace(row[idx])
		}
		if o.monthColumn != "" {
			if v := rec.Values[o.monthColumn]; v != "" {
				rec.Values[o.monthColumn] = engine.NormalizeMonth(v)
			}
		}
		records = append(records, rec)
	}
	return engine.NewDataset(columns, records), nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
