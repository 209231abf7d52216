package loader

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat indicates a source file extension the loader cannot read.
var ErrUnsupportedFormat = errors.New("unsupported source format")

// ErrNoHeader indicates a source without a header row.
var ErrNoHeader = errors.New("missing header row")

// ErrMissingColumn indicates a required column absent from the header.
var ErrMissingColumn = errors.New("missing column")

// SourceError represents a failure to load one dataset source.
type SourceError struct {
	Path  string
	Sheet string
	Err   error
}

func (e *SourceError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("load %s (sheet %q): %v", e.Path, e.Sheet, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

func newSourceError(src Source, err error) *SourceError {
	return &SourceError{Path: src.Path, Sheet: src.Sheet, Err: err}
}
