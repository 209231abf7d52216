package engine

import (
	"errors"
	"fmt"
)

// ErrEmptyResult signals that filtering or aggregation left nothing to show.
// It is an expected outcome, not a failure.
var ErrEmptyResult = errors.New("no data")

// Pipeline stages reported by EmptyError.
const (
	StageFilter    = "filtering"
	StageAggregate = "aggregation"
)

// EmptyError carries the stage that produced an empty result.
// errors.Is(err, ErrEmptyResult) holds for every EmptyError.
type EmptyError struct {
	Stage string
}

func (e *EmptyError) Error() string {
	return fmt.Sprintf("%s after %s", ErrEmptyResult, e.Stage)
}

func (e *EmptyError) Is(target error) bool {
	return target == ErrEmptyResult
}

// FormatError reports a period label that cannot be placed on the calendar.
// It halts the current render only.
type FormatError struct {
	Period string
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot convert period %q to a month: %v", e.Period, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// EmptyStage returns the stage an empty-result error came from, or "".
func EmptyStage(err error) string {
	var e *EmptyError
	if errors.As(err, &e) {
		return e.Stage
	}
	return ""
}
