package engine

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ============================================================================
// PERIODS: Month canonicalization and synthetic chronology
// ============================================================================
// Raw month labels ("January", " dec-23", "MAR") collapse to "Jan".."Dec".
// Each canonical month maps onto the first day of that month in a single
// reference year. The date is a sort key and tick label only; it does not
// claim the data belongs to that year.
// ============================================================================

// Months is the canonical period vocabulary in calendar order.
var Months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var monthIndex = func() map[string]int {
	m := make(map[string]int, len(Months))
	for i, name := range Months {
		m[name] = i + 1
	}
	return m
}()

// NormalizeMonth trims a label, keeps its first three characters and
// title-cases them. The result is not guaranteed to be a real month.
func NormalizeMonth(raw string) string {
	s := []rune(strings.TrimSpace(raw))
	if len(s) > 3 {
		s = s[:3]
	}
	return cases.Title(language.Und).String(string(s))
}

// IsMonth reports whether label is one of the twelve canonical months.
func IsMonth(label string) bool {
	_, ok := monthIndex[label]
	return ok
}

// PeriodDate maps a canonical month onto the reference year.
func PeriodDate(label string, year int) (time.Time, error) {
	t, err := time.Parse("Jan-2006", fmt.Sprintf("%s-%04d", label, year))
	if err != nil {
		return time.Time{}, &FormatError{Period: label, Err: err}
	}
	return t, nil
}

// TickLabel renders a synthetic period date the way the x-axis shows it.
func TickLabel(t time.Time) string {
	return t.Format("Jan 2006")
}
