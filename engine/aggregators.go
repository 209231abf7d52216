package engine

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ============================================================================
// AGGREGATORS: Filter, coerce, group by (period, group), mean, order
// ============================================================================
// Pipeline (always from the full dataset, never a cascade-narrowed subset):
//   1. equality filter on every concrete selection
//   2. coerce metric, drop rows missing metric / period / group
//   3. group by (canonical month, group key) and average
//   4. drop groups outside Jan..Dec
//   5. map months onto the reference year, sort by (date, group), round
// ============================================================================

// AggregateStats describes what the aggregation pass kept and dropped.
type AggregateStats struct {
	Filtered int // rows after the selection predicate
	Dropped  int // rows lost to coercion, missing cells or bad periods
}

// Aggregate computes the chronologically ordered mean metric series.
// It returns an error wrapping ErrEmptyResult when nothing survives, and a
// *FormatError when a period cannot be mapped onto the calendar.
func Aggregate(view RecordView, sel Selection, metric, period, group string, opts ...Option) ([]SeriesPoint, error) {
	points, _, err := aggregate(view, sel, metric, period, group, applyOptions(opts))
	return points, err
}

type bucket struct {
	period string
	group  string
	sum    decimal.Decimal
	count  int
}

func aggregate(view RecordView, sel Selection, metric, period, group string, cfg *config) ([]SeriesPoint, AggregateStats, error) {
	var stats AggregateStats

	// 1. Filter
	filtered := ApplySelection(view, sel)
	stats.Filtered = filtered.Len()
	if filtered.Len() == 0 {
		return nil, stats, &EmptyError{Stage: StageFilter}
	}

	// 2–3. Coerce and group
	buckets := make(map[string]*bucket)
	order := make([]string, 0)
	for i := 0; i < filtered.Len(); i++ {
		value, ok := filtered.Measure(i, metric)
		rawPeriod := filtered.Value(i, period)
		groupKey := strings.TrimSpace(filtered.Value(i, group))
		if !ok || isMissing(rawPeriod) || isMissing(groupKey) {
			stats.Dropped++
			continue
		}

		month := NormalizeMonth(rawPeriod)
		key := month + "\x00" + groupKey
		b, exists := buckets[key]
		if !exists {
			b = &bucket{period: month, group: groupKey}
			buckets[key] = b
			order = append(order, key)
		}
		b.sum = b.sum.Add(decimal.NewFromFloat(value))
		b.count++
	}

	if len(buckets) == 0 {
		return nil, stats, &EmptyError{Stage: StageAggregate}
	}

	// 4–5. Validate periods and build points
	points := make([]SeriesPoint, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		if !IsMonth(b.period) {
			stats.Dropped += b.count
			continue
		}
		date, err := PeriodDate(b.period, cfg.ReferenceYear)
		if err != nil {
			return nil, stats, err
		}
		mean := b.sum.Div(decimal.NewFromInt(int64(b.count)))
		points = append(points, SeriesPoint{
			Period: b.period,
			Group:  b.group,
			Value:  roundDecimal(mean),
			Count:  b.count,
			Date:   date,
		})
	}

	if len(points) == 0 {
		return nil, stats, &EmptyError{Stage: StageAggregate}
	}

	SortSeries(points)
	return points, stats, nil
}

// ============================================================================
// SORTING
// ============================================================================

// SortSeries orders points by (synthetic date, group key). Group keys sort
// numerically when every key is a number.
func SortSeries(points []SeriesPoint) {
	groups := make([]string, len(points))
	for i, p := range points {
		groups[i] = p.Group
	}
	numeric := allNumeric(groups)

	sort.SliceStable(points, func(i, j int) bool {
		if !points[i].Date.Equal(points[j].Date) {
			return points[i].Date.Before(points[j].Date)
		}
		return compareValues(points[i].Group, points[j].Group, numeric) < 0
	})
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// RoundTo2 rounds to 2 decimal places, half away from zero, on the
// shortest decimal form of v. 2.675 rounds to 2.68, where rounding the
// binary value (as pandas does) gives 2.67.
func RoundTo2(v float64) float64 {
	return roundDecimal(decimal.NewFromFloat(v))
}

func roundDecimal(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// FormatValue renders a rounded value with the shortest exact text,
// so 97.20 is shown as "97.2".
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Format2 renders a value with exactly two decimals.
func Format2(v float64) string {
	return strconv.FormatFloat(RoundTo2(v), 'f', 2, 64)
}

// LabelForDimension title-cases every run of letters in a dimension key,
// so "site_id" becomes "Site_Id".
func LabelForDimension(dimension string) string {
	if dimension == "" {
		return ""
	}
	caser := cases.Title(language.Und)
	var b strings.Builder
	start := -1
	for i, r := range dimension {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			b.WriteString(caser.String(dimension[start:i]))
			start = -1
		}
		b.WriteRune(r)
	}
	if start >= 0 {
		b.WriteString(caser.String(dimension[start:]))
	}
	return b.String()
}
