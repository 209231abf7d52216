package engine

import (
	"sort"
	"strings"
)

// ============================================================================
// CASCADE: Dependent selector options, evaluated strictly left-to-right
// ============================================================================
// For each dimension in hierarchy order:
//   1. (Optional) narrow the active subset by the dimension's search text
//   2. options = All + sorted distinct non-missing values in the active subset
//   3. repair a stale selection (All, or a random member for ResetToRandom)
//   4. narrow the active subset by the selection when it is concrete
// ============================================================================

// ComputeOptions resolves option sets and selections for a hierarchy.
// current may hold stale or missing values; the returned Selection never does.
func ComputeOptions(view RecordView, hierarchy []Dimension, current Selection, opts ...Option) *Cascade {
	cfg := applyOptions(opts)

	out := &Cascade{
		Dimensions: make([]DimensionOptions, 0, len(hierarchy)),
		Selection:  make(Selection, len(hierarchy)),
	}

	active := view
	for _, dim := range hierarchy {
		search := strings.TrimSpace(cfg.Search[dim.Key])
		if search != "" {
			active = ApplySearch(active, dim.Key, search)
		}

		options := append([]string{All}, DistinctValues(active, dim.Key)...)

		selected, stale := resolveSelection(dim, current.Get(dim.Key), options, cfg.Picker)
		if stale {
			cfg.Log.Debug("stale selection repaired",
				"dimension", dim.Key, "was", current.Get(dim.Key), "now", selected)
		}

		if selected != All {
			active = ApplyFilters(active, []Filter{{Key: dim.Key, Value: selected}})
		}

		label := dim.Label
		if label == "" {
			label = LabelForDimension(dim.Key)
		}
		out.Dimensions = append(out.Dimensions, DimensionOptions{
			Key:      dim.Key,
			Label:    label,
			Options:  options,
			Selected: selected,
			Reset:    stale,
			Search:   search,
		})
		out.Selection[dim.Key] = selected
	}

	out.Active = active
	return out
}

// resolveSelection keeps value when it is All or a current option and
// otherwise applies the dimension's reset policy.
func resolveSelection(dim Dimension, value string, options []string, picker Picker) (string, bool) {
	if value == All {
		return All, false
	}
	if value != "" && contains(options[1:], value) {
		return value, false
	}

	// An unset selection is only "stale" for random-reset dimensions, where
	// first render must land on a concrete member.
	stale := value != ""
	if dim.Reset == ResetToRandom {
		if len(options) > 1 {
			return options[1+picker.IntN(len(options)-1)], true
		}
		return All, stale
	}
	return All, stale
}

// DistinctValues returns the sorted distinct non-missing values of a column.
// Values sort numerically when every one of them parses as a number.
func DistinctValues(view RecordView, column string) []string {
	seen := make(map[string]bool)
	var values []string
	for i := 0; i < view.Len(); i++ {
		v := strings.TrimSpace(view.Value(i, column))
		if isMissing(v) || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	SortValues(values)
	return values
}

// SortValues sorts in place, numerically when all values are numbers.
func SortValues(values []string) {
	numeric := allNumeric(values)
	sort.SliceStable(values, func(i, j int) bool {
		return compareValues(values[i], values[j], numeric) < 0
	})
}

func allNumeric(values []string) bool {
	for _, v := range values {
		if _, ok := CoerceNumber(v); !ok {
			return false
		}
	}
	return len(values) > 0
}

func compareValues(a, b string, numeric bool) int {
	if numeric {
		fa, _ := CoerceNumber(a)
		fb, _ := CoerceNumber(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return strings.Compare(a, b)
	}
	return strings.Compare(a, b)
}

func contains(items []string, v string) bool {
	for _, it := range items {
		if it == v {
			return true
		}
	}
	return false
}
