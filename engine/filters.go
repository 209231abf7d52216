package engine

import (
	"strings"
)

// ============================================================================
// FILTERS: Equality and Search Narrowing via RecordView
// ============================================================================
// Single-pass filter: checks ALL concrete selections per record in one loop.
// Returns a SubView (index list into parent), zero data copy.
// ============================================================================

// ApplySelection returns a view of records matching every concrete selection.
// Selections are AND-combined and matched exactly. All / empty values are
// no restriction.
func ApplySelection(view RecordView, sel Selection) RecordView {
	filters := make([]Filter, 0, len(sel))
	for k, v := range sel {
		if sel.IsConcrete(k) {
			filters = append(filters, Filter{Key: k, Value: v})
		}
	}
	return ApplyFilters(view, filters)
}

// ApplyFilters returns a view of records matching all filters.
func ApplyFilters(view RecordView, filters []Filter) RecordView {
	if len(filters) == 0 {
		return view
	}

	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		pass := true
		for _, f := range filters {
			if strings.TrimSpace(view.Value(i, f.Key)) != f.Value {
				pass = false
				break
			}
		}
		if pass {
			indices = append(indices, i)
		}
	}

	return newSubView(view, indices)
}

// ApplySearch narrows a view to rows whose column contains text,
// case-insensitively. Blank text is no restriction.
func ApplySearch(view RecordView, column, text string) RecordView {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return view
	}

	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if strings.Contains(strings.ToLower(view.Value(i, column)), needle) {
			indices = append(indices, i)
		}
	}
	return newSubView(view, indices)
}
