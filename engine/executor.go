package engine

import (
	"errors"
	"fmt"
)

// ============================================================================
// EXECUTOR: One full render pass for a view
// ============================================================================
// Entry point: Execute(spec, view, current, opts...)
//
// Pipeline:
//   1. ComputeOptions over the hierarchy → option sets + repaired selection
//   2. Aggregate (chart) or BuildKPITable (table) from the FULL dataset
//   3. Shape into ChartConfig / TableData
//   4. Return Result
//
// Every pass is independent: nothing here mutates the dataset or the
// caller's selection. Empty results are a Result, not an error.
// ============================================================================

// Execute runs one view against a RecordView and returns a render-ready Result.
//
// Options:
//   - WithSearch(map): free-text narrowing of candidate lists
//   - WithPicker(p): random source for ResetToRandom dimensions
//   - WithReferenceYear(y): synthetic year for period ordering
//   - WithLogger(l): diagnostics
func Execute(spec ViewSpec, view RecordView, current Selection, opts ...Option) (*Result, error) {
	cfg := applyOptions(opts)
	if err := validateSpec(spec); err != nil {
		return nil, err
	}

	cfg.Log.Debug("render start", "view", spec.Name, "rows", view.Len(),
		"selection", DescribeSelection(spec.Hierarchy, current))

	// 1. Cascade
	cascade := ComputeOptions(view, spec.Hierarchy, current, opts...)
	sel := cascade.Selection

	result := &Result{
		Success:   true,
		View:      spec.Name,
		Title:     BuildTitle(spec.Title, spec.Hierarchy, sel),
		Cascade:   cascade,
		Selection: sel,
	}

	// 2–3. Aggregate and shape
	var stats AggregateStats
	var err error
	switch spec.Intent {
	case IntentTable:
		var table *TableData
		table, stats, err = buildKPITable(spec, sel, view, cfg)
		if err == nil {
			result.Type = IntentTable
			result.TableData = table
		}
	default:
		var points []SeriesPoint
		points, stats, err = aggregate(view, sel, spec.Metric, spec.Period, spec.GroupBy, cfg)
		if err == nil {
			result.Type = IntentChart
			result.Points = points
			result.ChartConfig = BuildChart(spec, sel, points)
		}
	}
	result.Filtered = stats.Filtered
	result.Dropped = stats.Dropped

	if err != nil {
		if errors.Is(err, ErrEmptyResult) {
			result.Type = "text"
			result.Empty = true
			result.Reply = EmptyMessage(EmptyStage(err), spec.Title)
			cfg.Log.Info("render empty", "view", spec.Name, "stage", EmptyStage(err), "filtered", stats.Filtered)
			return result, nil
		}
		result.Type = "text"
		result.Success = false
		result.Reply = err.Error()
		var fe *FormatError
		if errors.As(err, &fe) {
			result.Reply = FormatMessage(err)
		}
		cfg.Log.Error("render failed", "view", spec.Name, "error", err)
		return result, err
	}

	result.Reply = FilteredMessage(stats.Filtered)
	cfg.Log.Debug("render done", "view", spec.Name, "filtered", stats.Filtered,
		"dropped", stats.Dropped, "points", len(result.Points), "period", DerivePeriod(result.Points))
	return result, nil
}

// validateSpec rejects view definitions the pipeline cannot run.
func validateSpec(spec ViewSpec) error {
	if spec.Period == "" {
		return fmt.Errorf("view %q: period column is required", spec.Name)
	}
	switch spec.Intent {
	case IntentTable:
		if spec.ScoreColumn == "" {
			return fmt.Errorf("view %q: score column is required for tables", spec.Name)
		}
	case IntentChart, "":
		if spec.Metric == "" || spec.GroupBy == "" {
			return fmt.Errorf("view %q: metric and group columns are required for charts", spec.Name)
		}
	default:
		return fmt.Errorf("view %q: unknown intent %q", spec.Name, spec.Intent)
	}
	return nil
}
