// Package enomdash is the ENOM availability dashboard: monthly network
// availability per Regional, NOP and Site, plus a banded KPI scorecard.
//
// Usage:
//
//	import "github.com/enomcdcdash/enomdash/engine"
//
//	result, err := engine.Execute(view.Spec(), dataset, selection,
//	    engine.WithSearch(map[string]string{"site_id": "MDN"}),
//	    engine.WithReferenceYear(2025),
//	)
//
// The engine takes a view (hierarchy, period, metric, group) and a dataset
// produced by the loader package, and returns render-ready output: the
// selector cascade, a line chart config or a KPI table.
//
// The dashboard package ties the engine to configuration, the dataset
// cache and the session; server and cmd/enomdash are its HTTP and CLI shells.
package enomdash
