package schema

import "github.com/enomcdcdash/enomdash/engine"

// Column names shared by the availability extracts.
const (
	ColumnArea         = "area"
	ColumnRegional     = "regional"
	ColumnNetworkSite  = "networksite"
	ColumnSiteID       = "site_id"
	ColumnMonth        = "Month"
	ColumnAvailability = "Availability (Ave)"
	ColumnFinalKPI     = "Final KPI"
)

const (
	chartHeight = 500
	xAxisTitle  = "Month"
	yAxisTitle  = "Availability (%)"
)

// Presets returns the built-in views in tab order.
func Presets() []View {
	return []View{
		{
			Name:   "regional",
			Title:  "Regional Availability",
			Header: "Monthly Availability per Regional",
			Kind:   KindChart,
			Hierarchy: []engine.Dimension{
				{Key: ColumnArea},
				{Key: ColumnRegional},
			},
			Period:  ColumnMonth,
			Metric:  ColumnAvailability,
			GroupBy: ColumnRegional,
			YRange:  [2]float64{95, 100},
			XTitle:  xAxisTitle,
			YTitle:  yAxisTitle,
			Height:  chartHeight,
		},
		{
			Name:   "nop",
			Title:  "NOP Availability",
			Header: "Monthly Availability per NOP",
			Kind:   KindChart,
			Hierarchy: []engine.Dimension{
				{Key: ColumnArea},
				{Key: ColumnRegional},
				{Key: ColumnNetworkSite, Label: "NOP"},
			},
			Period:  ColumnMonth,
			Metric:  ColumnAvailability,
			GroupBy: ColumnNetworkSite,
			YRange:  [2]float64{90, 100},
			XTitle:  xAxisTitle,
			YTitle:  yAxisTitle,
			Height:  chartHeight,
		},
		{
			Name:   "site",
			Title:  "Site Availability",
			Header: "Monthly Availability per Site",
			Kind:   KindChart,
			Hierarchy: []engine.Dimension{
				{Key: ColumnArea},
				{Key: ColumnRegional},
				{Key: ColumnNetworkSite, Label: "NOP"},
				{Key: ColumnSiteID, Label: "Site ID", Reset: engine.ResetToRandom, Search: true},
			},
			Period:  ColumnMonth,
			Metric:  ColumnAvailability,
			GroupBy: ColumnSiteID,
			YRange:  [2]float64{0, 105},
			XTitle:  xAxisTitle,
			YTitle:  yAxisTitle,
			Height:  chartHeight,
		},
		{
			Name:   "kpi",
			Title:  "KPI Scorecard",
			Header: "Monthly KPI Score per NOP",
			Kind:   KindKPITable,
			Hierarchy: []engine.Dimension{
				{Key: ColumnArea},
				{Key: ColumnRegional},
				{Key: ColumnNetworkSite, Label: "NOP"},
			},
			Period:      ColumnMonth,
			Columns:     []string{"Availability", "Accessibility", "Retainability", "Integrity", "Mobility"},
			ScoreColumn: ColumnFinalKPI,
		},
	}
}

// Preset returns one built-in view by name.
func Preset(name string) (View, bool) {
	return Find(Presets(), name)
}
