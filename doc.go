// Package seriesstack prepares time series for dashboard graph panels.
//
// It turns raw (value, time) datapoints into plottable points, computes the
// per-series statistics shown in legends, and stacks series the way graph
// panels draw them, either cumulatively or as a percentage of the total at
// each timestamp.
//
// # Features
//
//   - Flot pair conversion with null, connected and null-as-zero modes
//   - Series statistics: min, max, avg, current, total, delta, range, diff
//   - Stacking with gap propagation, line interpolation and bottom slots
//   - Stepped-line and horizontal stacking
//   - Percent stacking against per-timestamp totals
//   - Legend precision and unit formatting
//   - Panel configs in YAML with per-series overrides
//   - CSV, JSON and Parquet loading
//
// # Quick Start
//
// Stack two series:
//
//	a := timeseries.NewSeries("a", []timeseries.Point{timeseries.P2(1, 1), timeseries.P2(2, 2)})
//	b := timeseries.NewSeries("b", []timeseries.Point{timeseries.P2(1, 10), timeseries.P2(2, 20)})
//	a.Stack, b.Stack = "A", "A"
//	stacked, _ := stack.Stack([]*timeseries.Series{a, b})
//
// Render a panel from a file:
//
//	raw, _ := timeseries.Load("requests.csv", nil)
//	cfg, _ := panel.LoadConfig("panel.yaml")
//	res, _ := panel.NewRenderer(logger).Render(ctx, cfg, raw)
//
// # Packages
//
// The library is organized into the following packages:
//
//   - timeseries: Points, series and the CSV, JSON and Parquet loaders
//   - stats: Flot pairs, series statistics, legend precision and formatting
//   - stack: Cumulative and percent stacking
//   - panel: Panel configs, rendering and dashboards
//
// The seriesstack command in cmd/seriesstack renders panels and prints
// statistics from the command line.
package seriesstack
