// Package panel renders the series of a graph panel: it resolves per-series
// settings from the panel config and its overrides, computes statistics,
// stacks, and derives the legend precision.
//
// # Configuration
//
// Panels are described in YAML:
//
//	title: Requests
//	bars: true
//	stack: true
//	nullPointMode: null as zero
//	format: short
//	seriesOverrides:
//	  - alias: /errors.*/
//	    stack: errors
//	    zindex: 1
//	  - alias: total
//	    stack: false
//
// An override alias between slashes is a regular expression; any other alias
// must match exactly. Overrides apply in order and later ones win.
//
// # Rendering
//
//	cfg, err := panel.LoadConfig("panel.yaml")
//	r := panel.NewRenderer(logger)
//	res, err := r.Render(ctx, cfg, raw)
//
// Hidden series keep their statistics but lose their points and leave any
// stack. With percentage set, every stacked series is stacked as a
// percentage of the per-timestamp total instead.
//
// # Dashboards
//
// RenderDashboard renders several panels at once, bounded by
// Renderer.Concurrency:
//
//	results, err := r.RenderDashboard(ctx, []panel.Request{
//	    {Config: cpu, Series: cpuSeries},
//	    {Config: mem, Series: memSeries},
//	})
package panel
