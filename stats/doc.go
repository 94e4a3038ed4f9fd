// Package stats computes per-series statistics and the legend precision and
// formatting derived from them.
//
// # Flot Pairs
//
// FlotPairs turns raw datapoints into plottable points and computes the
// series statistics in one pass:
//
//	points, result := stats.FlotPairs(raw.Datapoints, stats.Connected)
//	fmt.Printf("avg=%v delta=%v step=%dms\n", *result.Avg, result.Delta, result.TimeStep)
//
// The null point mode decides what happens to null samples:
//
//	stats.Null       // kept as gaps
//	stats.Connected  // dropped, the line connects across them
//	stats.NullAsZero // plotted as 0
//
// Delta accounts for counter resets: a drop in value is treated as the
// counter restarting from zero, so the value after the reset is added as is.
//
// # Timestamp Resolution
//
//	if stats.IsMsResolutionNeeded(raw.Datapoints) {
//	    // show milliseconds in tooltips
//	}
//
// # Legend Precision
//
// Legend values get one more decimal than the axis ticks:
//
//	axis := stats.AxisTickDecimals(min, max, 5)
//	d := stats.LegendDecimals(axis, nil)
//	legend, err := result.Legend("short", d)
//
// Values can also be formatted directly:
//
//	s := stats.ToFixed(3.14159, 2)                  // "3.14"
//	s, err := stats.Format("short", &v, d)          // "1.5 K"
//	s := stats.ToFixedScaled(v, 1, &scaled, 2, "s") // scaled precision
package stats
