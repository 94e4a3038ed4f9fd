// Package stack implements cumulative stacking of plotted series.
//
// Series sharing a stacking key are layered in input order: every series is
// offset by the already stacked series before it in the same group.
//
//	stacked, err := stack.Stack(series)
//
// Points are matched by key. When keys do not line up, line series are
// interpolated linearly from the neighbouring point, while bars and areas
// take the value of the series below as is. A gap in the series below
// produces a gap in the stacked series. Series with a bottom slot record the
// value of the series below, so fills are drawn from the right baseline.
//
// # Percent Mode
//
// Percent-mode series are stacked together regardless of key, and every
// value is expressed as a share of the total at its key:
//
//	stacked, err := stack.StackPercent(series)
//
// The per-key totals live in a Batch that is built for one render pass and
// then discarded:
//
//	batch := stack.NewBatch(series)
//	total := batch.Sum(1000)
//	stacked, err := batch.Apply(series)
//
// # Errors
//
// Series in one stack must share a point shape. Violations are reported up
// front as *InvalidSeriesShapeError values, which unwrap to
// timeseries.ErrInvalidShape.
package stack
