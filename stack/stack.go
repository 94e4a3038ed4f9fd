// Package stack implements cumulative stacking of plotted series.
package stack

import (
	"github.com/sartorproj/seriesstack/timeseries"
)

// Stack layers every series on the series that precedes it under the same
// stacking key. The input is not modified; the result holds new series in
// the input order. Series without a key, percent-mode series, and the base
// of each stack are returned as copies.
func Stack(series []*timeseries.Series) ([]*timeseries.Series, error) {
	groups := Group(series)
	if err := groups.Validate(series); err != nil {
		return nil, err
	}

	out := make([]*timeseries.Series, len(series))
	for i, s := range series {
		prev, ok := groups.Previous(i)
		if !ok {
			out[i] = s.Copy()
			continue
		}
		// out[prev] is already stacked, so offsets accumulate down the group.
		out[i] = s.WithPoints(merge(s, out[prev]))
	}
	return out, nil
}

// Interpolate returns the value at cx on the line through (x0, v0) and
// (x1, v1).
func Interpolate(x0, v0, x1, v1, cx float64) float64 {
	if x1 == x0 {
		return v0
	}
	return v0 + (v1-v0)*(cx-x0)/(x1-x0)
}

// merge offsets the points of s by the points of other, walking both
// sequences in key order.
func merge(s, other *timeseries.Series) []timeseries.Point {
	var (
		points     = s.Points
		others     = other.Points
		h          = s.Horizontal
		withLines  = s.Lines
		withBottom = s.HasBottom
		withSteps  = s.Lines && s.Steps
		fromGap    = true
		out        = make([]timeseries.Point, 0, len(points))
		i, j       int
	)

	for i < len(points) {
		l := len(out)
		p := points[i]

		switch {
		case p.Gap:
			out = append(out, p)
			i++

		case j >= len(others):
			// A line cannot be extended past the series below it.
			if !withLines {
				out = append(out, p)
			}
			i++

		case others[j].Gap:
			out = append(out, timeseries.NewGap())
			fromGap = true
			j++

		default:
			q := others[j]
			px, py := p.Key(h), p.Value(h)
			qx, qy := q.Key(h), q.Value(h)
			var bottom float64

			switch {
			case px == qx:
				out = append(out, p.WithValue(h, py+qy))
				bottom = qy
				i++
				j++

			case px > qx:
				// Passed a point below; insert the line's value at its key.
				if withLines && i > 0 && !points[i-1].Gap {
					prev := points[i-1]
					v := Interpolate(prev.Key(h), prev.Value(h), px, py, qx)
					out = append(out, p.WithKey(h, qx).WithValue(h, v+qy))
					bottom = qy
				}
				j++

			default:
				if fromGap && withLines {
					i++
					continue
				}
				bottom = qy
				if withLines && j > 0 && !others[j-1].Gap {
					prev := others[j-1]
					bottom = Interpolate(prev.Key(h), prev.Value(h), qx, qy, px)
				}
				out = append(out, p.WithValue(h, py+bottom))
				i++
			}

			fromGap = false
			if withBottom && len(out) != l {
				out[l].Bottom = bottom
			}
		}

		if withSteps && len(out) != l && l > 0 {
			out = step(out, l, h)
		}
	}
	return out
}

// step keeps a stepped line L-shaped: when the point at l moves on both axes
// relative to the point before it, a copy carrying the previous value is
// placed before it.
func step(out []timeseries.Point, l int, h bool) []timeseries.Point {
	cur, prev := out[l], out[l-1]
	if cur.Gap || prev.Gap {
		return out
	}
	if cur.Key(h) == prev.Key(h) || cur.Value(h) == prev.Value(h) {
		return out
	}
	out = append(out, cur)
	out[l] = cur.WithValue(h, prev.Value(h))
	return out
}
