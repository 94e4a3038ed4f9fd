package stack

import (
	"github.com/hashicorp/go-multierror"

	"github.com/sartorproj/seriesstack/timeseries"
)

// Batch holds the per-key totals of every percent-mode series in one render
// pass. Build a new Batch for every pass; it must not be shared across
// unrelated series collections.
type Batch struct {
	sums map[float64]float64
}

// NewBatch sums the values of all percent-mode series by key.
func NewBatch(series []*timeseries.Series) *Batch {
	b := &Batch{sums: make(map[float64]float64)}
	for _, s := range series {
		if !s.Percent {
			continue
		}
		for _, p := range s.Points {
			if p.Gap {
				continue
			}
			b.sums[p.Key(s.Horizontal)] += p.Value(s.Horizontal)
		}
	}
	return b
}

// Sum returns the total of all percent-mode values at key.
func (b *Batch) Sum(key float64) float64 {
	return b.sums[key]
}

// Apply stacks the percent-mode series in order and expresses every stacked
// value and bottom as a percentage of the total at its key. Keys whose total
// is not positive map to 0. Other series are returned as copies.
func (b *Batch) Apply(series []*timeseries.Series) ([]*timeseries.Series, error) {
	var errs *multierror.Error
	for _, s := range series {
		if !s.Percent {
			continue
		}
		if err := s.Validate(); err != nil {
			errs = multierror.Append(errs, &InvalidSeriesShapeError{Alias: s.Alias, Shape: s.Shape, Err: err})
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	bases := make(map[float64]float64)
	out := make([]*timeseries.Series, len(series))
	for i, s := range series {
		if !s.Percent {
			out[i] = s.Copy()
			continue
		}
		h := s.Horizontal
		points := make([]timeseries.Point, len(s.Points))
		for k, p := range s.Points {
			if p.Gap {
				points[k] = p
				continue
			}
			key, raw := p.Key(h), p.Value(h)
			base := bases[key]
			value, bottom := raw+base, base
			bases[key] += raw

			if sum := b.sums[key]; sum > 0 {
				value = value * 100 / sum
				bottom = bottom * 100 / sum
			} else {
				value, bottom = 0, 0
			}
			points[k] = p.WithValue(h, value)
			points[k].Bottom = bottom
		}
		c := s.WithPoints(points)
		c.Shape = timeseries.Shape3
		c.HasBottom = true
		out[i] = c
	}
	return out, nil
}

// StackPercent stacks the percent-mode series of one render pass using a
// fresh Batch.
func StackPercent(series []*timeseries.Series) ([]*timeseries.Series, error) {
	return NewBatch(series).Apply(series)
}
