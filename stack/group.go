package stack

import (
	"github.com/hashicorp/go-multierror"

	"github.com/sartorproj/seriesstack/timeseries"
)

// Groups indexes series by stacking key. It is built once per transform so
// each series finds the series it is stacked on without rescanning the input.
type Groups struct {
	keys     []string
	members  map[string][]int
	position []int
	keyOf    []string
}

// Group builds the stack groups of series. Series without a stacking key and
// percent-mode series are not grouped.
func Group(series []*timeseries.Series) Groups {
	g := Groups{
		members:  make(map[string][]int),
		position: make([]int, len(series)),
		keyOf:    make([]string, len(series)),
	}
	for i, s := range series {
		g.position[i] = -1
		if !s.Stacked() || s.Percent {
			continue
		}
		if _, ok := g.members[s.Stack]; !ok {
			g.keys = append(g.keys, s.Stack)
		}
		g.position[i] = len(g.members[s.Stack])
		g.keyOf[i] = s.Stack
		g.members[s.Stack] = append(g.members[s.Stack], i)
	}
	return g
}

// Keys returns the stacking keys in order of first appearance.
func (g Groups) Keys() []string {
	return g.keys
}

// Members returns the indexes of the series stacked under key, in order.
func (g Groups) Members(key string) []int {
	return g.members[key]
}

// Previous returns the index of the series that series i is stacked on.
// ok is false for ungrouped series and for the base of a stack.
func (g Groups) Previous(i int) (prev int, ok bool) {
	if i < 0 || i >= len(g.position) || g.position[i] <= 0 {
		return -1, false
	}
	return g.members[g.keyOf[i]][g.position[i]-1], true
}

// Validate checks that every grouped series has a usable shape and the same
// shape as the series it is stacked on. All violations are reported.
func (g Groups) Validate(series []*timeseries.Series) error {
	var errs *multierror.Error
	for i, s := range series {
		if g.position[i] < 0 {
			continue
		}
		if err := s.Validate(); err != nil {
			errs = multierror.Append(errs, &InvalidSeriesShapeError{
				Alias: s.Alias,
				Shape: s.Shape,
				Err:   err,
			})
			continue
		}
		prev, ok := g.Previous(i)
		if !ok {
			continue
		}
		if o := series[prev]; o.Shape != s.Shape {
			errs = multierror.Append(errs, &InvalidSeriesShapeError{
				Alias:      s.Alias,
				Shape:      s.Shape,
				Other:      o.Alias,
				OtherShape: o.Shape,
				Err:        timeseries.ErrInvalidShape,
			})
		}
	}
	return errs.ErrorOrNil()
}
