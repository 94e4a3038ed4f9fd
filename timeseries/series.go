// Package timeseries provides core time series data structures and operations.
package timeseries

import (
	"github.com/pkg/errors"
)

// ErrInvalidShape is returned when a series' points cannot be interpreted with
// its declared shape.
var ErrInvalidShape = errors.New("invalid series shape")

// Series is a plottable series: an ordered sequence of points plus the
// metadata that decides how it is stacked.
type Series struct {
	Alias  string
	Points []Point

	// Stack is the stacking key. Series sharing a key are layered in order;
	// an empty key means the series is not stacked.
	Stack string

	Lines      bool // drawn as a line; controls interpolation
	Steps      bool // stepped line rendering
	Horizontal bool // key axis is Y, value axis is X
	Percent    bool // stacked as a percentage of the per-key total

	Shape     Shape
	HasBottom bool // the third slot holds the stacking baseline
}

// NewSeries creates a two-slot line series from points.
func NewSeries(alias string, points []Point) *Series {
	return &Series{
		Alias:  alias,
		Points: points,
		Lines:  true,
		Shape:  Shape2,
	}
}

// Len returns the number of points, gaps included.
func (s *Series) Len() int {
	return len(s.Points)
}

// Stacked reports whether the series takes part in a stack group.
func (s *Series) Stacked() bool {
	return s.Stack != ""
}

// Validate checks that the declared shape is usable.
func (s *Series) Validate() error {
	if !s.Shape.Valid() {
		return errors.Wrapf(ErrInvalidShape, "series %q: unknown %s", s.Alias, s.Shape)
	}
	if s.HasBottom && s.Shape != Shape3 {
		return errors.Wrapf(ErrInvalidShape, "series %q: bottom slot requires %s, got %s", s.Alias, Shape3, s.Shape)
	}
	return nil
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	c := *s
	if s.Points != nil {
		c.Points = make([]Point, len(s.Points))
		copy(c.Points, s.Points)
	}
	return &c
}

// WithPoints returns a copy of the series metadata carrying points.
func (s *Series) WithPoints(points []Point) *Series {
	c := *s
	c.Points = points
	return &c
}

// Datapoint is one raw sample as delivered by a datasource. A nil Value is a
// null sample. Time is in epoch milliseconds.
type Datapoint struct {
	Value *float64
	Time  int64
}

// Float returns a pointer to v, for building datapoints.
func Float(v float64) *float64 {
	return &v
}

// RawSeries represents a series of raw datapoints before cleaning.
type RawSeries struct {
	Target     string
	Datapoints []Datapoint
}

// NewRawSeries creates a raw series from parallel value and time slices. A NaN
// value becomes a null sample.
func NewRawSeries(target string, values []float64, times []int64) (*RawSeries, error) {
	if len(values) != len(times) {
		return nil, errors.New("times and values must have the same length")
	}
	points := make([]Datapoint, len(values))
	for i, v := range values {
		points[i] = Datapoint{Time: times[i]}
		if v == v {
			points[i].Value = Float(v)
		}
	}
	return &RawSeries{Target: target, Datapoints: points}, nil
}

// Len returns the length of the series.
func (r *RawSeries) Len() int {
	return len(r.Datapoints)
}

// Values returns the non-null values in order.
func (r *RawSeries) Values() []float64 {
	values := make([]float64, 0, len(r.Datapoints))
	for _, dp := range r.Datapoints {
		if dp.Value != nil {
			values = append(values, *dp.Value)
		}
	}
	return values
}

// Slice returns a slice of the series from start to end (exclusive).
func (r *RawSeries) Slice(start, end int) *RawSeries {
	if start < 0 {
		start = 0
	}
	if end > len(r.Datapoints) {
		end = len(r.Datapoints)
	}
	if start >= end {
		return &RawSeries{Target: r.Target, Datapoints: []Datapoint{}}
	}
	c := &RawSeries{Target: r.Target, Datapoints: make([]Datapoint, end-start)}
	for i, dp := range r.Datapoints[start:end] {
		c.Datapoints[i] = dp.clone()
	}
	return c
}

// Copy creates a deep copy of the series.
func (r *RawSeries) Copy() *RawSeries {
	c := &RawSeries{Target: r.Target, Datapoints: make([]Datapoint, len(r.Datapoints))}
	for i, dp := range r.Datapoints {
		c.Datapoints[i] = dp.clone()
	}
	return c
}

func (dp Datapoint) clone() Datapoint {
	if dp.Value != nil {
		dp.Value = Float(*dp.Value)
	}
	return dp
}
