package timeseries

import "fmt"

// Shape is the number of numeric slots carried by every point of a series.
type Shape uint8

const (
	// Shape2 points carry a key and a value.
	Shape2 Shape = 2
	// Shape3 points also carry a third slot, the bottom of a filled area or bar.
	Shape3 Shape = 3
)

// Valid reports whether s is a known point shape.
func (s Shape) Valid() bool {
	return s == Shape2 || s == Shape3
}

func (s Shape) String() string {
	switch s {
	case Shape2:
		return "point2"
	case Shape3:
		return "point3"
	default:
		return fmt.Sprintf("shape(%d)", uint8(s))
	}
}

// Point is one sample of a series. A gap point marks a missing sample and its
// numeric slots carry no meaning for stacking.
type Point struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Bottom float64 `json:"bottom,omitempty"`
	Gap    bool    `json:"gap,omitempty"`
}

// P2 returns a two-slot point.
func P2(x, y float64) Point {
	return Point{X: x, Y: y}
}

// P3 returns a point with a bottom slot.
func P3(x, y, bottom float64) Point {
	return Point{X: x, Y: y, Bottom: bottom}
}

// NewGap returns a gap marker.
func NewGap() Point {
	return Point{Gap: true}
}

// Key returns the coordinate series are ordered and matched by: X, or Y for
// horizontal series.
func (p Point) Key(horizontal bool) float64 {
	if horizontal {
		return p.Y
	}
	return p.X
}

// Value returns the coordinate that accumulates when stacking: Y, or X for
// horizontal series.
func (p Point) Value(horizontal bool) float64 {
	if horizontal {
		return p.X
	}
	return p.Y
}

// WithKey returns a copy of p with its key coordinate set to k.
func (p Point) WithKey(horizontal bool, k float64) Point {
	if horizontal {
		p.Y = k
	} else {
		p.X = k
	}
	return p
}

// WithValue returns a copy of p with its value coordinate set to v.
func (p Point) WithValue(horizontal bool, v float64) Point {
	if horizontal {
		p.X = v
	} else {
		p.Y = v
	}
	return p
}
