package stats

import "math"

// Decimals is the display precision of a value. Scaled, when set, is the
// precision to use once a unit format has scaled the value (1500 -> 1.5 K).
type Decimals struct {
	Decimals int  `json:"decimals"`
	Scaled   *int `json:"scaledDecimals"`
}

// Fixed returns a precision that does not depend on scaling.
func Fixed(decimals int) Decimals {
	return Decimals{Decimals: decimals}
}

// tickSize picks a round step near delta: 1, 2, 2.5, 5 or 10 times a power
// of ten, and the number of decimals needed to print it.
func tickSize(delta float64) (dec int, size float64) {
	dec = -int(math.Floor(math.Log10(delta)))
	magn := math.Pow10(-dec)
	norm := delta / magn

	switch {
	case norm < 1.5:
		size = 1
	case norm < 3:
		size = 2
		if norm > 2.25 {
			size = 2.5
			dec++
		}
	case norm < 7.5:
		size = 5
	default:
		size = 10
	}
	return dec, size * magn
}

// DecimalsForValue returns the precision needed to display v.
func DecimalsForValue(v float64) Decimals {
	v = math.Abs(v)
	if v == 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return Fixed(0)
	}
	dec, size := tickSize(v / 2)
	if math.Floor(v) == v {
		dec = 0
	}
	d := max(0, dec)
	scaled := d - int(math.Floor(math.Log10(size))) + 2
	return Decimals{Decimals: d, Scaled: &scaled}
}

// AxisTickDecimals returns the tick precision of an axis spanning [lo, hi]
// with about ticks ticks. A zero-width range is widened around its value
// first.
func AxisTickDecimals(lo, hi float64, ticks int) Decimals {
	if ticks <= 0 {
		ticks = 5
	}
	if lo == hi {
		widen := 1.0
		if hi != 0 {
			widen = 0.01 * math.Abs(hi)
		}
		lo -= widen
		hi += widen
	}
	delta := (hi - lo) / float64(ticks)
	if delta <= 0 || math.IsInf(delta, 0) || math.IsNaN(delta) {
		return Fixed(0)
	}
	dec, size := tickSize(delta)
	d := max(0, dec)
	scaled := d - int(math.Floor(math.Log10(size)))
	return Decimals{Decimals: d, Scaled: &scaled}
}

// LegendDecimals derives legend precision from the axis ticks: one more
// decimal than the ticks, unless the ticks have none, and two more scaled
// decimals. A fixed precision overrides both.
func LegendDecimals(axis Decimals, fixed *int) Decimals {
	if fixed != nil {
		return Fixed(*fixed)
	}
	d := Decimals{Decimals: axis.Decimals}
	if axis.Decimals > 0 {
		d.Decimals++
	}
	if axis.Scaled != nil {
		scaled := *axis.Scaled + 2
		d.Scaled = &scaled
	}
	return d
}
