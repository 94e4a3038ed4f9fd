package stats

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// ValueFormatter renders a value with the given precision.
type ValueFormatter func(value float64, d Decimals) string

// shortSuffixes maps SI prefixes to the suffixes of the short format.
var shortSuffixes = map[string]struct {
	suffix string
	steps  int
}{
	"k": {" K", 1},
	"M": {" Mil", 2},
	"G": {" Bil", 3},
	"T": {" Tri", 4},
	"P": {" Quadr", 5},
	"E": {" Quint", 6},
	"Z": {" Sext", 7},
	"Y": {" Sept", 8},
}

var formatters = map[string]ValueFormatter{
	"none": func(v float64, d Decimals) string {
		return ToFixed(v, d.Decimals)
	},
	"short": formatShort,
	"percent": func(v float64, d Decimals) string {
		return ToFixed(v, d.Decimals) + "%"
	},
	"percentunit": func(v float64, d Decimals) string {
		return ToFixed(100*v, d.Decimals) + "%"
	},
	"si": func(v float64, d Decimals) string {
		return humanize.SIWithDigits(v, d.Decimals, "")
	},
	"locale": func(v float64, d Decimals) string {
		return humanize.CommafWithDigits(v, d.Decimals)
	},
}

// Formatter returns the formatter for a unit: none, short, percent,
// percentunit, si or locale.
func Formatter(unit string) (ValueFormatter, error) {
	if unit == "" {
		unit = "short"
	}
	f, ok := formatters[unit]
	if !ok {
		return nil, errors.Errorf("unknown unit format %q", unit)
	}
	return f, nil
}

// Format renders a nullable value; nil and non-finite values render empty.
func Format(unit string, value *float64, d Decimals) (string, error) {
	f, err := Formatter(unit)
	if err != nil {
		return "", err
	}
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return "", nil
	}
	return f(*value, d), nil
}

// formatShort divides by 1000 until the value is below 1000 and appends
// K, Mil, Bil... Scaled values use the scaled precision.
func formatShort(v float64, d Decimals) string {
	if math.Abs(v) < 1000 {
		return ToFixed(v, d.Decimals)
	}
	scaled, prefix := humanize.ComputeSI(v)
	unit, ok := shortSuffixes[prefix]
	if !ok {
		return "NA"
	}
	decimals := d.Decimals
	if d.Scaled != nil {
		decimals = *d.Scaled + 3*unit.steps
	}
	return ToFixed(scaled, decimals) + unit.suffix
}

// ToFixed rounds v to decimals places and pads the result with zeros to
// exactly that many. A negative decimals rounds to a whole number. Zero
// always renders as "0".
func ToFixed(v float64, decimals int) string {
	if v == 0 {
		return "0"
	}
	decimals = max(0, decimals)
	factor := math.Pow10(decimals)
	rounded := math.Floor(v*factor+0.5) / factor
	return strconv.FormatFloat(rounded, 'f', decimals, 64)
}

// ToFixedScaled formats with scaled+additional decimals when a scaled
// precision is known, and with decimals otherwise.
func ToFixedScaled(v float64, decimals int, scaled *int, additional int, ext string) string {
	if scaled == nil {
		return ToFixed(v, decimals) + ext
	}
	return ToFixed(v, *scaled+additional) + ext
}

// RoundValue rounds v to decimals places, halves upward.
func RoundValue(v float64, decimals int) float64 {
	n := math.Pow10(decimals)
	return math.Floor(v*n+0.5) / n
}

// LegendValues are the formatted statistics shown next to a series.
type LegendValues struct {
	Min     string `json:"min"`
	Max     string `json:"max"`
	Avg     string `json:"avg"`
	Current string `json:"current"`
	Total   string `json:"total"`
}

// Legend formats the statistics for display.
func (r Result) Legend(unit string, d Decimals) (LegendValues, error) {
	f, err := Formatter(unit)
	if err != nil {
		return LegendValues{}, err
	}
	format := func(v *float64) string {
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			return ""
		}
		return f(*v, d)
	}
	return LegendValues{
		Min:     format(r.Min),
		Max:     format(r.Max),
		Avg:     format(r.Avg),
		Current: format(r.Current),
		Total:   format(&r.Total),
	}, nil
}
