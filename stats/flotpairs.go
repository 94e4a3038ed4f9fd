package stats

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/sartorproj/seriesstack/timeseries"
)

// NullPointMode decides how null samples are plotted.
type NullPointMode int

const (
	// Null keeps null samples as gaps.
	Null NullPointMode = iota
	// Connected drops null samples so the line connects across them.
	Connected
	// NullAsZero plots null samples as 0.
	NullAsZero
)

func (m NullPointMode) String() string {
	switch m {
	case Connected:
		return "connected"
	case NullAsZero:
		return "null as zero"
	default:
		return "null"
	}
}

// ParseNullPointMode parses "null", "connected" or "null as zero". An empty
// string is Null.
func ParseNullPointMode(s string) (NullPointMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "null":
		return Null, nil
	case "connected":
		return Connected, nil
	case "null as zero", "null_as_zero", "nullaszero":
		return NullAsZero, nil
	default:
		return Null, errors.Errorf("unknown null point mode %q", s)
	}
}

// Result holds the statistics of one series. Pointer fields are nil when the
// series has no value to derive them from.
type Result struct {
	Total   float64  `json:"total"`
	Delta   float64  `json:"delta"` // sum of increments, counter resets included
	Min     *float64 `json:"min"`
	Max     *float64 `json:"max"`
	LogMin  *float64 `json:"logmin"` // smallest strictly positive value
	Avg     *float64 `json:"avg"`
	First   *float64 `json:"first"`
	Current *float64 `json:"current"`
	Range   *float64 `json:"range"` // Max - Min
	Diff    *float64 `json:"diff"`  // Current - First

	// TimeStep is the smallest interval between consecutive datapoints in
	// milliseconds, 0 when there are fewer than two.
	TimeStep int64 `json:"timeStep"`
	Count    int   `json:"count"`

	AllNull bool `json:"allNull"`
	AllZero bool `json:"allZero"`
}

// FlotPairs cleans raw datapoints into plottable (time, value) points and
// computes the series statistics in the same pass. Datapoints must be in
// ascending time order.
func FlotPairs(datapoints []timeseries.Datapoint, mode NullPointMode) ([]timeseries.Point, Result) {
	var (
		result     = make([]timeseries.Point, 0, len(datapoints))
		stats      = Result{AllNull: true, AllZero: true}
		max        = -math.MaxFloat64
		min        = math.MaxFloat64
		logMin     = math.MaxFloat64
		timeStep   = int64(math.MaxInt64)
		nonNulls   int
		previous   float64
		deltaUp    = true
		hasPrev    bool
		prevTime   int64
		lastValue  *float64
		priorValue *float64
	)

	for i, dp := range datapoints {
		// Aggregation can leave uneven steps; the smallest one is the
		// resolution of the series.
		if hasPrev {
			if step := dp.Time - prevTime; step < timeStep {
				timeStep = step
			}
		}
		hasPrev = true
		prevTime = dp.Time

		value := dp.Value
		if value == nil {
			if mode == Connected {
				continue
			}
			if mode == NullAsZero {
				value = timeseries.Float(0)
			}
		}

		if value != nil {
			v := *value
			stats.Total += v
			stats.AllNull = false
			nonNulls++

			if v > max {
				max = v
			}
			if v < min {
				min = v
			}

			if stats.First == nil {
				stats.First = timeseries.Float(v)
			} else if previous > v {
				// Counter reset. A reset on the last sample still counts.
				deltaUp = false
				if i == len(datapoints)-1 {
					stats.Delta += v
				}
			} else {
				if deltaUp {
					stats.Delta += v - previous
				} else {
					stats.Delta += v
				}
				deltaUp = true
			}
			previous = v

			if v > 0 && v < logMin {
				logMin = v
			}
			if v != 0 {
				stats.AllZero = false
			}
		}

		priorValue, lastValue = lastValue, value
		if value == nil {
			result = append(result, timeseries.Point{X: float64(dp.Time), Gap: true})
		} else {
			result = append(result, timeseries.P2(float64(dp.Time), *value))
		}
	}

	if max != -math.MaxFloat64 {
		stats.Max = timeseries.Float(max)
	}
	if min != math.MaxFloat64 {
		stats.Min = timeseries.Float(min)
	}
	if logMin != math.MaxFloat64 {
		stats.LogMin = timeseries.Float(logMin)
	}
	if timeStep != math.MaxInt64 {
		stats.TimeStep = timeStep
	}

	if len(result) > 0 && !stats.AllNull {
		stats.Avg = timeseries.Float(stats.Total / float64(nonNulls))
		current := lastValue
		if current == nil && len(result) > 1 {
			current = priorValue
		}
		if current != nil {
			stats.Current = timeseries.Float(*current)
		}
	}
	if stats.Max != nil && stats.Min != nil {
		stats.Range = timeseries.Float(*stats.Max - *stats.Min)
	}
	if stats.Current != nil && stats.First != nil {
		stats.Diff = timeseries.Float(*stats.Current - *stats.First)
	}
	stats.Count = len(result)

	return result, stats
}

// IsMsResolutionNeeded reports whether any timestamp is a millisecond epoch
// with sub-second precision, so tooltips should show milliseconds.
func IsMsResolutionNeeded(datapoints []timeseries.Datapoint) bool {
	for _, dp := range datapoints {
		if len(strconv.FormatInt(dp.Time, 10)) == 13 && dp.Time%1000 != 0 {
			return true
		}
	}
	return false
}
