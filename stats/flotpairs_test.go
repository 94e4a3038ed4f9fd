package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/seriesstack/timeseries"
)

func dp(v float64, t int64) timeseries.Datapoint {
	return timeseries.Datapoint{Value: timeseries.Float(v), Time: t}
}

func null(t int64) timeseries.Datapoint {
	return timeseries.Datapoint{Time: t}
}

func TestFlotPairsConnected(t *testing.T) {
	points, result := FlotPairs([]timeseries.Datapoint{dp(1, 2), null(3), dp(10, 4), dp(8, 5)}, Connected)

	require.Len(t, points, 3)
	assert.Equal(t, []timeseries.Point{timeseries.P2(2, 1), timeseries.P2(4, 10), timeseries.P2(5, 8)}, points)
	assert.Equal(t, 3, result.Count)
	require.NotNil(t, result.Avg)
	assert.InDelta(t, (1.0+10+8)/3, *result.Avg, 1e-12)
}

func TestFlotPairsNullAsZero(t *testing.T) {
	points, result := FlotPairs([]timeseries.Datapoint{dp(1, 2), null(3), dp(10, 4), dp(8, 5)}, NullAsZero)

	require.Len(t, points, 4)
	assert.Equal(t, timeseries.P2(3, 0), points[1])
	require.NotNil(t, result.Avg)
	assert.InDelta(t, (1.0+0+10+8)/4, *result.Avg, 1e-12)
	assert.Equal(t, 0.0, *result.Min)
	assert.Equal(t, 1.0, *result.LogMin, "zero is not a log-scale minimum")
}

func TestFlotPairsNull(t *testing.T) {
	points, result := FlotPairs([]timeseries.Datapoint{dp(1, 2), null(3), dp(10, 4), null(5)}, Null)

	require.Len(t, points, 4)
	assert.Equal(t, timeseries.Point{X: 3, Gap: true}, points[1])
	assert.True(t, points[3].Gap)
	assert.Equal(t, 4, result.Count)
	assert.InDelta(t, 5.5, *result.Avg, 1e-12)
	require.NotNil(t, result.Current)
	assert.Equal(t, 10.0, *result.Current, "a trailing null falls back to the previous value")
}

func TestFlotPairsStats(t *testing.T) {
	_, result := FlotPairs([]timeseries.Datapoint{dp(4, 1000), dp(2, 2000), dp(7, 2500), dp(5, 4500)}, Null)

	assert.Equal(t, 18.0, result.Total)
	assert.Equal(t, 2.0, *result.Min)
	assert.Equal(t, 7.0, *result.Max)
	assert.Equal(t, 5.0, *result.Range)
	assert.Equal(t, 4.0, *result.First)
	assert.Equal(t, 5.0, *result.Current)
	assert.Equal(t, 1.0, *result.Diff)
	assert.Equal(t, int64(500), result.TimeStep)
	assert.False(t, result.AllNull)
	assert.False(t, result.AllZero)
}

func TestFlotPairsCounterReset(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"reset in the middle", []float64{1, 5, 10, 0, 10}, 19},
		{"monotonic", []float64{1, 2, 3, 4}, 3},
		{"reset on the last point", []float64{1, 5, 3}, 7},
		{"flat", []float64{2, 2, 2}, 0},
		{"single", []float64{5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := make([]timeseries.Datapoint, len(tt.values))
			for i, v := range tt.values {
				points[i] = dp(v, int64(i+1)*1000)
			}
			_, result := FlotPairs(points, Null)
			assert.Equal(t, tt.expected, result.Delta)
		})
	}
}

func TestFlotPairsEmpty(t *testing.T) {
	points, result := FlotPairs(nil, Null)

	assert.Empty(t, points)
	assert.Equal(t, Result{AllNull: true, AllZero: true}, result)
}

func TestFlotPairsAllNull(t *testing.T) {
	points, result := FlotPairs([]timeseries.Datapoint{null(1), null(2)}, Null)

	assert.Len(t, points, 2)
	assert.True(t, result.AllNull)
	assert.Nil(t, result.Min)
	assert.Nil(t, result.Max)
	assert.Nil(t, result.Avg)
	assert.Nil(t, result.Current)
	assert.Nil(t, result.Range)
	assert.Equal(t, int64(1), result.TimeStep)
	assert.Equal(t, 2, result.Count)
}

func TestFlotPairsAllZero(t *testing.T) {
	_, result := FlotPairs([]timeseries.Datapoint{dp(0, 1), dp(0, 2)}, Null)

	assert.True(t, result.AllZero)
	assert.False(t, result.AllNull)
	assert.Nil(t, result.LogMin)
}

func TestIsMsResolutionNeeded(t *testing.T) {
	tests := []struct {
		name     string
		time     int64
		expected bool
	}{
		{"sub-second millisecond epoch", 1236547890001, true},
		{"whole-second millisecond epoch", 1234567890000, false},
		{"second epoch", 1234567890, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsMsResolutionNeeded([]timeseries.Datapoint{null(tt.time)}))
		})
	}
}

func TestParseNullPointMode(t *testing.T) {
	for _, mode := range []NullPointMode{Null, Connected, NullAsZero} {
		parsed, err := ParseNullPointMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, parsed)
	}

	mode, err := ParseNullPointMode("")
	require.NoError(t, err)
	assert.Equal(t, Null, mode)

	_, err = ParseNullPointMode("interpolate")
	assert.Error(t, err)
}
