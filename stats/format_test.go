package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/seriesstack/timeseries"
)

func intPtr(v int) *int { return &v }

func TestToFixed(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		decimals int
		expected string
	}{
		{"round", 3.14159, 2, "3.14"},
		{"pad", 3.1, 3, "3.100"},
		{"integer", 42, 0, "42"},
		{"round half up", 2.5, 0, "3"},
		{"negative", -1.25, 1, "-1.2"},
		{"zero", 0, 3, "0"},
		{"negative decimals round to integer", 2.71828, -1, "3"},
		{"negative decimals round down", 0.4, -1, "0"},
		{"negative decimals drop padding", 1234.5, -3, "1235"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToFixed(tt.value, tt.decimals))
		})
	}
}

func TestToFixedScaled(t *testing.T) {
	assert.Equal(t, "1.50 s", ToFixedScaled(1.5, 2, nil, 1, " s"))
	assert.Equal(t, "1.500 s", ToFixedScaled(1.5, 2, intPtr(1), 2, " s"))
	assert.Equal(t, "2 s", ToFixedScaled(1.75, 2, intPtr(-3), 1, " s"), "negative scaled precision rounds to integer")
}

func TestRoundValue(t *testing.T) {
	assert.Equal(t, 3.14, RoundValue(3.14159, 2))
	assert.Equal(t, 10.0, RoundValue(9.96, 1))
	assert.Equal(t, 3.0, RoundValue(3.4, 0))
	assert.Equal(t, 3.0, RoundValue(2.5, 0))
	assert.Equal(t, -2.0, RoundValue(-2.5, 0), "halves round upward")
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		unit     string
		value    float64
		decimals Decimals
		expected string
	}{
		{"none", "none", 1234.5, Fixed(1), "1234.5"},
		{"short below a thousand", "short", 999, Fixed(0), "999"},
		{"short thousands", "short", 1500, Fixed(1), "1.5 K"},
		{"short millions with scaled precision", "short", 2500000, Decimals{Decimals: 0, Scaled: intPtr(-5)}, "2.5 Mil"},
		{"short thousands on a wide axis", "short", 5432, Decimals{Decimals: 0, Scaled: intPtr(-4)}, "5 K"},
		{"default unit", "", 1500, Fixed(1), "1.5 K"},
		{"percent", "percent", 12.345, Fixed(1), "12.3%"},
		{"percentunit", "percentunit", 0.5, Fixed(0), "50%"},
		{"locale", "locale", 1234567.891, Fixed(2), "1,234,567.89"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Format(tt.unit, &tt.value, tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s)
		})
	}
}

func TestFormatNull(t *testing.T) {
	s, err := Format("short", nil, Fixed(2))
	require.NoError(t, err)
	assert.Equal(t, "", s)

	_, err = Format("furlongs", nil, Fixed(2))
	assert.Error(t, err)
}

func TestDecimalsForValue(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		decimals int
		scaled   int
	}{
		{"integer", 100, 0, 1},
		{"fraction", 0.7, 1, 4},
		{"fraction above one", 3.7, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DecimalsForValue(tt.value)
			assert.Equal(t, tt.decimals, d.Decimals)
			require.NotNil(t, d.Scaled)
			assert.Equal(t, tt.scaled, *d.Scaled)
		})
	}

	assert.Equal(t, Fixed(0), DecimalsForValue(0))
}

func TestAxisTickDecimals(t *testing.T) {
	tests := []struct {
		name     string
		lo, hi   float64
		ticks    int
		decimals int
		scaled   int
	}{
		{"unit ticks", 0, 5, 5, 0, 0},
		{"fractional ticks", 0, 1, 5, 1, 2},
		{"quarter ticks", 0, 12, 5, 1, 1},
		{"hundreds", 0, 1000, 5, 0, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := AxisTickDecimals(tt.lo, tt.hi, tt.ticks)
			assert.Equal(t, tt.decimals, d.Decimals)
			require.NotNil(t, d.Scaled)
			assert.Equal(t, tt.scaled, *d.Scaled)
		})
	}

	flat := AxisTickDecimals(0, 0, 5)
	assert.Equal(t, 1, flat.Decimals, "a flat axis is widened to [-1, 1]")
}

func TestLegendDecimals(t *testing.T) {
	d := LegendDecimals(Decimals{Decimals: 2, Scaled: intPtr(1)}, nil)
	assert.Equal(t, 3, d.Decimals)
	assert.Equal(t, 3, *d.Scaled)

	d = LegendDecimals(Decimals{Decimals: 0, Scaled: intPtr(0)}, nil)
	assert.Equal(t, 0, d.Decimals, "ticks without decimals keep none")

	d = LegendDecimals(Decimals{Decimals: 2}, intPtr(4))
	assert.Equal(t, Fixed(4), d)
}

func TestLegend(t *testing.T) {
	_, result := FlotPairs([]timeseries.Datapoint{dp(1200, 1), dp(2400, 2), {Time: 3}}, Null)

	legend, err := result.Legend("short", Fixed(1))
	require.NoError(t, err)
	assert.Equal(t, LegendValues{Min: "1.2 K", Max: "2.4 K", Avg: "1.8 K", Current: "2.4 K", Total: "3.6 K"}, legend)

	_, err = result.Legend("furlongs", Fixed(1))
	assert.Error(t, err)
}
