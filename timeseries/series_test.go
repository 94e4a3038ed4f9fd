package timeseries

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointAxes(t *testing.T) {
	p := P3(1, 2, 3)

	assert.Equal(t, 1.0, p.Key(false))
	assert.Equal(t, 2.0, p.Value(false))
	assert.Equal(t, 2.0, p.Key(true))
	assert.Equal(t, 1.0, p.Value(true))

	h := p.WithValue(true, 10).WithKey(true, 20)
	assert.Equal(t, Point{X: 10, Y: 20, Bottom: 3}, h)
	assert.Equal(t, P3(1, 2, 3), p, "With* must not modify the receiver")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		series  Series
		wantErr bool
	}{
		{"point2", Series{Alias: "a", Shape: Shape2}, false},
		{"point3 with bottom", Series{Alias: "a", Shape: Shape3, HasBottom: true}, false},
		{"point3 without bottom", Series{Alias: "a", Shape: Shape3}, false},
		{"zero shape", Series{Alias: "a"}, true},
		{"bottom on point2", Series{Alias: "a", Shape: Shape2, HasBottom: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.series.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidShape))
		})
	}
}

func TestSeriesCopy(t *testing.T) {
	s := NewSeries("a", []Point{P2(1, 1), P2(2, 2)})
	copied := s.Copy()

	s.Points[0].Y = 100

	assert.Equal(t, 1.0, copied.Points[0].Y, "copy was modified when original changed")
	assert.Equal(t, "a", copied.Alias)
	assert.True(t, copied.Lines)
}

func TestNewRawSeries(t *testing.T) {
	r, err := NewRawSeries("a", []float64{1, math.NaN(), 3}, []int64{1000, 2000, 3000})
	require.NoError(t, err)

	require.Equal(t, 3, r.Len())
	assert.Nil(t, r.Datapoints[1].Value)
	assert.Equal(t, []float64{1, 3}, r.Values())

	_, err = NewRawSeries("a", []float64{1}, nil)
	assert.Error(t, err)
}

func TestRawSeriesSlice(t *testing.T) {
	r, err := NewRawSeries("a", []float64{1, 2, 3, 4, 5}, []int64{1, 2, 3, 4, 5})
	require.NoError(t, err)

	sliced := r.Slice(1, 4)
	assert.Equal(t, []float64{2, 3, 4}, sliced.Values())

	*sliced.Datapoints[0].Value = 100
	assert.Equal(t, 2.0, *r.Datapoints[1].Value, "slice must not share values with the original")

	assert.Equal(t, 0, r.Slice(4, 2).Len())
	assert.Equal(t, 5, r.Slice(-1, 10).Len())
}

func TestRawSeriesCopy(t *testing.T) {
	r, err := NewRawSeries("a", []float64{1, 2, 3}, []int64{1, 2, 3})
	require.NoError(t, err)
	copied := r.Copy()

	*r.Datapoints[0].Value = 100

	assert.Equal(t, 1.0, *copied.Datapoints[0].Value)
}
