package timeseries

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSVFromReader(t *testing.T) {
	csvData := `target,time,value
a,1000,1
b,1000,10
a,2000,
b,2000,20
a,3000,3`

	series, err := LoadCSVFromReader(strings.NewReader(csvData), DefaultCSVOptions())
	require.NoError(t, err)
	require.Len(t, series, 2)

	assert.Equal(t, "a", series[0].Target)
	assert.Equal(t, "b", series[1].Target)
	require.Equal(t, 3, series[0].Len())
	assert.Nil(t, series[0].Datapoints[1].Value)
	assert.Equal(t, []float64{1, 3}, series[0].Values())
	assert.Equal(t, int64(2000), series[1].Datapoints[1].Time)
}

func TestLoadCSVWithFilter(t *testing.T) {
	csvData := `target,time,value
A,1000,100
B,1000,200
A,2000,101`

	opts := DefaultCSVOptions()
	opts.TargetFilter = "A"

	series, err := LoadCSVFromReader(strings.NewReader(csvData), opts)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, []float64{100, 101}, series[0].Values())
}

func TestLoadCSVDates(t *testing.T) {
	csvData := `ds;y
2020-01-01;1
2020-01-02;NaN`

	opts := &CSVOptions{
		TimeColumn:  "ds",
		ValueColumn: "y",
		DateFormat:  "2006-01-02",
		HasHeader:   true,
		Delimiter:   ';',
	}

	series, err := LoadCSVFromReader(strings.NewReader(csvData), opts)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, "", series[0].Target)
	assert.Equal(t, int64(1577836800000), series[0].Datapoints[0].Time)
	assert.Equal(t, int64(1577923200000), series[0].Datapoints[1].Time)
	assert.Nil(t, series[0].Datapoints[1].Value)
}

func TestLoadCSVNoHeader(t *testing.T) {
	opts := DefaultCSVOptions()
	opts.HasHeader = false

	series, err := LoadCSVFromReader(strings.NewReader("1000,1,x\n2000,2,x\n"), opts)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, "x", series[0].Target)
	assert.Equal(t, []float64{1, 2}, series[0].Values())
}

func TestLoadCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing value column", "target,time\na,1000\n"},
		{"missing time column", "target,value\na,1\n"},
		{"bad value", "target,time,value\na,1000,abc\n"},
		{"bad time", "target,time,value\na,yesterday,1\n"},
		{"empty", "target,time,value\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCSVFromReader(strings.NewReader(tt.data), nil)
			assert.Error(t, err)
		})
	}
}

func TestSaveCSV(t *testing.T) {
	r, err := NewRawSeries("a", []float64{1, 2}, []int64{1000, 2000})
	require.NoError(t, err)
	r.Datapoints[1].Value = nil

	filename := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, SaveCSV([]*RawSeries{r}, filename))

	loaded, err := LoadCSV(filename, nil)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "a", loaded[0].Target)
	assert.Equal(t, []float64{1}, loaded[0].Values())
	assert.Nil(t, loaded[0].Datapoints[1].Value)
}
