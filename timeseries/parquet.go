package timeseries

import (
	"github.com/parquet-go/parquet-go"
	"github.com/pkg/errors"
)

// SampleRow is the Parquet row layout of a raw sample.
type SampleRow struct {
	Target string   `parquet:"target,dict"`
	Time   int64    `parquet:"time"`
	Value  *float64 `parquet:"value,optional"`
}

// PointRow is the Parquet row layout of a plotted point.
type PointRow struct {
	Target string  `parquet:"target,dict"`
	Index  int32   `parquet:"index"`
	X      float64 `parquet:"x"`
	Y      float64 `parquet:"y"`
	Bottom float64 `parquet:"bottom"`
	Gap    bool    `parquet:"gap"`
}

// LoadParquet loads raw series from a Parquet file of SampleRow records.
// Series are returned in the order their first row appears.
func LoadParquet(filename string) ([]*RawSeries, error) {
	rows, err := parquet.ReadFile[SampleRow](filename)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", filename)
	}
	return FromSampleRows(rows), nil
}

// SaveParquet writes raw series as SampleRow records.
func SaveParquet(series []*RawSeries, filename string) error {
	return parquet.WriteFile(filename, SampleRows(series))
}

// WritePoints writes plotted series as PointRow records.
func WritePoints(series []*Series, filename string) error {
	return parquet.WriteFile(filename, PointRows(series))
}

// FromSampleRows groups rows into series by target.
func FromSampleRows(rows []SampleRow) []*RawSeries {
	var (
		order  []*RawSeries
		byName = map[string]*RawSeries{}
	)
	for _, row := range rows {
		s, ok := byName[row.Target]
		if !ok {
			s = &RawSeries{Target: row.Target}
			byName[row.Target] = s
			order = append(order, s)
		}
		s.Datapoints = append(s.Datapoints, Datapoint{Value: row.Value, Time: row.Time})
	}
	return order
}

// SampleRows flattens raw series into rows.
func SampleRows(series []*RawSeries) []SampleRow {
	var rows []SampleRow
	for _, s := range series {
		for _, dp := range s.Datapoints {
			rows = append(rows, SampleRow{Target: s.Target, Time: dp.Time, Value: dp.Value})
		}
	}
	return rows
}

// PointRows flattens plotted series into rows.
func PointRows(series []*Series) []PointRow {
	var rows []PointRow
	for _, s := range series {
		for i, p := range s.Points {
			rows = append(rows, PointRow{
				Target: s.Alias,
				Index:  int32(i),
				X:      p.X,
				Y:      p.Y,
				Bottom: p.Bottom,
				Gap:    p.Gap,
			})
		}
	}
	return rows
}
