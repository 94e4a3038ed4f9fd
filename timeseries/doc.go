// Package timeseries provides the series and point types shared by the stack
// and stats packages, along with loaders for raw datapoints.
//
// There are two representations of a series. A RawSeries is what a
// datasource returns: a target name and [value, time] datapoints where the
// value may be null. A Series is what gets plotted: ordered points plus the
// metadata that controls stacking.
//
// # Points
//
// Every point of a series has the same Shape. Shape2 points are (x, y);
// Shape3 points also carry a bottom slot, the baseline a filled area or bar
// is drawn from:
//
//	s := &timeseries.Series{
//	    Alias:     "cpu.user",
//	    Points:    []timeseries.Point{timeseries.P3(1, 10, 0), timeseries.NewGap(), timeseries.P3(3, 12, 0)},
//	    Stack:     "A",
//	    Shape:     timeseries.Shape3,
//	    HasBottom: true,
//	}
//
// A gap is a missing sample and is distinct from a zero value. For horizontal
// series the key axis is Y and the value axis is X; use Point.Key and
// Point.Value instead of the raw fields when the orientation matters.
//
// # Loading raw series
//
// Long-format CSV, one row per sample:
//
//	// target,time,value
//	// a,1000,1
//	// a,2000,null
//	series, err := timeseries.LoadCSV("data.csv", nil)
//
// Graphite style JSON:
//
//	// [{"target": "a", "datapoints": [[1, 1000], [null, 2000]]}]
//	series, err := timeseries.LoadJSON("data.json")
//
// Parquet files of SampleRow records:
//
//	series, err := timeseries.LoadParquet("data.parquet")
//
// Load picks the loader from the file extension.
package timeseries
