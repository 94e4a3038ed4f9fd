package timeseries

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// CSVOptions holds options for CSV loading. Files are in long format: one row
// per sample, with an optional column naming the series the row belongs to.
type CSVOptions struct {
	TimeColumn   string // Column name for timestamps (default: "time")
	ValueColumn  string // Column name for values (default: "value")
	TargetColumn string // Column name for the series name (optional)
	TargetFilter string // Only keep rows of this series
	DateFormat   string // Layout for non-numeric timestamps (default: RFC 3339)
	HasHeader    bool   // Whether CSV has header row (default: true)
	Delimiter    rune   // Field delimiter (default: ',')
	SkipRows     int    // Number of rows to skip at start
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		TimeColumn:   "time",
		ValueColumn:  "value",
		TargetColumn: "target",
		DateFormat:   time.RFC3339,
		HasHeader:    true,
		Delimiter:    ',',
	}
}

// LoadCSV loads series from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) ([]*RawSeries, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	series, err := LoadCSVFromReader(file, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", filename)
	}
	return series, nil
}

// LoadCSVFromReader loads series from an io.Reader. Series are returned in
// the order their first row appears. Empty, "null", "NA" and "NaN" value
// cells are null samples.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) ([]*RawSeries, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, errors.Wrapf(err, "skipping row %d", i+1)
		}
	}

	timeIdx, valueIdx, targetIdx := 0, 1, -1
	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, errors.Wrap(err, "reading header")
		}
		timeIdx, valueIdx, targetIdx = -1, -1, -1
		for i, h := range header {
			h = clean(h)
			switch h {
			case opts.TimeColumn:
				timeIdx = i
			case opts.ValueColumn:
				valueIdx = i
			case opts.TargetColumn:
				targetIdx = i
			}
		}
		if timeIdx == -1 {
			return nil, errors.Errorf("time column %q not found", opts.TimeColumn)
		}
		if valueIdx == -1 {
			return nil, errors.Errorf("value column %q not found", opts.ValueColumn)
		}
	} else if opts.TargetColumn != "" {
		targetIdx = 2
	}

	var (
		order  []*RawSeries
		byName = map[string]*RawSeries{}
		line   = opts.SkipRows
	)
	if opts.HasHeader {
		line++
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		target := ""
		if targetIdx >= 0 && targetIdx < len(record) {
			target = clean(record[targetIdx])
		}
		if opts.TargetFilter != "" && target != opts.TargetFilter {
			continue
		}
		if timeIdx >= len(record) || valueIdx >= len(record) {
			return nil, errors.Errorf("line %d: expected at least %d fields, got %d", line, max(timeIdx, valueIdx)+1, len(record))
		}

		ts, err := parseTime(clean(record[timeIdx]), opts.DateFormat)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		value, err := parseValue(clean(record[valueIdx]))
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}

		s, ok := byName[target]
		if !ok {
			s = &RawSeries{Target: target}
			byName[target] = s
			order = append(order, s)
		}
		s.Datapoints = append(s.Datapoints, Datapoint{Value: value, Time: ts})
	}

	if len(order) == 0 {
		return nil, errors.New("no valid data found in CSV")
	}
	return order, nil
}

// SaveCSV saves series to a CSV file in long format.
func SaveCSV(series []*RawSeries, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	w := csv.NewWriter(writer)
	if err := w.Write([]string{"target", "time", "value"}); err != nil {
		return err
	}
	for _, s := range series {
		for _, dp := range s.Datapoints {
			value := "null"
			if dp.Value != nil {
				value = strconv.FormatFloat(*dp.Value, 'f', -1, 64)
			}
			if err := w.Write([]string{s.Target, strconv.FormatInt(dp.Time, 10), value}); err != nil {
				return err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return writer.Flush()
}

func clean(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\""))
}

func parseValue(s string) (*float64, error) {
	switch s {
	case "", "null", "NA", "NaN":
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid value %q", s)
	}
	return &v, nil
}

// parseTime accepts epoch milliseconds or a timestamp in layout.
func parseTime(s, layout string) (int64, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms, nil
	}
	if ms, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(ms), nil
	}
	layouts := []string{layout, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}
	for _, l := range layouts {
		if l == "" {
			continue
		}
		if ts, err := time.Parse(l, s); err == nil {
			return ts.UnixMilli(), nil
		}
	}
	return 0, errors.Errorf("invalid time %q", s)
}
