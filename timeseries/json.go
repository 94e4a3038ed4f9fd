package timeseries

import (
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// jsonSeries is the Graphite/flot style document: a target and its
// [value, time] pairs.
type jsonSeries struct {
	Target     string      `json:"target"`
	Datapoints []Datapoint `json:"datapoints"`
}

// MarshalJSON encodes the datapoint as the pair [value, time].
func (dp Datapoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{dp.Value, dp.Time})
}

// UnmarshalJSON decodes the pair [value, time]; value may be null.
func (dp *Datapoint) UnmarshalJSON(data []byte) error {
	var pair []*float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return errors.Wrap(err, "datapoint must be a [value, time] pair")
	}
	if len(pair) != 2 {
		return errors.Errorf("datapoint must be a [value, time] pair, got %d elements", len(pair))
	}
	if pair[1] == nil {
		return errors.New("datapoint time cannot be null")
	}
	dp.Value = pair[0]
	dp.Time = int64(*pair[1])
	return nil
}

// MarshalJSON encodes the series as {"target": ..., "datapoints": [...]}.
func (r *RawSeries) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonSeries{Target: r.Target, Datapoints: r.Datapoints})
}

// UnmarshalJSON decodes {"target": ..., "datapoints": [...]}.
func (r *RawSeries) UnmarshalJSON(data []byte) error {
	var js jsonSeries
	if err := json.Unmarshal(data, &js); err != nil {
		return err
	}
	r.Target = js.Target
	r.Datapoints = js.Datapoints
	return nil
}

// DecodeJSON reads a JSON array of series documents.
func DecodeJSON(r io.Reader) ([]*RawSeries, error) {
	var series []*RawSeries
	if err := json.NewDecoder(r).Decode(&series); err != nil {
		return nil, errors.Wrap(err, "decoding series")
	}
	return series, nil
}

// LoadJSON loads series from a JSON file.
func LoadJSON(filename string) ([]*RawSeries, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	series, err := DecodeJSON(file)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", filename)
	}
	return series, nil
}
