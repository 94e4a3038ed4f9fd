package timeseries

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownFormat is returned for files whose extension names no known
// series format.
var ErrUnknownFormat = errors.New("unknown series file format")

// Load reads raw series from a .csv, .json or .parquet file. opts applies to
// CSV files only and may be nil.
func Load(filename string, opts *CSVOptions) ([]*RawSeries, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv", ".tsv":
		if opts == nil {
			opts = DefaultCSVOptions()
		}
		if ext == ".tsv" {
			tsv := *opts
			tsv.Delimiter = '\t'
			opts = &tsv
		}
		return LoadCSV(filename, opts)
	case ".json":
		return LoadJSON(filename)
	case ".parquet":
		return LoadParquet(filename)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%s", filename)
	}
}
