package stack

import (
	"fmt"

	"github.com/sartorproj/seriesstack/timeseries"
)

// InvalidSeriesShapeError reports a stacked series whose points cannot be
// merged: either its own shape is unusable, or it differs from the shape of
// the series it is stacked on.
type InvalidSeriesShapeError struct {
	Alias string
	Shape timeseries.Shape

	// Other is the series Alias is stacked on. Empty when the series' own
	// declaration is invalid.
	Other      string
	OtherShape timeseries.Shape

	Err error
}

func (e *InvalidSeriesShapeError) Error() string {
	if e.Other == "" {
		return fmt.Sprintf("invalid series shape %q: %v", e.Alias, e.Err)
	}
	return fmt.Sprintf("invalid series shape %q (%s) stacked on %q (%s): %v",
		e.Alias, e.Shape, e.Other, e.OtherShape, e.Err)
}

func (e *InvalidSeriesShapeError) Unwrap() error {
	return e.Err
}
