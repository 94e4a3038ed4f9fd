package panel

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sartorproj/seriesstack/timeseries"
)

// Request is one panel of a dashboard and the raw series it plots.
type Request struct {
	Config *Config
	Series []*timeseries.RawSeries
}

// RenderDashboard renders every panel concurrently. Each panel works on its
// own copy of its series, so requests may share RawSeries values. Results
// are returned in request order; the first failure cancels the rest.
func (r *Renderer) RenderDashboard(ctx context.Context, requests []Request) ([]*Result, error) {
	results := make([]*Result, len(requests))

	g, ctx := errgroup.WithContext(ctx)
	if r.Concurrency > 0 {
		g.SetLimit(r.Concurrency)
	}
	for i, req := range requests {
		i, req := i, req
		g.Go(func() error {
			raw := make([]*timeseries.RawSeries, len(req.Series))
			for k, rs := range req.Series {
				raw[k] = rs.Copy()
			}
			res, err := r.Render(ctx, req.Config, raw)
			if err != nil {
				return errors.Wrapf(err, "panel %d", i)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.log.Debug("rendered dashboard", zap.Int("panels", len(results)))
	return results, nil
}
