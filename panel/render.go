package panel

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/sartorproj/seriesstack/stack"
	"github.com/sartorproj/seriesstack/stats"
	"github.com/sartorproj/seriesstack/timeseries"
)

// Result is a rendered panel.
type Result struct {
	Title  string           `json:"title"`
	Series []RenderedSeries `json:"series"`

	// BarWidth is the bar width in milliseconds, derived from the time step
	// of the first series.
	BarWidth     float64        `json:"barWidth"`
	MsResolution bool           `json:"msResolution"`
	Decimals     stats.Decimals `json:"decimals"`
	AxisMax      *float64       `json:"axisMax,omitempty"`
}

// RenderedSeries is one series ready for plotting.
type RenderedSeries struct {
	Alias  string             `json:"alias"`
	Points []timeseries.Point `json:"points"`
	Stats  stats.Result       `json:"stats"`
	Legend stats.LegendValues `json:"legend"`
	Hidden bool               `json:"hidden,omitempty"`
	ZIndex int                `json:"zindex,omitempty"`
	Stack  string             `json:"stack,omitempty"`
	Bars   bool               `json:"bars,omitempty"`
	Shape  timeseries.Shape   `json:"shape"`
}

// Plotted returns the rendered series as plain series, hidden ones
// included, in render order.
func (r *Result) Plotted() []*timeseries.Series {
	out := make([]*timeseries.Series, len(r.Series))
	for i, rs := range r.Series {
		s := timeseries.NewSeries(rs.Alias, rs.Points)
		s.Stack = rs.Stack
		s.Shape = rs.Shape
		s.HasBottom = rs.Shape == timeseries.Shape3
		out[i] = s
	}
	return out
}

// Renderer turns raw series into plottable panels.
type Renderer struct {
	log *zap.Logger

	// Concurrency caps the panels RenderDashboard renders at once. Zero or
	// less means no limit.
	Concurrency int
}

// NewRenderer creates a renderer logging to log. A nil logger discards.
func NewRenderer(log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{log: log}
}

type prepared struct {
	series *timeseries.Series
	raw    *timeseries.RawSeries
	stats  stats.Result
	opts   seriesOptions
	hidden bool
}

// Render computes the statistics of every raw series, applies the panel and
// override settings, orders series by zindex and stacks them. The raw
// series are not modified.
func (r *Renderer) Render(ctx context.Context, cfg *Config, raw []*timeseries.RawSeries) (*Result, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, err := stats.ParseNullPointMode(cfg.NullPointMode)
	if err != nil {
		return nil, err
	}
	log := r.log.With(zap.String("panel", cfg.Title))

	hidden := make(map[string]bool, len(cfg.HiddenSeries))
	for _, alias := range cfg.HiddenSeries {
		hidden[alias] = true
	}

	items := make([]prepared, 0, len(raw))
	for _, rs := range raw {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		opts, err := cfg.optionsFor(rs.Target)
		if err != nil {
			return nil, err
		}
		points, st := stats.FlotPairs(rs.Datapoints, mode)
		items = append(items, prepared{
			series: r.series(cfg, rs.Target, points, opts, hidden[rs.Target]),
			raw:    rs,
			stats:  st,
			opts:   opts,
			hidden: hidden[rs.Target],
		})
		log.Debug("prepared series",
			zap.String("alias", rs.Target),
			zap.Int("points", len(points)),
			zap.String("stack", opts.stack),
			zap.Int("zindex", opts.zindex),
			zap.Bool("hidden", hidden[rs.Target]))
	}

	res := &Result{Title: cfg.Title}
	if len(items) > 0 {
		res.BarWidth = float64(items[0].stats.TimeStep) / 1.5
	}
	for _, it := range items {
		if stats.IsMsResolutionNeeded(it.raw.Datapoints) {
			res.MsResolution = true
			break
		}
	}

	slices.SortStableFunc(items, func(a, b prepared) int {
		return a.opts.zindex - b.opts.zindex
	})

	series := make([]*timeseries.Series, len(items))
	for i, it := range items {
		series[i] = it.series
	}
	if cfg.Percentage {
		series, err = stack.StackPercent(series)
	} else {
		series, err = stack.Stack(series)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "stacking panel %q", cfg.Title)
	}

	axis := r.axisDecimals(cfg, series, items)
	res.Decimals = stats.LegendDecimals(axis, cfg.Decimals)
	if cfg.Percentage {
		res.AxisMax = timeseries.Float(100)
	}

	res.Series = make([]RenderedSeries, len(items))
	for i, it := range items {
		legend, err := it.stats.Legend(cfg.Format, res.Decimals)
		if err != nil {
			return nil, err
		}
		res.Series[i] = RenderedSeries{
			Alias:  it.raw.Target,
			Points: series[i].Points,
			Stats:  it.stats,
			Legend: legend,
			Hidden: it.hidden,
			ZIndex: it.opts.zindex,
			Stack:  series[i].Stack,
			Bars:   it.opts.bars,
			Shape:  series[i].Shape,
		}
	}

	log.Debug("rendered panel",
		zap.Int("series", len(res.Series)),
		zap.Float64("barWidth", res.BarWidth),
		zap.Int("decimals", res.Decimals.Decimals),
		zap.Bool("msResolution", res.MsResolution))
	return res, nil
}

// series builds the plottable series for one set of flot pairs.
func (r *Renderer) series(cfg *Config, alias string, points []timeseries.Point, opts seriesOptions, hidden bool) *timeseries.Series {
	s := timeseries.NewSeries(alias, points)
	s.Lines = opts.lines
	s.Steps = opts.steps
	s.Horizontal = cfg.Horizontal

	if cfg.Horizontal {
		for i, p := range s.Points {
			s.Points[i].X, s.Points[i].Y = p.Y, p.X
		}
	}

	stacked := opts.stack != "" && !hidden
	switch {
	case !stacked:
	case cfg.Percentage:
		s.Percent = true
	default:
		s.Stack = opts.stack
	}
	// Every stacked series carries a bottom so a stack group never mixes
	// shapes.
	if stacked || opts.bars || opts.fill > 0 {
		s.Shape = timeseries.Shape3
		s.HasBottom = true
	}

	if hidden {
		s.Points = []timeseries.Point{}
	}
	return s
}

// axisDecimals picks the tick precision of the value axis over every
// visible point.
func (r *Renderer) axisDecimals(cfg *Config, series []*timeseries.Series, items []prepared) stats.Decimals {
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, s := range series {
		if items[i].hidden {
			continue
		}
		for _, p := range s.Points {
			if p.Gap {
				continue
			}
			v := p.Value(s.Horizontal)
			lo, hi = math.Min(lo, v), math.Max(hi, v)
			if s.HasBottom {
				lo, hi = math.Min(lo, p.Bottom), math.Max(hi, p.Bottom)
			}
		}
	}
	if math.IsInf(lo, 1) {
		lo, hi = 0, 0
	}
	if cfg.Percentage {
		hi = 100
	}
	return stats.AxisTickDecimals(lo, hi, cfg.Ticks)
}
