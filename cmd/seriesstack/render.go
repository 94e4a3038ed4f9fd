package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sartorproj/seriesstack/panel"
	"github.com/sartorproj/seriesstack/timeseries"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type renderOptions struct {
	panels      []string
	output      string
	pretty      bool
	watch       bool
	concurrency int
	csv         csvFlags
}

func newRenderCmd(logger func() (*zap.Logger, error)) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <data file>",
		Short: "Render graph panels from a series file",
		Long: `Render loads raw series from a .csv, .tsv, .json or .parquet file and
renders them with every panel config given by --panel. The result is written
as JSON, or as Parquet point rows when --output ends in .parquet.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			if opts.watch {
				return watch(cmd.Context(), log, opts, args[0], cmd.OutOrStdout())
			}
			return render(cmd.Context(), log, opts, args[0], cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&opts.panels, "panel", "p", nil, "Panel config YAML (repeatable)")
	flags.StringVarP(&opts.output, "output", "o", "", "Output file, .json or .parquet (default: stdout)")
	flags.BoolVar(&opts.pretty, "pretty", false, "Pretty-print JSON output")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "Render again whenever the data or panel files change")
	flags.IntVar(&opts.concurrency, "concurrency", 0, "Maximum panels rendered at once (0: unlimited)")
	opts.csv.register(flags)
	return cmd
}

// render loads the data and panels, renders them and writes the result.
func render(ctx context.Context, log *zap.Logger, opts *renderOptions, data string, stdout io.Writer) error {
	series, err := opts.csv.load(data)
	if err != nil {
		return err
	}

	var requests []panel.Request
	if len(opts.panels) == 0 {
		requests = append(requests, panel.Request{Config: panel.DefaultConfig(), Series: series})
	}
	for _, path := range opts.panels {
		cfg, err := panel.LoadConfig(path)
		if err != nil {
			return err
		}
		requests = append(requests, panel.Request{Config: cfg, Series: series})
	}

	r := panel.NewRenderer(log)
	r.Concurrency = opts.concurrency
	results, err := r.RenderDashboard(ctx, requests)
	if err != nil {
		return err
	}
	log.Info("rendered", zap.String("data", data), zap.Int("series", len(series)), zap.Int("panels", len(results)))

	if strings.EqualFold(filepath.Ext(opts.output), ".parquet") {
		var plotted []*timeseries.Series
		for _, res := range results {
			plotted = append(plotted, res.Plotted()...)
		}
		return errors.Wrapf(timeseries.WritePoints(plotted, opts.output), "writing %s", opts.output)
	}

	var out interface{} = results
	if len(results) == 1 {
		out = results[0]
	}
	var b []byte
	if opts.pretty {
		b, err = json.MarshalIndent(out, "", "  ")
	} else {
		b, err = json.Marshal(out)
	}
	if err != nil {
		return err
	}
	b = append(b, '\n')

	if opts.output == "" {
		_, err = stdout.Write(b)
		return err
	}
	return errors.Wrapf(os.WriteFile(opts.output, b, 0o644), "writing %s", opts.output)
}

// watch renders once, then again after every write to the data file or a
// panel config, until ctx is done. Render failures are logged, not fatal.
func watch(ctx context.Context, log *zap.Logger, opts *renderOptions, data string, stdout io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating file watcher")
	}
	defer watcher.Close()

	// Watch directories so editors that replace files are still seen.
	watched := map[string]bool{}
	files := map[string]bool{}
	for _, path := range append([]string{data}, opts.panels...) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		files[abs] = true
		dir := filepath.Dir(abs)
		if watched[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return errors.Wrapf(err, "watching %s", dir)
		}
		watched[dir] = true
	}

	rerender := func() {
		if err := render(ctx, log, opts, data, stdout); err != nil {
			log.Error("render failed", zap.Error(err))
		}
	}
	rerender()

	// Editors often emit several events per save.
	const settle = 100 * time.Millisecond
	timer := time.NewTimer(settle)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !files[filepath.Clean(ev.Name)] || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			log.Debug("file changed", zap.String("file", ev.Name), zap.Stringer("op", ev.Op))
			timer.Reset(settle)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", zap.Error(err))
		case <-timer.C:
			rerender()
		}
	}
}
