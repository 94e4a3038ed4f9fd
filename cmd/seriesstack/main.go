// Package main provides the seriesstack command line tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/sartorproj/seriesstack/timeseries"
)

// csvFlags are the CSV loader options shared by every command.
type csvFlags struct {
	timeColumn   string
	valueColumn  string
	targetColumn string
	target       string
	dateFormat   string
	delimiter    string
	noHeader     bool
}

func (f *csvFlags) register(flags *pflag.FlagSet) {
	defaults := timeseries.DefaultCSVOptions()
	flags.StringVar(&f.timeColumn, "time-column", defaults.TimeColumn, "CSV column holding timestamps")
	flags.StringVar(&f.valueColumn, "value-column", defaults.ValueColumn, "CSV column holding values")
	flags.StringVar(&f.targetColumn, "target-column", defaults.TargetColumn, "CSV column naming the series")
	flags.StringVar(&f.target, "target", "", "Only load the series with this name")
	flags.StringVar(&f.dateFormat, "date-format", defaults.DateFormat, "Go layout of non-numeric CSV timestamps")
	flags.StringVar(&f.delimiter, "delimiter", ",", "CSV field delimiter")
	flags.BoolVar(&f.noHeader, "no-header", false, "CSV has no header row")
}

func (f *csvFlags) options() (*timeseries.CSVOptions, error) {
	opts := timeseries.DefaultCSVOptions()
	opts.TimeColumn = f.timeColumn
	opts.ValueColumn = f.valueColumn
	opts.TargetColumn = f.targetColumn
	opts.TargetFilter = f.target
	opts.DateFormat = f.dateFormat
	opts.HasHeader = !f.noHeader

	d := []rune(f.delimiter)
	if len(d) != 1 {
		return nil, errors.Errorf("delimiter must be a single character, got %q", f.delimiter)
	}
	opts.Delimiter = d[0]
	return opts, nil
}

func (f *csvFlags) load(filename string) ([]*timeseries.RawSeries, error) {
	opts, err := f.options()
	if err != nil {
		return nil, err
	}
	return timeseries.Load(filename, opts)
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "invalid log level")
	}
	cfg := zap.NewProductionConfig()
	if lvl.Level() == zap.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = lvl
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "seriesstack",
		Short: "Stack and summarize time series for graph panels",
		Long: `seriesstack computes per-series statistics, stacks series the way
graph panels draw them and derives legend precision.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	logger := func() (*zap.Logger, error) {
		return newLogger(logLevel)
	}
	rootCmd.AddCommand(newRenderCmd(logger), newStatsCmd())
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
