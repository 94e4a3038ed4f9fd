package main

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/sartorproj/seriesstack/stats"
	"github.com/sartorproj/seriesstack/timeseries"
)

type statsOptions struct {
	nullPointMode string
	format        string
	decimals      int
	csv           csvFlags
}

func newStatsCmd() *cobra.Command {
	opts := &statsOptions{}

	cmd := &cobra.Command{
		Use:   "stats <data file>",
		Short: "Print per-series statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := stats.ParseNullPointMode(opts.nullPointMode)
			if err != nil {
				return err
			}
			if _, err := stats.Formatter(opts.format); err != nil {
				return err
			}
			series, err := opts.csv.load(args[0])
			if err != nil {
				return err
			}
			return printStats(cmd.OutOrStdout(), series, mode, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.nullPointMode, "null-point-mode", stats.Null.String(), `How nulls count: "null", "connected" or "null as zero"`)
	flags.StringVar(&opts.format, "format", "short", "Value format: none, short, percent, percentunit, si, locale")
	flags.IntVar(&opts.decimals, "decimals", -1, "Fixed legend decimals (-1: derive from the data)")
	opts.csv.register(flags)
	return cmd
}

func printStats(w io.Writer, series []*timeseries.RawSeries, mode stats.NullPointMode, opts *statsOptions) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Series", "Count", "Min", "Max", "Avg", "Current", "Total", "Delta", "Step (ms)", "ms"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetAutoFormatHeaders(false)

	for _, s := range series {
		_, result := stats.FlotPairs(s.Datapoints, mode)

		var fixed *int
		if opts.decimals >= 0 {
			fixed = &opts.decimals
		}
		lo, hi := 0.0, 0.0
		if result.Min != nil {
			lo, hi = *result.Min, *result.Max
		}
		d := stats.LegendDecimals(stats.AxisTickDecimals(lo, hi, 0), fixed)

		legend, err := result.Legend(opts.format, d)
		if err != nil {
			return err
		}
		delta, err := stats.Format(opts.format, &result.Delta, d)
		if err != nil {
			return err
		}
		table.Append([]string{
			s.Target,
			strconv.Itoa(result.Count),
			legend.Min,
			legend.Max,
			legend.Avg,
			legend.Current,
			legend.Total,
			delta,
			strconv.FormatInt(result.TimeStep, 10),
			strconv.FormatBool(stats.IsMsResolutionNeeded(s.Datapoints)),
		})
	}
	table.Render()
	return nil
}
