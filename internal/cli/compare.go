package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	forecaster "github.com/muhardiansyah15/prophet-forecasting-app"
	"github.com/muhardiansyah15/prophet-forecasting-app/service"
)

type compareOptions struct {
	File       string
	Periods    int
	PeriodsSet bool
	HTMLPath   string
	Output     string
}

var compareOpts compareOptions

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Forecast a series with every available method",
	RunE: func(cmd *cobra.Command, args []string) error {
		compareOpts.PeriodsSet = cmd.Flags().Changed("periods")
		return runCompare(cmd.Context(), getApp(), compareOpts, cmd.OutOrStdout())
	},
}

func init() {
	compareCmd.Flags().StringVar(&compareOpts.File, "file", "", "Path to the input file with ds and y columns")
	compareCmd.Flags().IntVar(&compareOpts.Periods, "periods", 0, "Days to forecast (defaults to config)")
	compareCmd.Flags().StringVar(&compareOpts.HTMLPath, "html", "", "Path to write an HTML page comparing the methods")
	compareCmd.Flags().StringVarP(&compareOpts.Output, "output", "o", "json", "Output format: json or yaml")
	_ = compareCmd.MarkFlagRequired("file")
}

func runCompare(ctx context.Context, a *app, opts compareOptions, w io.Writer) error {
	if err := checkOutput(opts.Output); err != nil {
		return err
	}
	periods, err := a.periods(opts.PeriodsSet, opts.Periods)
	if err != nil {
		return err
	}
	data, err := a.load(opts.File)
	if err != nil {
		return err
	}

	comparisons, err := a.forecaster.Compare(ctx, data.Raw(), periods)
	if err != nil {
		return err
	}
	for _, c := range comparisons {
		if c.Err != nil {
			a.logger.Warn().Err(c.Err).Str("method", c.Method.String()).Msg("method failed during comparison")
		}
	}

	if opts.HTMLPath != "" {
		if err := writeComparisonHTML(opts.HTMLPath, comparisons); err != nil {
			return err
		}
		a.logger.Info().Str("path", opts.HTMLPath).Msg("wrote html chart")
	}
	return encode(w, opts.Output, service.NewCompareResponse(comparisons))
}

func writeComparisonHTML(path string, comparisons []forecaster.Comparison) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return forecaster.PlotComparison(file, comparisons)
}
