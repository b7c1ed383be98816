package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	forecaster "github.com/muhardiansyah15/prophet-forecasting-app"
	"github.com/muhardiansyah15/prophet-forecasting-app/service"
)

type forecastOptions struct {
	File       string
	Method     string
	Periods    int
	PeriodsSet bool
	HTMLPath   string
	PNGPath    string
	Output     string
}

var forecastOpts forecastOptions

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Forecast a series read from a JSON, CSV or Excel file",
	RunE: func(cmd *cobra.Command, args []string) error {
		forecastOpts.PeriodsSet = cmd.Flags().Changed("periods")
		return runForecast(cmd.Context(), getApp(), forecastOpts, cmd.OutOrStdout())
	},
}

func init() {
	forecastCmd.Flags().StringVar(&forecastOpts.File, "file", "", "Path to the input file with ds and y columns")
	forecastCmd.Flags().StringVar(&forecastOpts.Method, "method", "", "Forecast method (defaults to config)")
	forecastCmd.Flags().IntVar(&forecastOpts.Periods, "periods", 0, "Days to forecast (defaults to config)")
	forecastCmd.Flags().StringVar(&forecastOpts.HTMLPath, "html", "", "Path to write an interactive HTML chart")
	forecastCmd.Flags().StringVar(&forecastOpts.PNGPath, "png", "", "Path to write a PNG chart")
	forecastCmd.Flags().StringVarP(&forecastOpts.Output, "output", "o", "json", "Output format: json or yaml")
	_ = forecastCmd.MarkFlagRequired("file")
}

func runForecast(ctx context.Context, a *app, opts forecastOptions, w io.Writer) error {
	if err := checkOutput(opts.Output); err != nil {
		return err
	}
	method, err := a.forecaster.ParseMethod(opts.Method)
	if err != nil {
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

	res, err := a.forecaster.Forecast(ctx, data.Raw(), periods, method)
	if err != nil {
		return err
	}
	if res.Metrics == nil {
		a.logger.Info().Str("method", method.String()).Bool("skipped", res.BacktestSkipped).Str("reason", res.BacktestError).Msg("no backtest metrics")
	}

	if opts.HTMLPath != "" {
		if err := ensureDir(opts.HTMLPath); err != nil {
			return err
		}
		if err := forecaster.PlotFile(opts.HTMLPath, res); err != nil {
			return err
		}
		a.logger.Info().Str("path", opts.HTMLPath).Msg("wrote html chart")
	}
	if opts.PNGPath != "" {
		if err := writePNG(opts.PNGPath, res); err != nil {
			return err
		}
		a.logger.Info().Str("path", opts.PNGPath).Msg("wrote png chart")
	}
	return encode(w, opts.Output, service.NewForecastResponse(res))
}
