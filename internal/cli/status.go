package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/muhardiansyah15/prophet-forecasting-app/forecast"
	"github.com/muhardiansyah15/prophet-forecasting-app/prophet"
	"github.com/muhardiansyah15/prophet-forecasting-app/service"
)

var statusOutput string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether the prophet toolchain is usable",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp()
		return runStatus(cmd.Context(), a, a.probe, statusOutput, cmd.OutOrStdout())
	},
}

func init() {
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "json", "Output format: json or yaml")
}

func runStatus(ctx context.Context, a *app, probe func(context.Context) prophet.Diagnostics, output string, w io.Writer) error {
	if err := checkOutput(output); err != nil {
		return err
	}
	return encode(w, output, service.ProphetStatus{
		Enabled:     a.cfg.Prophet.Enabled,
		Registered:  a.forecaster.Available(forecast.Prophet),
		Diagnostics: probe(ctx),
	})
}
