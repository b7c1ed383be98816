package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/muhardiansyah15/prophet-forecasting-app/service"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the forecasting API",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp()
		if serveAddr != "" {
			a.cfg.Server.Addr = serveAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a.logger.Info().
			Str("env", a.cfg.App.Environment).
			Bool("prophet", a.cfg.Prophet.Enabled).
			Msg("starting api")
		return service.New(a.cfg, a.forecaster, a.logger).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (defaults to config)")
}
