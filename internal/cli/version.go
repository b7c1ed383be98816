package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muhardiansyah15/prophet-forecasting-app/internal/version"
	"github.com/muhardiansyah15/prophet-forecasting-app/service"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	// version needs no configuration
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "version: %s\ncommit: %s\nbuilt: %s\napi: %s\n", version.Version, version.Commit, version.BuildDate, service.Version)
	},
}
