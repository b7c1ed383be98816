// Package cli implements the trendcast command line
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/muhardiansyah15/prophet-forecasting-app/config"
	"github.com/muhardiansyah15/prophet-forecasting-app/logging"
)

var (
	cfgFile    string
	logLevel   string
	profileArg string
	appHandle  *app
	profiler   interface{ Stop() }
)

var rootCmd = &cobra.Command{
	Use:           "trendcast",
	Short:         "Forecast daily time series",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if appHandle != nil {
			return nil
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}

		if err := startProfile(profileArg); err != nil {
			return err
		}

		logger := logging.New(cfg.Logging, os.Stderr)
		appHandle, err = newApp(cfg, logger)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
			profiler = nil
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level defined in config")
	rootCmd.PersistentFlags().StringVar(&profileArg, "profile", "", "Write a cpu or mem profile into the current directory")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

func getApp() *app {
	if appHandle == nil {
		panic("application not initialized; PersistentPreRunE not executed")
	}
	return appHandle
}

func startProfile(mode string) error {
	dir, err := filepath.Abs(".")
	if err != nil {
		return err
	}
	switch mode {
	case "":
		return nil
	case "cpu":
		profiler = profile.Start(profile.CPUProfile, profile.ProfilePath(dir), profile.NoShutdownHook, profile.Quiet)
	case "mem":
		profiler = profile.Start(profile.MemProfile, profile.ProfilePath(dir), profile.NoShutdownHook, profile.Quiet)
	default:
		return fmt.Errorf("unknown profile mode %q, expected cpu or mem", mode)
	}
	return nil
}
