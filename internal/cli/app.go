package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	forecaster "github.com/muhardiansyah15/prophet-forecasting-app"
	"github.com/muhardiansyah15/prophet-forecasting-app/config"
	"github.com/muhardiansyah15/prophet-forecasting-app/forecast"
	"github.com/muhardiansyah15/prophet-forecasting-app/ingest"
	"github.com/muhardiansyah15/prophet-forecasting-app/prophet"
)

var ErrUnknownOutput = errors.New("unknown output format")

// app wires configuration, logging and the forecaster for the commands
type app struct {
	cfg        *config.Config
	logger     zerolog.Logger
	forecaster *forecaster.Forecaster
}

// newApp builds the forecaster, registering prophet when it is enabled in the configuration
func newApp(cfg *config.Config, logger zerolog.Logger) (*app, error) {
	plugins := make(map[forecast.Method]forecast.Model)
	if cfg.Prophet.Enabled {
		m, err := prophet.New(&cfg.Prophet)
		if err != nil {
			return nil, fmt.Errorf("unable to initialize prophet, %w", err)
		}
		plugins[forecast.Prophet] = m
	}

	fc, err := forecaster.New(cfg.ForecasterOptions(plugins))
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, forecaster: fc}, nil
}

// load reads the observations of a JSON, CSV or Excel file. Rows that fail validation are logged
// and left out.
func (a *app) load(path string) (*ingest.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res, err := ingest.ReadFile(path, f)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s, %w", path, err)
	}
	for _, row := range res.Skipped {
		a.logger.Warn().Str("file", path).Int("row", row.Row).Str("reason", row.Reason).Msg("skipped invalid row")
	}
	a.logger.Debug().Str("file", path).Int("points", len(res.Points)).Msg("loaded series")
	return res, nil
}

// periods resolves the horizon, using the configured default when the flag was not set
func (a *app) periods(set bool, periods int) (int, error) {
	if !set {
		return a.cfg.Forecast.DefaultPeriods, nil
	}
	if periods < 0 || periods > a.cfg.Forecast.MaxPeriods {
		return 0, fmt.Errorf("periods must be within [0, %d], got %d, %w", a.cfg.Forecast.MaxPeriods, periods, forecast.ErrInvalidHorizon)
	}
	return periods, nil
}

func (a *app) probe(ctx context.Context) prophet.Diagnostics {
	return prophet.Probe(ctx, &a.cfg.Prophet)
}

func checkOutput(format string) error {
	switch strings.ToLower(format) {
	case "json", "yaml", "yml":
		return nil
	}
	return fmt.Errorf("%q, %w", format, ErrUnknownOutput)
}

// encode writes v as indented JSON or YAML
func encode(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%q, %w", format, ErrUnknownOutput)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
