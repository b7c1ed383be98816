// Package config loads the trendcast configuration from a YAML file, the environment and defaults
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	forecaster "github.com/muhardiansyah15/prophet-forecasting-app"
	"github.com/muhardiansyah15/prophet-forecasting-app/forecast"
	"github.com/muhardiansyah15/prophet-forecasting-app/logging"
	"github.com/muhardiansyah15/prophet-forecasting-app/prophet"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TRENDCAST_SERVER_ADDR
const EnvPrefix = "TRENDCAST"

var ErrInvalidConfig = errors.New("invalid config")

// Config materialises application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Logging  logging.Config `mapstructure:"logging"`
	Server   ServerConfig   `mapstructure:"server"`
	Forecast ForecastConfig `mapstructure:"forecast"`
	Prophet  prophet.Config `mapstructure:"prophet"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig governs the HTTP API.
type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	RateLimit      float64       `mapstructure:"rate_limit"`
	RateBurst      int           `mapstructure:"rate_burst"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
	CORSOrigins    []string      `mapstructure:"cors_origins"`
}

// ForecastConfig tunes the forecasting methods and the backtest.
type ForecastConfig struct {
	DefaultMethod        forecast.Method `mapstructure:"default_method"`
	DefaultPeriods       int             `mapstructure:"default_periods"`
	MaxPeriods           int             `mapstructure:"max_periods"`
	Window               int             `mapstructure:"window"`
	Alpha                float64         `mapstructure:"alpha"`
	ZScore               float64         `mapstructure:"z_score"`
	HoldoutFraction      float64         `mapstructure:"holdout_fraction"`
	MinBacktestSize      int             `mapstructure:"min_backtest_size"`
	LegacyMethodFallback bool            `mapstructure:"legacy_method_fallback"`
	CompareParallelism   int             `mapstructure:"compare_parallelism"`
}

// DefaultCORSOrigins are the browser origins allowed to call the API out of the box
var DefaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"https://muhardiansyah15.github.io",
	"https://*.onrender.com",
	"https://*.vercel.app",
	"https://*.netlify.app",
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("trendcast")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "trendcast")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("server.addr", ":8001")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.request_timeout", "20s")
	v.SetDefault("server.rate_limit", 50.0)
	v.SetDefault("server.rate_burst", 100)
	v.SetDefault("server.max_upload_bytes", int64(10<<20))
	v.SetDefault("server.cors_origins", DefaultCORSOrigins)

	v.SetDefault("forecast.default_method", forecast.LinearTrend.String())
	v.SetDefault("forecast.default_periods", 30)
	v.SetDefault("forecast.max_periods", 3650)
	v.SetDefault("forecast.window", forecast.DefaultWindow)
	v.SetDefault("forecast.alpha", forecast.DefaultAlpha)
	v.SetDefault("forecast.z_score", forecast.DefaultZScore)
	v.SetDefault("forecast.holdout_fraction", forecaster.DefaultHoldoutFraction)
	v.SetDefault("forecast.min_backtest_size", forecaster.DefaultMinBacktestSize)
	v.SetDefault("forecast.legacy_method_fallback", false)
	v.SetDefault("forecast.compare_parallelism", forecaster.DefaultCompareParallelism)

	p := prophet.NewDefaultConfig()
	v.SetDefault("prophet.enabled", false)
	v.SetDefault("prophet.python", p.Python)
	v.SetDefault("prophet.timeout", p.Timeout.String())
	v.SetDefault("prophet.country_holidays", "")
	v.SetDefault("prophet.yearly_seasonality", p.YearlySeasonality)
	v.SetDefault("prophet.weekly_seasonality", p.WeeklySeasonality)
	v.SetDefault("prophet.daily_seasonality", p.DailySeasonality)
	v.SetDefault("prophet.changepoint_prior_scale", p.ChangepointPriorScale)
	v.SetDefault("prophet.seasonality_prior_scale", p.SeasonalityPriorScale)
	v.SetDefault("prophet.holidays_prior_scale", p.HolidaysPriorScale)
	v.SetDefault("prophet.interval_width", p.IntervalWidth)
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must be set, %w", ErrInvalidConfig)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server.request_timeout must be greater than zero, %w", ErrInvalidConfig)
	}
	if c.Server.RateLimit <= 0 || c.Server.RateBurst <= 0 {
		return fmt.Errorf("server.rate_limit and server.rate_burst must be greater than zero, %w", ErrInvalidConfig)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be greater than zero, %w", ErrInvalidConfig)
	}
	if c.Forecast.DefaultPeriods < 0 || c.Forecast.MaxPeriods < c.Forecast.DefaultPeriods {
		return fmt.Errorf("forecast.default_periods must be within [0, forecast.max_periods], %w", ErrInvalidConfig)
	}
	if err := c.ForecasterOptions(nil).Validate(); err != nil {
		return fmt.Errorf("forecast: %w, %w", err, ErrInvalidConfig)
	}
	if c.Prophet.Enabled {
		if err := c.Prophet.Validate(); err != nil {
			return fmt.Errorf("prophet: %w, %w", err, ErrInvalidConfig)
		}
	}
	return nil
}

// ForecasterOptions converts the forecast section into pipeline options with the given plugins
func (c *Config) ForecasterOptions(plugins map[forecast.Method]forecast.Model) *forecaster.Options {
	return &forecaster.Options{
		ForecastOptions: &forecast.Options{
			Window: c.Forecast.Window,
			Alpha:  c.Forecast.Alpha,
			ZScore: c.Forecast.ZScore,
		},
		DefaultMethod:        c.Forecast.DefaultMethod,
		HoldoutFraction:      c.Forecast.HoldoutFraction,
		MinBacktestSize:      c.Forecast.MinBacktestSize,
		LegacyMethodFallback: c.Forecast.LegacyMethodFallback,
		CompareParallelism:   c.Forecast.CompareParallelism,
		Plugins:              plugins,
	}
}
