package forecaster

import (
	"errors"
	"fmt"

	"github.com/muhardiansyah15/prophet-forecasting-app/forecast"
)

var ErrInvalidOptions = errors.New("invalid forecaster options")

const (
	DefaultHoldoutFraction    = 0.2
	DefaultMinBacktestSize    = 10
	DefaultCompareParallelism = 4
)

// Options configures the forecast pipeline and the methods it serves
type Options struct {
	ForecastOptions *forecast.Options `json:"forecast_options"`

	// DefaultMethod is used when a caller does not name a method
	DefaultMethod forecast.Method `json:"default_method"`

	// HoldoutFraction is the trailing share of the history held out when backtesting
	HoldoutFraction float64 `json:"holdout_fraction"`

	// MinBacktestSize is the largest series length that skips the backtest
	MinBacktestSize int `json:"min_backtest_size"`

	// LegacyMethodFallback maps unrecognized method names onto the linear trend instead of
	// rejecting them
	LegacyMethodFallback bool `json:"legacy_method_fallback"`

	CompareParallelism int `json:"compare_parallelism"`

	// Plugins registers additional models, such as externally backed ones, by method
	Plugins map[forecast.Method]forecast.Model `json:"-"`
}

func NewDefaultOptions() *Options {
	return &Options{
		ForecastOptions:    forecast.NewDefaultOptions(),
		DefaultMethod:      forecast.LinearTrend,
		HoldoutFraction:    DefaultHoldoutFraction,
		MinBacktestSize:    DefaultMinBacktestSize,
		CompareParallelism: DefaultCompareParallelism,
	}
}

func (o *Options) Validate() error {
	if o.HoldoutFraction <= 0 || o.HoldoutFraction >= 1 {
		return fmt.Errorf("holdout fraction of %f, %w", o.HoldoutFraction, ErrInvalidOptions)
	}
	if o.MinBacktestSize < 1 {
		return fmt.Errorf("minimum backtest size of %d, %w", o.MinBacktestSize, ErrInvalidOptions)
	}
	if o.CompareParallelism < 1 {
		return fmt.Errorf("compare parallelism of %d, %w", o.CompareParallelism, ErrInvalidOptions)
	}
	if !o.DefaultMethod.Valid() {
		return fmt.Errorf("default method %s, %w", o.DefaultMethod, ErrInvalidOptions)
	}
	if o.ForecastOptions != nil {
		if err := o.ForecastOptions.Validate(); err != nil {
			return err
		}
	}
	for method, model := range o.Plugins {
		if model == nil {
			return fmt.Errorf("nil model for %s, %w", method, ErrInvalidOptions)
		}
	}
	return nil
}
