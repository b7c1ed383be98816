package forecaster

import (
	"github.com/muhardiansyah15/prophet-forecasting-app/forecast"
	"github.com/muhardiansyah15/prophet-forecasting-app/timedataset"
)

// Results combines the normalized history, the model output and the backtest scores. Metrics is
// nil whenever the backtest was skipped or failed, with the reason in BacktestError.
type Results struct {
	Method        forecast.Method          `json:"method"`
	Historical    *timedataset.TimeDataset `json:"-"`
	Fitted        []forecast.Point         `json:"fitted"`
	Future        []forecast.Point         `json:"forecast"`
	Metrics       *forecast.Scores         `json:"metrics"`
	BacktestError string                   `json:"backtest_error,omitempty"`

	// BacktestSkipped is set when the series was too short to hold out any observations
	BacktestSkipped bool `json:"backtest_skipped"`
}

// Comparison is the outcome of one method when forecasting the same series with every method
type Comparison struct {
	Method  forecast.Method `json:"method"`
	Results *Results        `json:"results,omitempty"`
	Err     error           `json:"-"`
}
