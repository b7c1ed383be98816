package forecast

import (
	"fmt"

	"github.com/muhardiansyah15/prophet-forecasting-app/models"
	"github.com/muhardiansyah15/prophet-forecasting-app/stats"
	"github.com/muhardiansyah15/prophet-forecasting-app/timedataset"
)

// LinearTrendModel regresses the series on its integer index and extrapolates the line. The
// band is a constant multiple of the residual standard deviation.
type LinearTrendModel struct {
	opt *Options
}

func NewLinearTrend(opt *Options) (*LinearTrendModel, error) {
	opt, err := resolveOptions(opt)
	if err != nil {
		return nil, err
	}
	return &LinearTrendModel{opt: opt}, nil
}

func (l *LinearTrendModel) Forecast(td *timedataset.TimeDataset, horizon int) (*Results, error) {
	if err := validateInput(td, horizon); err != nil {
		return nil, err
	}
	fitted, future, err := indexTrend(td.Y, horizon)
	if err != nil {
		return nil, fmt.Errorf("unable to fit linear trend, %w", err)
	}

	residuals := make([]float64, len(td.Y))
	for i, y := range td.Y {
		residuals[i] = y - fitted[i]
	}

	width := l.opt.ZScore * stats.PopStdDev(residuals)
	return newResults(td, fitted, future, width), nil
}

// indexTrend returns the fitted line over y and its extension over the horizon. A single
// observation is a flat line through that value.
func indexTrend(y []float64, horizon int) (fitted, future []float64, err error) {
	if len(y) == 1 {
		future = make([]float64, horizon)
		for i := range future {
			future[i] = y[0]
		}
		return []float64{y[0]}, future, nil
	}

	trend, err := models.FitIndexTrend(y)
	if err != nil {
		return nil, nil, err
	}
	if fitted, err = trend.Fitted(); err != nil {
		return nil, nil, err
	}
	if future, err = trend.Extrapolate(horizon); err != nil {
		return nil, nil, err
	}
	return fitted, future, nil
}
