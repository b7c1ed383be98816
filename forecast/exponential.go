package forecast

import (
	"github.com/muhardiansyah15/prophet-forecasting-app/stats"
	"github.com/muhardiansyah15/prophet-forecasting-app/timedataset"
)

// ExponentialSmoothingModel applies simple exponential smoothing. The forecast is flat at the
// last smoothed level for the whole horizon.
type ExponentialSmoothingModel struct {
	opt *Options
}

func NewExponentialSmoothing(opt *Options) (*ExponentialSmoothingModel, error) {
	opt, err := resolveOptions(opt)
	if err != nil {
		return nil, err
	}
	return &ExponentialSmoothingModel{opt: opt}, nil
}

func (e *ExponentialSmoothingModel) Forecast(td *timedataset.TimeDataset, horizon int) (*Results, error) {
	if err := validateInput(td, horizon); err != nil {
		return nil, err
	}

	alpha := e.opt.Alpha
	smoothed := make([]float64, len(td.Y))
	smoothed[0] = td.Y[0]
	for i := 1; i < len(td.Y); i++ {
		smoothed[i] = alpha*td.Y[i] + (1-alpha)*smoothed[i-1]
	}

	level := smoothed[len(smoothed)-1]
	future := make([]float64, horizon)
	for k := range future {
		future[k] = level
	}

	width := e.opt.ZScore * stats.PopStdDev(td.Y)
	return newResults(td, smoothed, future, width), nil
}
