package forecast

import (
	"fmt"

	"github.com/muhardiansyah15/prophet-forecasting-app/stats"
	"github.com/muhardiansyah15/prophet-forecasting-app/timedataset"
)

// MovingAverageModel fits a trailing simple moving average. Future points hold the final window
// average shifted by the day-of-week deviation observed in the raw history.
type MovingAverageModel struct {
	opt *Options
}

func NewMovingAverage(opt *Options) (*MovingAverageModel, error) {
	opt, err := resolveOptions(opt)
	if err != nil {
		return nil, err
	}
	return &MovingAverageModel{opt: opt}, nil
}

func (m *MovingAverageModel) Forecast(td *timedataset.TimeDataset, horizon int) (*Results, error) {
	if err := validateInput(td, horizon); err != nil {
		return nil, err
	}

	fitted, err := stats.TrailingMean(td.Y, m.opt.Window)
	if err != nil {
		return nil, fmt.Errorf("unable to compute moving average, %w", err)
	}

	weekdays := make([]int, 0, len(td.T))
	for _, t := range td.T {
		weekdays = append(weekdays, timedataset.WeekdayIndex(t))
	}
	profile := stats.NewWeekdayProfile(weekdays, td.Y)

	base := fitted[len(fitted)-1]
	futureTimes := timedataset.TimeSlice(td.T).NextDays(horizon)
	future := make([]float64, 0, horizon)
	for _, t := range futureTimes {
		future = append(future, base+profile.Get(timedataset.WeekdayIndex(t)))
	}

	width := m.opt.ZScore * stats.PopStdDev(td.Y)
	return newResults(td, fitted, future, width), nil
}
