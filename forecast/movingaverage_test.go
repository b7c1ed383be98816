package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/muhardiansyah15/prophet-forecasting-app/timedataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovingAverageFitted(t *testing.T) {
	tSeries := timedataset.GenerateDays(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 25)
	y := timedataset.GenerateWaveY(tSeries, 10, 7, 1).
		Add(timedataset.GenerateLineY(25, 0.3, 40)).
		Add(timedataset.GenerateNoise(25, 2, 3))
	ds := mustDataset(t, tSeries, y)

	model, err := NewMovingAverage(nil)
	require.Nil(t, err)
	res, err := model.Forecast(ds, 0)
	require.Nil(t, err)

	for i, p := range res.Fitted {
		start := max(0, i-DefaultWindow+1)
		sum := 0.0
		for _, v := range y[start : i+1] {
			sum += v
		}
		assert.InDelta(t, sum/float64(i+1-start), p.Value, 1e-9, "index %d", i)
	}
}

func TestMovingAverageForecast(t *testing.T) {
	// 2024-01-01 is a Monday
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tol := 1e-9

	testData := map[string]struct {
		y              []float64
		horizon        int
		expectedFuture []float64
		width          float64
	}{
		"monday spike": {
			// mean is 1, mondays sit 6 above it and every other day 1 below
			y: []float64{
				7, 0, 0, 0, 0, 0, 0,
				7, 0, 0, 0, 0, 0, 0,
			},
			horizon:        3,
			expectedFuture: []float64{7, 0, 0},
			width:          1.96 * math.Sqrt(6),
		},
		"unobserved weekdays have no adjustment": {
			y:              []float64{3, 6, 9},
			horizon:        7,
			expectedFuture: []float64{6, 6, 6, 6, 3, 6, 9},
			width:          1.96 * math.Sqrt(6),
		},
		"single point": {
			y:              []float64{4},
			horizon:        2,
			expectedFuture: []float64{4, 4},
			width:          0,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			ds := mustDataset(t, timedataset.GenerateDays(monday, len(td.y)), td.y)
			model, err := NewMovingAverage(nil)
			require.Nil(t, err)

			res, err := model.Forecast(ds, td.horizon)
			require.Nil(t, err)

			assert.InDeltaSlice(t, td.expectedFuture, res.FutureValues(), tol)
			for _, p := range append(res.Fitted, res.Future...) {
				assert.InDelta(t, td.width, p.Upper-p.Value, tol)
				assert.InDelta(t, td.width, p.Value-p.Lower, tol)
			}
		})
	}
}

func TestMovingAverageWindow(t *testing.T) {
	ds := mustDataset(
		t,
		timedataset.GenerateDays(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 5),
		[]float64{1, 2, 3, 4, 5},
	)
	model, err := NewMovingAverage(&Options{Window: 2, Alpha: DefaultAlpha, ZScore: DefaultZScore})
	require.Nil(t, err)

	res, err := model.Forecast(ds, 0)
	require.Nil(t, err)
	assert.InDeltaSlice(t, []float64{1, 1.5, 2.5, 3.5, 4.5}, res.FittedValues(), 1e-12)
}
