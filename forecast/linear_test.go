package forecast

import (
	"testing"
	"time"

	"github.com/muhardiansyah15/prophet-forecasting-app/timedataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearTrendForecast(t *testing.T) {
	start := time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC)
	tol := 1e-9

	testData := map[string]struct {
		y              []float64
		horizon        int
		expectedFitted []float64
		expectedFuture []float64
		width          float64
	}{
		"single point is flat": {
			y:              []float64{5},
			horizon:        3,
			expectedFitted: []float64{5},
			expectedFuture: []float64{5, 5, 5},
			width:          0,
		},
		"exact line continues": {
			y:              timedataset.GenerateLineY(20, 2, 5),
			horizon:        4,
			expectedFitted: timedataset.GenerateLineY(20, 2, 5),
			expectedFuture: []float64{45, 47, 49, 51},
			width:          0,
		},
		"symmetric residuals": {
			// y = x with residuals +1, -1, -1, +1 giving a residual deviation of 1
			y:              []float64{1, 0, 1, 4},
			horizon:        2,
			expectedFitted: []float64{0, 1, 2, 3},
			expectedFuture: []float64{4, 5},
			width:          1.96,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			ds := mustDataset(t, timedataset.GenerateDays(start, len(td.y)), td.y)
			model, err := NewLinearTrend(nil)
			require.Nil(t, err)

			res, err := model.Forecast(ds, td.horizon)
			require.Nil(t, err)

			assert.InDeltaSlice(t, td.expectedFitted, res.FittedValues(), tol)
			assert.InDeltaSlice(t, td.expectedFuture, res.FutureValues(), tol)
			for _, p := range append(res.Fitted, res.Future...) {
				assert.InDelta(t, td.width, p.Upper-p.Value, tol)
				assert.InDelta(t, td.width, p.Value-p.Lower, tol)
			}
		})
	}
}

func TestLinearTrendZScore(t *testing.T) {
	ds := mustDataset(
		t,
		timedataset.GenerateDays(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 4),
		[]float64{1, 0, 1, 4},
	)
	model, err := NewLinearTrend(&Options{Window: 7, Alpha: 0.3, ZScore: 3})
	require.Nil(t, err)

	res, err := model.Forecast(ds, 1)
	require.Nil(t, err)
	assert.InDelta(t, 1.0, res.Future[0].Lower, 1e-9)
	assert.InDelta(t, 7.0, res.Future[0].Upper, 1e-9)
}
