package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/muhardiansyah15/prophet-forecasting-app/timedataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExponentialSmoothingForecast(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	testData := map[string]struct {
		y              []float64
		opt            *Options
		horizon        int
		expectedFitted []float64
	}{
		"default alpha": {
			y:              []float64{10, 20, 30},
			horizon:        4,
			expectedFitted: []float64{10, 13, 18.1},
		},
		"alpha of one tracks the series": {
			y:              []float64{4, 8, 2},
			opt:            &Options{Window: 7, Alpha: 1, ZScore: 1.96},
			horizon:        2,
			expectedFitted: []float64{4, 8, 2},
		},
		"single point": {
			y:              []float64{9},
			horizon:        3,
			expectedFitted: []float64{9},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			ds := mustDataset(t, timedataset.GenerateDays(start, len(td.y)), td.y)
			model, err := NewExponentialSmoothing(td.opt)
			require.Nil(t, err)

			res, err := model.Forecast(ds, td.horizon)
			require.Nil(t, err)
			assert.InDeltaSlice(t, td.expectedFitted, res.FittedValues(), 1e-9)

			level := res.Fitted[len(res.Fitted)-1].Value
			for _, p := range res.Future {
				assert.Equal(t, math.Float64bits(level), math.Float64bits(p.Value))
			}
		})
	}
}

func TestExponentialSmoothingFlatForecast(t *testing.T) {
	tSeries := timedataset.GenerateDays(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 60)
	y := timedataset.GenerateLineY(60, 1.2, 3).Add(timedataset.GenerateNoise(60, 5, 99))
	ds := mustDataset(t, tSeries, y)

	model, err := NewExponentialSmoothing(nil)
	require.Nil(t, err)
	res, err := model.Forecast(ds, 90)
	require.Nil(t, err)

	first := res.Future[0]
	for _, p := range res.Future[1:] {
		assert.Equal(t, math.Float64bits(first.Value), math.Float64bits(p.Value))
		assert.Equal(t, math.Float64bits(first.Lower), math.Float64bits(p.Lower))
		assert.Equal(t, math.Float64bits(first.Upper), math.Float64bits(p.Upper))
	}
}
