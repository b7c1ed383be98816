package forecast

import (
	"context"
	"testing"
	"time"

	"github.com/muhardiansyah15/prophet-forecasting-app/timedataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDataset(t *testing.T, tSeries []time.Time, y []float64) *timedataset.TimeDataset {
	t.Helper()
	td, err := timedataset.NewUnivariateDataset(tSeries, y)
	require.Nil(t, err)
	return td
}

func builtinModels(t *testing.T) map[Method]Model {
	t.Helper()
	res := make(map[Method]Model)
	for _, m := range BuiltinMethods() {
		model, err := NewModel(m, nil)
		require.Nil(t, err)
		res[m] = model
	}
	return res
}

func TestForecastContract(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	testData := map[string]struct {
		n       int
		horizon int
	}{
		"single point":   {n: 1, horizon: 5},
		"zero horizon":   {n: 12, horizon: 0},
		"short series":   {n: 3, horizon: 10},
		"month of data":  {n: 30, horizon: 30},
		"long horizon":   {n: 90, horizon: 365},
		"exactly window": {n: 7, horizon: 7},
	}

	for name, td := range testData {
		tSeries := timedataset.GenerateDays(start, td.n)
		y := timedataset.GenerateLineY(td.n, 0.5, 20).
			Add(timedataset.GenerateWeekdayY(tSeries, [7]float64{3, 1, 0, 0, -1, -4, -2})).
			Add(timedataset.GenerateNoise(td.n, 1.5, uint64(td.n)))
		ds := mustDataset(t, tSeries, y)

		for method, model := range builtinModels(t) {
			t.Run(name+"/"+method.String(), func(t *testing.T) {
				res, err := model.Forecast(ds, td.horizon)
				require.Nil(t, err)

				require.Len(t, res.Fitted, td.n)
				require.Len(t, res.Future, td.horizon)

				for i, p := range res.Fitted {
					assert.Equal(t, tSeries[i], p.Time)
					assert.LessOrEqual(t, p.Lower, p.Value)
					assert.LessOrEqual(t, p.Value, p.Upper)
				}
				last := tSeries[len(tSeries)-1]
				for k, p := range res.Future {
					assert.Equal(t, last.AddDate(0, 0, k+1), p.Time)
					assert.LessOrEqual(t, p.Lower, p.Value)
					assert.LessOrEqual(t, p.Value, p.Upper)
				}
			})
		}
	}
}

func TestForecastDoesNotMutateInput(t *testing.T) {
	tSeries := timedataset.GenerateDays(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), 15)
	y := timedataset.GenerateNoise(15, 4, 11).Add(timedataset.GenerateConstY(15, 50))
	ds := mustDataset(t, tSeries, y)
	orig := ds.Copy()

	for method, model := range builtinModels(t) {
		t.Run(method.String(), func(t *testing.T) {
			first, err := model.Forecast(ds, 10)
			require.Nil(t, err)
			second, err := model.Forecast(ds, 10)
			require.Nil(t, err)

			assert.Equal(t, orig, ds)
			assert.Equal(t, first, second)
		})
	}
}

func TestForecastInvalidInput(t *testing.T) {
	ds := mustDataset(
		t,
		timedataset.GenerateDays(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 3),
		[]float64{1, 2, 3},
	)

	testData := map[string]struct {
		td      *timedataset.TimeDataset
		horizon int
		err     error
	}{
		"nil dataset": {
			td:      nil,
			horizon: 3,
			err:     ErrEmptySeries,
		},
		"empty dataset": {
			td:      &timedataset.TimeDataset{},
			horizon: 3,
			err:     ErrEmptySeries,
		},
		"negative horizon": {
			td:      ds,
			horizon: -1,
			err:     ErrInvalidHorizon,
		},
		"mismatched lengths": {
			td: &timedataset.TimeDataset{
				T: ds.T,
				Y: []float64{1},
			},
			horizon: 3,
			err:     timedataset.ErrDatasetLenMismatch,
		},
	}

	for name, td := range testData {
		for method, model := range builtinModels(t) {
			t.Run(name+"/"+method.String(), func(t *testing.T) {
				res, err := model.Forecast(td.td, td.horizon)
				assert.Nil(t, res)
				assert.ErrorIs(t, err, td.err)
			})
		}
	}
}

func TestNewModel(t *testing.T) {
	testData := map[string]struct {
		method   Method
		opt      *Options
		expected Model
		err      error
	}{
		"linear trend": {
			method:   LinearTrend,
			expected: &LinearTrendModel{opt: NewDefaultOptions()},
		},
		"moving average with options": {
			method:   MovingAverage,
			opt:      &Options{Window: 3, Alpha: 0.5, ZScore: 1},
			expected: &MovingAverageModel{opt: &Options{Window: 3, Alpha: 0.5, ZScore: 1}},
		},
		"exponential smoothing": {
			method:   ExponentialSmoothing,
			expected: &ExponentialSmoothingModel{opt: NewDefaultOptions()},
		},
		"plugin method": {
			method: Prophet,
			err:    ErrUnknownMethod,
		},
		"out of range": {
			method: Method(42),
			err:    ErrUnknownMethod,
		},
		"invalid options": {
			method: LinearTrend,
			opt:    &Options{Window: 0, Alpha: 0.3},
			err:    ErrInvalidOptions,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := NewModel(td.method, td.opt)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, res)
		})
	}
}

func TestResultsValues(t *testing.T) {
	var nilRes *Results
	assert.Nil(t, nilRes.FutureValues())
	assert.Nil(t, nilRes.FittedValues())

	res := &Results{
		Fitted: []Point{{Value: 1}, {Value: 2}},
		Future: []Point{{Value: 3}},
	}
	assert.Equal(t, []float64{1, 2}, res.FittedValues())
	assert.Equal(t, []float64{3}, res.FutureValues())
}

// ctxModel records whether it was handed the caller's context
type ctxModel struct {
	Model
	gotCtx *bool
}

func (m ctxModel) ForecastContext(ctx context.Context, td *timedataset.TimeDataset, horizon int) (*Results, error) {
	*m.gotCtx = true
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.Forecast(td, horizon)
}

func TestRun(t *testing.T) {
	td := mustDataset(t, timedataset.GenerateDays(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 5), []float64{1, 2, 3, 4, 5})
	linear, err := NewModel(LinearTrend, nil)
	require.Nil(t, err)

	res, err := Run(context.Background(), linear, td, 2)
	require.Nil(t, err)
	assert.Len(t, res.Future, 2)

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(canceled, linear, td, 2)
	assert.ErrorIs(t, err, context.Canceled)

	var gotCtx bool
	m := ctxModel{Model: linear, gotCtx: &gotCtx}
	res, err = Run(context.Background(), m, td, 2)
	require.Nil(t, err)
	assert.True(t, gotCtx)
	assert.Len(t, res.Future, 2)

	gotCtx = false
	_, err = Run(canceled, m, td, 2)
	assert.True(t, gotCtx)
	assert.ErrorIs(t, err, context.Canceled)
}
