package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tol := 1e-9

	testData := map[string]struct {
		actual    []float64
		predicted []float64
		expected  *Scores
		err       error
	}{
		"perfect": {
			actual:    []float64{1, 2, 3},
			predicted: []float64{1, 2, 3},
			expected:  &Scores{},
		},
		"single miss": {
			actual:    []float64{10},
			predicted: []float64{12},
			expected:  &Scores{MAE: 2, RMSE: 2, MAPE: 20},
		},
		"zero actual divides by one": {
			actual:    []float64{0, 4},
			predicted: []float64{0.5, 2},
			expected: &Scores{
				MAE:  1.25,
				RMSE: math.Sqrt((0.25 + 4) / 2),
				MAPE: (50 + 50) / 2,
			},
		},
		"negative actual": {
			actual:    []float64{-10},
			predicted: []float64{-5},
			expected:  &Scores{MAE: 5, RMSE: 5, MAPE: 50},
		},
		"empty": {
			actual:    []float64{},
			predicted: []float64{},
			expected:  &Scores{},
		},
		"length mismatch": {
			actual:    []float64{1, 2},
			predicted: []float64{1},
			err:       ErrLengthMismatch,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := Evaluate(td.actual, td.predicted)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.InDelta(t, td.expected.MAE, res.MAE, tol)
			assert.InDelta(t, td.expected.RMSE, res.RMSE, tol)
			assert.InDelta(t, td.expected.MAPE, res.MAPE, tol)
		})
	}
}

func TestScoresNonNegative(t *testing.T) {
	actual := []float64{-3, 0, 7, 100, -0.5}
	predicted := []float64{2, -1, 7, 80, 0.5}

	res, err := Evaluate(actual, predicted)
	require.Nil(t, err)
	assert.GreaterOrEqual(t, res.MAE, 0.0)
	assert.GreaterOrEqual(t, res.RMSE, res.MAE)
	assert.GreaterOrEqual(t, res.MAPE, 0.0)
}
