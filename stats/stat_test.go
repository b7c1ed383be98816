package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopStdDev(t *testing.T) {
	testData := map[string]struct {
		y        []float64
		expected float64
	}{
		"empty":    {y: nil, expected: 0},
		"single":   {y: []float64{4}, expected: 0},
		"constant": {y: []float64{3, 3, 3}, expected: 0},
		"textbook": {y: []float64{2, 4, 4, 4, 5, 5, 7, 9}, expected: 2},
		"pair":     {y: []float64{1, 3}, expected: 1},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, td.expected, PopStdDev(td.y), 1e-12)
		})
	}
}

func TestTrailingMean(t *testing.T) {
	testData := map[string]struct {
		y        []float64
		window   int
		expected []float64
		err      error
	}{
		"invalid window": {
			y:      []float64{1},
			window: 0,
			err:    ErrInvalidWindow,
		},
		"empty": {
			y:        []float64{},
			window:   3,
			expected: []float64{},
		},
		"shrinking head": {
			y:        []float64{1, 2, 3, 4, 5},
			window:   3,
			expected: []float64{1, 1.5, 2, 3, 4},
		},
		"window larger than series": {
			y:        []float64{2, 4},
			window:   7,
			expected: []float64{2, 3},
		},
		"window of one": {
			y:        []float64{5, 1, 9},
			window:   1,
			expected: []float64{5, 1, 9},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := TrailingMean(td.y, td.window)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.InDeltaSlice(t, td.expected, res, 1e-12)
		})
	}
}

func TestWeekdayProfile(t *testing.T) {
	// mean is 3, monday mean is 2, tuesday mean is 5
	weekdays := []int{0, 1, 0}
	y := []float64{1, 5, 3}
	p := NewWeekdayProfile(weekdays, y)

	assert.InDelta(t, -1.0, p.Get(0), 1e-12)
	assert.InDelta(t, 2.0, p.Get(1), 1e-12)
	for wd := 2; wd < 7; wd++ {
		assert.Equal(t, 0.0, p.Get(wd), "weekday %d", wd)
		assert.False(t, p.Observed[wd])
	}
	assert.Equal(t, 0.0, p.Get(-1))
	assert.Equal(t, 0.0, p.Get(7))

	empty := NewWeekdayProfile(nil, nil)
	assert.Equal(t, WeekdayProfile{}, empty)
	assert.False(t, math.IsNaN(empty.Get(0)))
}
