package timedataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDays(t *testing.T) {
	numPnts := 7
	res := GenerateDays(time.Date(1970, 1, 1, 13, 0, 0, 0, time.UTC), numPnts)
	assert.Len(t, res, numPnts)

	assert.Equal(t, time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), res[0])
	assert.Equal(t, time.Date(1970, 1, 7, 0, 0, 0, 0, time.UTC), res[numPnts-1])
}

func TestSeries(t *testing.T) {
	numPnts := 7
	s := GenerateConstY(numPnts, 1)

	res := s.Add(GenerateConstY(numPnts, 2))
	require.Equal(t, Series([]float64{3, 3, 3, 3, 3, 3, 3}), res)

	line := GenerateLineY(4, 2, 5)
	assert.Equal(t, Series([]float64{5, 7, 9, 11}), line)

	// 2024-01-01 is a Monday
	tSeries := GenerateDays(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 8)
	weekly := GenerateWeekdayY(tSeries, [7]float64{0, 1, 2, 3, 4, 5, 6})
	assert.Equal(t, Series([]float64{0, 1, 2, 3, 4, 5, 6, 0}), weekly)
}

func TestGenerateNoise(t *testing.T) {
	a := GenerateNoise(10, 1.0, 42)
	b := GenerateNoise(10, 1.0, 42)
	c := GenerateNoise(10, 1.0, 43)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, GenerateConstY(10, 0), GenerateNoise(10, 0, 42))
}

func TestToRaw(t *testing.T) {
	tSeries := GenerateDays(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 2)
	raw := ToRaw(tSeries, []float64{1, 2})
	assert.Equal(t, []RawPoint{
		{Timestamp: "2024-01-01", Value: 1.0},
		{Timestamp: "2024-01-02", Value: 2.0},
	}, raw)
}
