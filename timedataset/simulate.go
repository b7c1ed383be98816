package timedataset

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/floats"
)

// GenerateDays returns n consecutive calendar days starting at start
func GenerateDays(start time.Time, n int) []time.Time {
	t := make([]time.Time, 0, n)
	year, month, day := start.Date()
	ct := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		t = append(t, ct.AddDate(0, 0, i))
	}
	return t
}

type Series []float64

func (s Series) Add(src Series) Series {
	floats.Add(s, src)
	return s
}

func GenerateConstY(n int, val float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, val)
	}
	return Series(y)
}

// GenerateLineY generates slope*i + intercept for i in [0, n)
func GenerateLineY(n int, slope, intercept float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, slope*float64(i)+intercept)
	}
	return Series(y)
}

// GenerateWeekdayY adds a fixed offset per weekday (0=Monday..6=Sunday)
func GenerateWeekdayY(t []time.Time, offsets [7]float64) Series {
	y := make([]float64, 0, len(t))
	for _, ct := range t {
		y = append(y, offsets[WeekdayIndex(ct)])
	}
	return Series(y)
}

func GenerateWaveY(t []time.Time, amp, periodDays, order float64) Series {
	n := len(t)
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		days := float64(t[i].Unix()) / 86400.0
		val := amp * math.Sin(2.0*math.Pi*order/periodDays*days)
		y = append(y, val)
	}
	return Series(y)
}

// GenerateNoise generates normally distributed noise from a seeded source so results are
// reproducible across runs.
func GenerateNoise(n int, scale float64, seed uint64) Series {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, r.NormFloat64()*scale)
	}
	return Series(y)
}

// ToRaw formats a time and value slice as raw points the way a caller would supply them
func ToRaw(t []time.Time, y []float64) []RawPoint {
	raw := make([]RawPoint, 0, len(t))
	for i := range t {
		raw = append(raw, RawPoint{Timestamp: t[i].Format(DateLayout), Value: y[i]})
	}
	return raw
}
