// Package stats holds the descriptive statistics shared by the forecast methods
package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrInvalidWindow = errors.New("window must be at least 1")

// PopStdDev returns the population standard deviation (divides by n). A single value or an
// empty slice has a deviation of 0.
func PopStdDev(y []float64) float64 {
	if len(y) < 2 {
		return 0
	}
	_, std := stat.PopMeanStdDev(y, nil)
	if math.IsNaN(std) {
		return 0
	}
	return std
}

// TrailingMean computes the simple moving average ending at every index. Early points use a
// shrinking window of min(window, i+1) values so every output is defined.
func TrailingMean(y []float64, window int) ([]float64, error) {
	if window < 1 {
		return nil, ErrInvalidWindow
	}
	res := make([]float64, len(y))
	for i := range y {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		res[i] = stat.Mean(y[start:i+1], nil)
	}
	return res, nil
}

// WeekdayProfile tracks the mean deviation of each weekday from the overall mean
type WeekdayProfile struct {
	Adjustment [7]float64 `json:"adjustment"`
	Observed   [7]bool    `json:"observed"`
}

// NewWeekdayProfile computes mean(y on weekday) - mean(y) for every weekday index in
// 0=Monday..6=Sunday. Weekdays without any observation have an adjustment of 0.
func NewWeekdayProfile(weekdays []int, y []float64) WeekdayProfile {
	var (
		p      WeekdayProfile
		sums   [7]float64
		counts [7]int
	)
	if len(y) == 0 {
		return p
	}

	overall := floats.Sum(y) / float64(len(y))
	for i, wd := range weekdays {
		if wd < 0 || wd > 6 || i >= len(y) {
			continue
		}
		sums[wd] += y[i]
		counts[wd]++
	}
	for wd := 0; wd < 7; wd++ {
		if counts[wd] == 0 {
			continue
		}
		p.Observed[wd] = true
		p.Adjustment[wd] = sums[wd]/float64(counts[wd]) - overall
	}
	return p
}

// Get returns the adjustment of the weekday index, 0 if it was never observed
func (p WeekdayProfile) Get(weekday int) float64 {
	if weekday < 0 || weekday > 6 || !p.Observed[weekday] {
		return 0
	}
	return p.Adjustment[weekday]
}
