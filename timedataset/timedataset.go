package timedataset

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrEmptySeries        = errors.New("no valid points in series")
	ErrNonMonotonic       = errors.New("time feature is not strictly increasing")
	ErrDatasetLenMismatch = errors.New("time feature has a different length than observations")
	ErrSliceOutOfRange    = errors.New("slice bounds out of range for dataset")
)

// TimeDataset represents a normalized daily time series storing a slice of time points and values.
// Both must be of the same length and the times must be strictly increasing.
type TimeDataset struct {
	T []time.Time
	Y []float64
}

// NewUnivariateDataset returns an instance of a TimeDataset given a time and value slice. The
// inputs are copied so the caller may reuse them.
func NewUnivariateDataset(t []time.Time, y []float64) (*TimeDataset, error) {
	if len(y) == 0 {
		return nil, ErrEmptySeries
	}
	if len(t) != len(y) {
		return nil, fmt.Errorf(
			"time feature has length of %d, but values has a length of %d, %w",
			len(t), len(y), ErrDatasetLenMismatch,
		)
	}

	for i := 1; i < len(t); i++ {
		if !t[i].After(t[i-1]) {
			return nil, fmt.Errorf("non-monotonic at %d, %w", i, ErrNonMonotonic)
		}
	}

	tSeries := make([]time.Time, len(t))
	ySeries := make([]float64, len(t))
	copy(tSeries, t)
	copy(ySeries, y)
	td := &TimeDataset{
		T: tSeries,
		Y: ySeries,
	}

	return td, nil
}

// Len returns the number of points in the dataset
func (td *TimeDataset) Len() int {
	if td == nil {
		return 0
	}
	return len(td.Y)
}

func (td *TimeDataset) Copy() *TimeDataset {
	tSeries := make([]time.Time, len(td.T))
	ySeries := make([]float64, len(td.T))
	copy(tSeries, td.T)
	copy(ySeries, td.Y)
	return &TimeDataset{
		T: tSeries,
		Y: ySeries,
	}
}

// Slice returns a copy of the points in the half open index range [start, end).
func (td *TimeDataset) Slice(start, end int) (*TimeDataset, error) {
	if start < 0 || end > td.Len() || start >= end {
		return nil, fmt.Errorf("range [%d, %d) with length %d, %w", start, end, td.Len(), ErrSliceOutOfRange)
	}
	return NewUnivariateDataset(td.T[start:end], td.Y[start:end])
}
