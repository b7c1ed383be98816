package forecast

import (
	"errors"
	"fmt"
	"math"
)

var ErrLengthMismatch = errors.New("predicted and actual have different lengths")

// Scores tracks the accuracy of predictions against held out observations
type Scores struct {
	MAE  float64 `json:"mae" yaml:"mae"`
	RMSE float64 `json:"rmse" yaml:"rmse"`
	MAPE float64 `json:"mape" yaml:"mape"`
}

// Evaluate computes the mean absolute error, root mean squared error and mean absolute percent
// error. Empty inputs score 0 on every metric.
func Evaluate(actual, predicted []float64) (*Scores, error) {
	mae, err := MAE(actual, predicted)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean absolute error, %w", err)
	}
	rmse, err := RMSE(actual, predicted)
	if err != nil {
		return nil, fmt.Errorf("unable to compute root mean squared error, %w", err)
	}
	mape, err := MAPE(actual, predicted)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean absolute percent error, %w", err)
	}
	return &Scores{
		MAE:  mae,
		RMSE: rmse,
		MAPE: mape,
	}, nil
}

func checkLen(actual, predicted []float64) error {
	if len(predicted) != len(actual) {
		return fmt.Errorf("expected %d, but got %d, %w", len(actual), len(predicted), ErrLengthMismatch)
	}
	return nil
}

// MAE computes mean(|actual - predicted|)
func MAE(actual, predicted []float64) (float64, error) {
	if err := checkLen(actual, predicted); err != nil {
		return 0, err
	}
	if len(actual) == 0 {
		return 0, nil
	}

	mae := 0.0
	for i := range actual {
		mae += math.Abs(actual[i] - predicted[i])
	}
	return mae / float64(len(actual)), nil
}

// RMSE computes sqrt(mean((actual - predicted)^2))
func RMSE(actual, predicted []float64) (float64, error) {
	if err := checkLen(actual, predicted); err != nil {
		return 0, err
	}
	if len(actual) == 0 {
		return 0, nil
	}

	mse := 0.0
	for i := range actual {
		d := actual[i] - predicted[i]
		mse += d * d
	}
	return math.Sqrt(mse / float64(len(actual))), nil
}

// MAPE computes mean(|actual - predicted| / |actual|) as a percentage. A zero actual value is
// divided by 1 instead so the error stays finite.
func MAPE(actual, predicted []float64) (float64, error) {
	if err := checkLen(actual, predicted); err != nil {
		return 0, err
	}
	if len(actual) == 0 {
		return 0, nil
	}

	mape := 0.0
	for i := range actual {
		denom := actual[i]
		if denom == 0 {
			denom = 1
		}
		mape += math.Abs((actual[i] - predicted[i]) / denom)
	}
	return mape / float64(len(actual)) * 100, nil
}
