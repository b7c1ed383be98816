package forecaster

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/muhardiansyah15/prophet-forecasting-app/forecast"
	"github.com/muhardiansyah15/prophet-forecasting-app/timedataset"
)

var ErrBacktestSkipped = errors.New("series too short to backtest")

// SplitIndex returns the index splitting a series of length n into training and holdout. Series
// of at most MinBacktestSize points return ErrBacktestSkipped.
func SplitIndex(n int, opt *Options) (int, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	if n <= opt.MinBacktestSize {
		return 0, fmt.Errorf("%d points with a minimum of %d, %w", n, opt.MinBacktestSize+1, ErrBacktestSkipped)
	}
	// the holdout is rounded up, with an epsilon absorbing float error in the product
	split := n - int(math.Ceil(float64(n)*opt.HoldoutFraction-1e-9))
	if split < 1 || split >= n {
		return 0, fmt.Errorf("split at %d of %d points, %w", split, n, ErrBacktestSkipped)
	}
	return split, nil
}

// Backtest refits the model on the leading share of the series, forecasts the held out tail and
// scores the forecast against the observations it did not see.
func Backtest(ctx context.Context, model forecast.Model, td *timedataset.TimeDataset, opt *Options) (*forecast.Scores, error) {
	split, err := SplitIndex(td.Len(), opt)
	if err != nil {
		return nil, err
	}

	train, err := td.Slice(0, split)
	if err != nil {
		return nil, fmt.Errorf("unable to slice training set, %w", err)
	}
	holdout, err := td.Slice(split, td.Len())
	if err != nil {
		return nil, fmt.Errorf("unable to slice holdout set, %w", err)
	}

	res, err := forecast.Run(ctx, model, train, holdout.Len())
	if err != nil {
		return nil, fmt.Errorf("unable to forecast holdout, %w", err)
	}

	scores, err := forecast.Evaluate(holdout.Y, res.FutureValues())
	if err != nil {
		return nil, fmt.Errorf("unable to score holdout, %w", err)
	}
	return scores, nil
}
