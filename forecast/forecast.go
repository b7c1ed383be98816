// Package forecast holds the univariate forecast methods and the accuracy metrics used to score
// them. Every method consumes a normalized daily series and a horizon and returns fitted values
// over the history plus predictions over the horizon, each carrying an uncertainty band.
package forecast

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/muhardiansyah15/prophet-forecasting-app/timedataset"
)

var (
	ErrEmptySeries         = timedataset.ErrEmptySeries
	ErrInsufficientHistory = errors.New("insufficient history for forecast method")
	ErrInvalidHorizon      = errors.New("horizon must be non-negative")
	ErrUnknownMethod       = errors.New("unknown forecast method")
	ErrInvalidOptions      = errors.New("invalid forecast options")
)

// Model is the contract shared by every forecast method. Implementations must not retain or
// mutate the dataset and must return len(td.Y) fitted points and horizon future points.
type Model interface {
	Forecast(td *timedataset.TimeDataset, horizon int) (*Results, error)
}

// ContextModel is implemented by models that block on external work and honor cancellation
type ContextModel interface {
	Model
	ForecastContext(ctx context.Context, td *timedataset.TimeDataset, horizon int) (*Results, error)
}

// Run forecasts with the model, passing the context along when the model accepts one
func Run(ctx context.Context, m Model, td *timedataset.TimeDataset, horizon int) (*Results, error) {
	if cm, ok := m.(ContextModel); ok {
		return cm.ForecastContext(ctx, td, horizon)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.Forecast(td, horizon)
}

// Point is a single estimate with its lower and upper bound
type Point struct {
	Time  time.Time `json:"ds"`
	Value float64   `json:"yhat"`
	Lower float64   `json:"yhat_lower"`
	Upper float64   `json:"yhat_upper"`
}

// Results captures the fitted values aligned with the input series and the future predictions
type Results struct {
	Fitted []Point `json:"fitted"`
	Future []Point `json:"forecast"`
}

// FutureValues returns the point estimates of the future predictions
func (r *Results) FutureValues() []float64 {
	if r == nil {
		return nil
	}
	return pointValues(r.Future)
}

// FittedValues returns the point estimates over the history
func (r *Results) FittedValues() []float64 {
	if r == nil {
		return nil
	}
	return pointValues(r.Fitted)
}

func validateInput(td *timedataset.TimeDataset, horizon int) error {
	if td.Len() == 0 {
		return ErrEmptySeries
	}
	if len(td.T) != len(td.Y) {
		return fmt.Errorf("%d times and %d values, %w", len(td.T), len(td.Y), timedataset.ErrDatasetLenMismatch)
	}
	if horizon < 0 {
		return fmt.Errorf("got %d, %w", horizon, ErrInvalidHorizon)
	}
	return nil
}

// newResults assembles fitted and future points with a constant band of +/- width around each
// estimate.
func newResults(td *timedataset.TimeDataset, fitted, future []float64, width float64) *Results {
	res := &Results{
		Fitted: make([]Point, 0, len(fitted)),
		Future: make([]Point, 0, len(future)),
	}
	for i, v := range fitted {
		res.Fitted = append(res.Fitted, bandPoint(td.T[i], v, width))
	}
	futureTimes := timedataset.TimeSlice(td.T).NextDays(len(future))
	for i, v := range future {
		res.Future = append(res.Future, bandPoint(futureTimes[i], v, width))
	}
	return res
}

func bandPoint(t time.Time, v, width float64) Point {
	return Point{
		Time:  t,
		Value: v,
		Lower: v - width,
		Upper: v + width,
	}
}

func pointValues(points []Point) []float64 {
	vals := make([]float64, 0, len(points))
	for _, p := range points {
		vals = append(vals, p.Value)
	}
	return vals
}
