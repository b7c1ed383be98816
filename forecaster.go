// Package forecaster runs the forecasting pipeline: normalize the raw series, forecast it with the
// requested method and score the method against a holdout of its own history.
package forecaster

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/muhardiansyah15/prophet-forecasting-app/forecast"
	"github.com/muhardiansyah15/prophet-forecasting-app/timedataset"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var ErrMethodUnavailable = errors.New("forecast method is not available")

var tracer = otel.Tracer("github.com/muhardiansyah15/prophet-forecasting-app")

// Forecaster serves forecasts for every registered method. It holds no per request state and is
// safe for concurrent use.
type Forecaster struct {
	opt    *Options
	models map[forecast.Method]forecast.Model
}

// New creates a forecaster with the built-in methods plus any plugins in the options. If no
// options are provided a default is used.
func New(opt *Options) (*Forecaster, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	if err := opt.Validate(); err != nil {
		return nil, err
	}

	f := &Forecaster{
		opt:    opt,
		models: make(map[forecast.Method]forecast.Model),
	}
	for _, method := range forecast.BuiltinMethods() {
		model, err := forecast.NewModel(method, opt.ForecastOptions)
		if err != nil {
			return nil, fmt.Errorf("unable to initialize %s, %w", method, err)
		}
		f.models[method] = model
	}
	for method, model := range opt.Plugins {
		f.models[method] = model
	}
	return f, nil
}

// Methods lists the available methods in their declared order
func (f *Forecaster) Methods() []forecast.Method {
	methods := make([]forecast.Method, 0, len(f.models))
	for method := range f.models {
		methods = append(methods, method)
	}
	slices.Sort(methods)
	return methods
}

// Available reports whether the method has a registered model
func (f *Forecaster) Available(method forecast.Method) bool {
	_, ok := f.models[method]
	return ok
}

// ParseMethod resolves a method name. An empty name selects the default method, and unknown names
// select the linear trend when the legacy fallback is enabled.
func (f *Forecaster) ParseMethod(name string) (forecast.Method, error) {
	if name == "" {
		return f.opt.DefaultMethod, nil
	}
	method, err := forecast.ParseMethod(name)
	if err != nil {
		if f.opt.LegacyMethodFallback && errors.Is(err, forecast.ErrUnknownMethod) {
			return forecast.LinearTrend, nil
		}
		return 0, err
	}
	return method, nil
}

// Model returns the model registered for the method
func (f *Forecaster) Model(method forecast.Method) (forecast.Model, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("%s, %w", method, forecast.ErrUnknownMethod)
	}
	model, ok := f.models[method]
	if !ok {
		return nil, fmt.Errorf("%s, %w", method, ErrMethodUnavailable)
	}
	return model, nil
}

// Forecast normalizes the raw points and forecasts horizon days past the last observation
func (f *Forecaster) Forecast(ctx context.Context, raw []timedataset.RawPoint, horizon int, method forecast.Method) (*Results, error) {
	td, err := timedataset.Normalize(raw)
	if err != nil {
		return nil, err
	}
	return f.ForecastDataset(ctx, td, horizon, method)
}

// ForecastDataset forecasts a normalized series. The backtest runs alongside the main forecast and
// its failure only leaves the metrics empty.
func (f *Forecaster) ForecastDataset(ctx context.Context, td *timedataset.TimeDataset, horizon int, method forecast.Method) (*Results, error) {
	if td.Len() == 0 {
		return nil, forecast.ErrEmptySeries
	}
	if horizon < 0 {
		return nil, fmt.Errorf("got %d, %w", horizon, forecast.ErrInvalidHorizon)
	}
	model, err := f.Model(method)
	if err != nil {
		return nil, err
	}
	return f.forecast(ctx, td, horizon, method, model)
}

// ForecastWith forecasts a normalized series with a caller supplied model standing in for the
// registered one, such as a plugin built with request specific settings. The method must still be
// available.
func (f *Forecaster) ForecastWith(ctx context.Context, td *timedataset.TimeDataset, horizon int, method forecast.Method, model forecast.Model) (*Results, error) {
	if td.Len() == 0 {
		return nil, forecast.ErrEmptySeries
	}
	if horizon < 0 {
		return nil, fmt.Errorf("got %d, %w", horizon, forecast.ErrInvalidHorizon)
	}
	if _, err := f.Model(method); err != nil {
		return nil, err
	}
	if model == nil {
		return nil, fmt.Errorf("nil model for %s, %w", method, ErrInvalidOptions)
	}
	return f.forecast(ctx, td, horizon, method, model)
}

func (f *Forecaster) forecast(ctx context.Context, td *timedataset.TimeDataset, horizon int, method forecast.Method, model forecast.Model) (*Results, error) {
	ctx, span := tracer.Start(ctx, "Forecaster.Forecast",
		trace.WithAttributes(
			attribute.String("forecast.method", method.String()),
			attribute.Int("forecast.points", td.Len()),
			attribute.Int("forecast.horizon", horizon),
		),
	)
	defer span.End()

	var (
		modelRes *forecast.Results
		scores   *forecast.Scores
		btErr    error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		modelRes, err = forecast.Run(gctx, model, td, horizon)
		if err != nil {
			return fmt.Errorf("unable to forecast with %s, %w", method, err)
		}
		return nil
	})
	g.Go(func() error {
		scores, btErr = f.backtest(gctx, model, td)
		return nil
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	res := &Results{
		Method:     method,
		Historical: td.Copy(),
		Fitted:     modelRes.Fitted,
		Future:     modelRes.Future,
		Metrics:    scores,
	}
	if btErr != nil {
		res.Metrics = nil
		res.BacktestError = btErr.Error()
		res.BacktestSkipped = errors.Is(btErr, ErrBacktestSkipped)
	}
	span.SetAttributes(attribute.Bool("forecast.backtested", res.Metrics != nil))
	return res, nil
}

func (f *Forecaster) backtest(ctx context.Context, model forecast.Model, td *timedataset.TimeDataset) (*forecast.Scores, error) {
	_, span := tracer.Start(ctx, "Forecaster.Backtest")
	defer span.End()

	scores, err := Backtest(ctx, model, td, f.opt)
	if err != nil && !errors.Is(err, ErrBacktestSkipped) {
		span.RecordError(err)
	}
	return scores, err
}

// Compare forecasts the same series with every available method. Failures are reported per method
// and never fail the comparison as a whole.
func (f *Forecaster) Compare(ctx context.Context, raw []timedataset.RawPoint, horizon int) ([]Comparison, error) {
	td, err := timedataset.Normalize(raw)
	if err != nil {
		return nil, err
	}
	if horizon < 0 {
		return nil, fmt.Errorf("got %d, %w", horizon, forecast.ErrInvalidHorizon)
	}

	methods := f.Methods()
	res := make([]Comparison, len(methods))

	var g errgroup.Group
	g.SetLimit(f.opt.CompareParallelism)
	for i, method := range methods {
		g.Go(func() error {
			out, err := f.ForecastDataset(ctx, td, horizon, method)
			res[i] = Comparison{Method: method, Results: out, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return res, nil
}
