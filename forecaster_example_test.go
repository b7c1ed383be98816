package forecaster

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/muhardiansyah15/prophet-forecasting-app/forecast"
	"github.com/muhardiansyah15/prophet-forecasting-app/timedataset"
)

func generateExampleSeries(n int) []timedataset.RawPoint {
	t := timedataset.GenerateDays(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), n)
	y := timedataset.GenerateConstY(n, 98.3).
		Add(timedataset.GenerateLineY(n, 0.4, 0)).
		Add(timedataset.GenerateWeekdayY(t, [7]float64{4.1, 2.0, 0.5, 0.0, -1.2, -6.3, -5.8})).
		Add(timedataset.GenerateNoise(n, 1.5, 2024))
	return timedataset.ToRaw(t, y)
}

func runForecastExample(method forecast.Method, raw []timedataset.RawPoint, filename string) error {
	f, err := New(nil)
	if err != nil {
		return err
	}
	res, err := f.Forecast(context.Background(), raw, 28, method)
	if err != nil {
		return err
	}
	return PlotFile(filepath.Join(os.TempDir(), filename), res)
}

func Example() {
	t := timedataset.GenerateDays(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 20)
	raw := timedataset.ToRaw(t, timedataset.GenerateLineY(20, 2, 5))

	f, err := New(nil)
	if err != nil {
		panic(err)
	}
	res, err := f.Forecast(context.Background(), raw, 3, forecast.LinearTrend)
	if err != nil {
		panic(err)
	}
	for _, p := range res.Future {
		fmt.Printf("%s %.2f [%.2f, %.2f]\n", p.Time.Format(timedataset.DateLayout), p.Value, p.Lower, p.Upper)
	}
	fmt.Printf("mae=%.3f rmse=%.3f mape=%.3f\n", res.Metrics.MAE, res.Metrics.RMSE, res.Metrics.MAPE)
	// Output:
	// 2024-01-21 45.00 [45.00, 45.00]
	// 2024-01-22 47.00 [47.00, 47.00]
	// 2024-01-23 49.00 [49.00, 49.00]
	// mae=0.000 rmse=0.000 mape=0.000
}

func Example_shortSeries() {
	f, err := New(nil)
	if err != nil {
		panic(err)
	}
	res, err := f.Forecast(context.Background(), generateExampleSeries(8), 2, forecast.ExponentialSmoothing)
	if err != nil {
		panic(err)
	}
	fmt.Println(len(res.Fitted), len(res.Future), res.Metrics == nil, res.BacktestSkipped)
	// Output:
	// 8 2 true true
}

func Example_forecasterMovingAverage() {
	if err := runForecastExample(forecast.MovingAverage, generateExampleSeries(120), "forecaster_moving_average.html"); err != nil {
		panic(err)
	}
	// Output:
}

func Example_forecasterCompare() {
	f, err := New(nil)
	if err != nil {
		panic(err)
	}
	comparisons, err := f.Compare(context.Background(), generateExampleSeries(90), 21)
	if err != nil {
		panic(err)
	}
	for _, c := range comparisons {
		fmt.Println(c.Method, c.Err == nil, c.Results.Metrics != nil)
	}

	file, err := os.Create(filepath.Join(os.TempDir(), "forecaster_compare.html"))
	if err != nil {
		panic(err)
	}
	defer file.Close()
	if err := PlotComparison(file, comparisons); err != nil {
		panic(err)
	}
	// Output:
	// linear_trend true true
	// moving_average true true
	// exponential_smoothing true true
}
