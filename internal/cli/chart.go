package cli

import (
	"errors"
	"math"
	"os"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	forecaster "github.com/muhardiansyah15/prophet-forecasting-app"
	"github.com/muhardiansyah15/prophet-forecasting-app/forecast"
)

var ErrTooFewPoints = errors.New("at least two dates are needed to draw a chart")

// writePNG renders the history, the fitted values and the forecast with its band
func writePNG(path string, res *forecaster.Results) error {
	if res == nil || res.Historical == nil {
		return forecaster.ErrNoResults
	}
	if res.Historical.Len()+len(res.Future) < 2 {
		return ErrTooFewPoints
	}
	if err := ensureDir(path); err != nil {
		return err
	}

	fittedX, fitted, _, _ := splitPoints(res.Fitted)
	series := []chart.Series{
		chart.TimeSeries{
			Name:    "Observed",
			XValues: res.Historical.T,
			YValues: res.Historical.Y,
		},
		chart.TimeSeries{
			Name:    "Fitted",
			XValues: fittedX,
			YValues: fitted,
			Style: chart.Style{
				StrokeColor:     chart.ColorAlternateGray,
				StrokeDashArray: []float64{4, 4},
			},
		},
	}
	if len(res.Future) > 0 {
		futureX, future, lower, upper := splitPoints(res.Future)
		bandStyle := chart.Style{
			StrokeColor:     chart.ColorRed.WithAlpha(128),
			StrokeDashArray: []float64{2, 2},
		}
		series = append(series,
			chart.TimeSeries{
				Name:    "Forecast",
				XValues: futureX,
				YValues: future,
				Style:   chart.Style{StrokeColor: chart.ColorRed},
			},
			chart.TimeSeries{Name: "Lower", XValues: futureX, YValues: lower, Style: bandStyle},
			chart.TimeSeries{Name: "Upper", XValues: futureX, YValues: upper, Style: bandStyle},
		)
	}

	graph := chart.Chart{
		Title:  "Forecast (" + res.Method.String() + ")",
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:  "Value",
			Range: valueRange(res),
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

func splitPoints(points []forecast.Point) ([]time.Time, []float64, []float64, []float64) {
	t := make([]time.Time, 0, len(points))
	v := make([]float64, 0, len(points))
	lower := make([]float64, 0, len(points))
	upper := make([]float64, 0, len(points))
	for _, p := range points {
		t = append(t, p.Time)
		v = append(v, p.Value)
		lower = append(lower, p.Lower)
		upper = append(upper, p.Upper)
	}
	return t, v, lower, upper
}

// valueRange pads a flat series so the y axis never collapses to a single value. A nil range lets
// the chart fit the data.
func valueRange(res *forecaster.Results) chart.Range {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, y := range res.Historical.Y {
		lo, hi = math.Min(lo, y), math.Max(hi, y)
	}
	for _, points := range [][]forecast.Point{res.Fitted, res.Future} {
		for _, p := range points {
			lo, hi = math.Min(lo, p.Lower), math.Max(hi, p.Upper)
		}
	}
	if hi > lo {
		return nil
	}
	pad := math.Max(math.Abs(lo)*0.1, 1)
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
