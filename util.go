package forecaster

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/muhardiansyah15/prophet-forecasting-app/forecast"
	"github.com/muhardiansyah15/prophet-forecasting-app/timedataset"
)

var ErrNoResults = errors.New("no results to plot")

// missing is rendered by echarts as a gap in the line
const missing = "-"

// LineTSeries generates an echart multi-line chart for some arbitrary time/value combination. The input
// y is a slice of series that must have the same length as the input time slice. Series that are
// shorter than the time slice are padded with gaps.
func LineTSeries(title string, seriesName []string, t []time.Time, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	line = line.SetXAxis(formatDates(t))
	for i, series := range seriesName {
		lineData := make([]opts.LineData, 0, len(t))
		for j := range t {
			if i >= len(y) || j >= len(y[i]) {
				lineData = append(lineData, opts.LineData{Value: missing})
				continue
			}
			lineData = append(lineData, opts.LineData{Value: y[i][j]})
		}
		line = line.AddSeries(series, lineData)
	}
	return line
}

// LineForecast generates an echart line chart of the observed history along with the fitted and
// forecasted values and their bounds.
func LineForecast(res *Results) *charts.Line {
	line := charts.NewLine()
	title := fmt.Sprintf("Forecast (%s)", res.Method)
	if res.Metrics != nil {
		title = fmt.Sprintf("Forecast (%s, MAE %.3f, RMSE %.3f, MAPE %.2f%%)",
			res.Method, res.Metrics.MAE, res.Metrics.RMSE, res.Metrics.MAPE)
	}
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	var hist []float64
	if res.Historical != nil {
		hist = res.Historical.Y
	}
	points := append(append([]forecast.Point{}, res.Fitted...), res.Future...)

	t := make([]time.Time, 0, len(points))
	lineDataActual := make([]opts.LineData, 0, len(points))
	lineDataForecast := make([]opts.LineData, 0, len(points))
	lineDataUpper := make([]opts.LineData, 0, len(points))
	lineDataLower := make([]opts.LineData, 0, len(points))

	for i, p := range points {
		t = append(t, p.Time)
		if i < len(hist) {
			lineDataActual = append(lineDataActual, opts.LineData{Value: hist[i]})
		} else {
			lineDataActual = append(lineDataActual, opts.LineData{Value: missing})
		}
		lineDataForecast = append(lineDataForecast, opts.LineData{Value: p.Value})
		lineDataUpper = append(lineDataUpper, opts.LineData{Value: p.Upper})
		lineDataLower = append(lineDataLower, opts.LineData{Value: p.Lower})
	}

	line.SetXAxis(formatDates(t)).
		AddSeries("Actual", lineDataActual).
		AddSeries("Forecast", lineDataForecast).
		AddSeries("Upper", lineDataUpper).
		AddSeries("Lower", lineDataLower)
	return line
}

// PlotForecast uses the Apache Echarts library to write an html page showing the forecast
func PlotForecast(w io.Writer, res *Results) error {
	if res == nil {
		return ErrNoResults
	}
	page := components.NewPage()
	page.AddCharts(LineForecast(res))
	return page.Render(w)
}

// PlotComparison writes an html page with one chart per successful method plus an overlay of every
// method's future values.
func PlotComparison(w io.Writer, comparisons []Comparison) error {
	var (
		names  []string
		future [][]float64
		t      []time.Time
	)
	page := components.NewPage()
	for _, c := range comparisons {
		if c.Err != nil || c.Results == nil {
			continue
		}
		page.AddCharts(LineForecast(c.Results))
		names = append(names, c.Method.String())
		vals := make([]float64, 0, len(c.Results.Future))
		for _, p := range c.Results.Future {
			vals = append(vals, p.Value)
		}
		future = append(future, vals)
		if len(t) == 0 {
			for _, p := range c.Results.Future {
				t = append(t, p.Time)
			}
		}
	}
	if len(names) == 0 {
		return ErrNoResults
	}
	page.AddCharts(LineTSeries("Method Comparison", names, t, future))
	return page.Render(w)
}

// PlotFile renders the forecast into the html file at path
func PlotFile(path string, res *Results) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return PlotForecast(file, res)
}

func formatDates(t []time.Time) []string {
	out := make([]string, 0, len(t))
	for _, ct := range t {
		out = append(out, ct.Format(timedataset.DateLayout))
	}
	return out
}
