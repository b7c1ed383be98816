package service

import (
	forecaster "github.com/muhardiansyah15/prophet-forecasting-app"
	"github.com/muhardiansyah15/prophet-forecasting-app/forecast"
	"github.com/muhardiansyah15/prophet-forecasting-app/ingest"
	"github.com/muhardiansyah15/prophet-forecasting-app/prophet"
	"github.com/muhardiansyah15/prophet-forecasting-app/timedataset"
)

// ForecastRequest is the body of the forecast and compare endpoints
type ForecastRequest struct {
	Data   []ingest.Point `json:"data"`
	Config ForecastConfig `json:"config"`
}

// ForecastConfig carries the per request settings. The seasonality and prior settings only apply
// to the prophet method and fall back to the server configuration when omitted.
type ForecastConfig struct {
	Periods        *int   `json:"periods"`
	ForecastMethod string `json:"forecast_method" validate:"omitempty,max=64"`

	YearlySeasonality     *bool    `json:"yearly_seasonality"`
	WeeklySeasonality     *bool    `json:"weekly_seasonality"`
	DailySeasonality      *bool    `json:"daily_seasonality"`
	ChangepointPriorScale *float64 `json:"changepoint_prior_scale" validate:"omitempty,gt=0"`
	SeasonalityPriorScale *float64 `json:"seasonality_prior_scale" validate:"omitempty,gt=0"`
	HolidaysPriorScale    *float64 `json:"holidays_prior_scale" validate:"omitempty,gt=0"`
	CountryHolidays       *string  `json:"country_holidays" validate:"omitempty,max=64"`
}

// prophetOverrides applies the request settings onto a copy of base. The boolean is false when
// the request overrides nothing.
func (c ForecastConfig) prophetOverrides(base prophet.Config) (*prophet.Config, bool) {
	changed := false
	if c.YearlySeasonality != nil {
		base.YearlySeasonality, changed = *c.YearlySeasonality, true
	}
	if c.WeeklySeasonality != nil {
		base.WeeklySeasonality, changed = *c.WeeklySeasonality, true
	}
	if c.DailySeasonality != nil {
		base.DailySeasonality, changed = *c.DailySeasonality, true
	}
	if c.ChangepointPriorScale != nil {
		base.ChangepointPriorScale, changed = *c.ChangepointPriorScale, true
	}
	if c.SeasonalityPriorScale != nil {
		base.SeasonalityPriorScale, changed = *c.SeasonalityPriorScale, true
	}
	if c.HolidaysPriorScale != nil {
		base.HolidaysPriorScale, changed = *c.HolidaysPriorScale, true
	}
	if c.CountryHolidays != nil {
		base.CountryHolidays, changed = *c.CountryHolidays, true
	}
	return &base, changed
}

// Point is a forecast point on the wire
type Point struct {
	DS        string  `json:"ds" yaml:"ds"`
	Yhat      float64 `json:"yhat" yaml:"yhat"`
	YhatLower float64 `json:"yhat_lower" yaml:"yhat_lower"`
	YhatUpper float64 `json:"yhat_upper" yaml:"yhat_upper"`
}

// ForecastResponse is the body returned for a successful forecast. Metrics is null when the
// backtest was skipped or failed.
type ForecastResponse struct {
	Method          string           `json:"method" yaml:"method"`
	Historical      []ingest.Point   `json:"historical" yaml:"historical"`
	Fitted          []Point          `json:"fitted" yaml:"fitted"`
	Forecast        []Point          `json:"forecast" yaml:"forecast"`
	Metrics         *forecast.Scores `json:"metrics" yaml:"metrics"`
	BacktestSkipped bool             `json:"backtest_skipped" yaml:"backtest_skipped"`
	BacktestError   string           `json:"backtest_error,omitempty" yaml:"backtest_error,omitempty"`
}

// NewForecastResponse converts forecaster results into their wire form
func NewForecastResponse(res *forecaster.Results) *ForecastResponse {
	return &ForecastResponse{
		Method:          res.Method.String(),
		Historical:      ingest.FromDataset(res.Historical),
		Fitted:          toPoints(res.Fitted),
		Forecast:        toPoints(res.Future),
		Metrics:         res.Metrics,
		BacktestSkipped: res.BacktestSkipped,
		BacktestError:   res.BacktestError,
	}
}

func toPoints(points []forecast.Point) []Point {
	res := make([]Point, 0, len(points))
	for _, p := range points {
		res = append(res, Point{
			DS:        p.Time.Format(timedataset.DateLayout),
			Yhat:      p.Value,
			YhatLower: p.Lower,
			YhatUpper: p.Upper,
		})
	}
	return res
}

// CompareEntry is the outcome of a single method in a comparison
type CompareEntry struct {
	Result *ForecastResponse `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string            `json:"error,omitempty" yaml:"error,omitempty"`
	Code   string            `json:"code,omitempty" yaml:"code,omitempty"`
}

// CompareResponse maps every available method name onto its outcome
type CompareResponse struct {
	Results map[string]CompareEntry `json:"results" yaml:"results"`
}

// NewCompareResponse converts a comparison into its wire form. Failed methods carry the error
// message and code instead of a result.
func NewCompareResponse(comparisons []forecaster.Comparison) *CompareResponse {
	res := &CompareResponse{Results: make(map[string]CompareEntry, len(comparisons))}
	for _, cmp := range comparisons {
		if cmp.Err != nil {
			_, code := statusFor(cmp.Err)
			res.Results[cmp.Method.String()] = CompareEntry{Error: cmp.Err.Error(), Code: code}
			continue
		}
		res.Results[cmp.Method.String()] = CompareEntry{Result: NewForecastResponse(cmp.Results)}
	}
	return res
}

// UploadResponse reports the points parsed from an uploaded file
type UploadResponse struct {
	Message string              `json:"message"`
	Data    []ingest.Point      `json:"data"`
	Skipped []ingest.SkippedRow `json:"skipped,omitempty"`
}

// MethodsResponse lists the methods a forecast may request
type MethodsResponse struct {
	Methods []string `json:"methods"`
	Default string   `json:"default"`
}

// ProphetStatus reports the plugin configuration alongside a fresh probe
type ProphetStatus struct {
	Enabled    bool `json:"enabled" yaml:"enabled"`
	Registered bool `json:"registered" yaml:"registered"`

	prophet.Diagnostics `yaml:",inline"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id"`
}
