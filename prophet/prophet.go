// Package prophet forecasts with Facebook Prophet by running it in an external Python interpreter.
// Requests and responses are exchanged as JSON over stdin and stdout. The package is optional: the
// built-in methods never depend on it.
package prophet

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/muhardiansyah15/prophet-forecasting-app/event"
	"github.com/muhardiansyah15/prophet-forecasting-app/forecast"
	"github.com/muhardiansyah15/prophet-forecasting-app/timedataset"
)

var (
	ErrUnavailable     = errors.New("prophet is unavailable")
	ErrInvalidResponse = errors.New("invalid response from prophet")
	ErrInvalidConfig   = errors.New("invalid prophet config")
)

// MinHistory is the fewest observations Prophet can fit
const MinHistory = 2

//go:embed scripts/forecast.py
var forecastScript string

//go:embed scripts/probe.py
var probeScript string

// Config selects the interpreter and the Prophet model settings
type Config struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`

	// Python is the interpreter name or path with the prophet package installed
	Python string `json:"python" mapstructure:"python"`

	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`

	// CountryHolidays adds the holidays of a country. Countries with a built-in calendar are sent
	// as an explicit holiday table, any other name is resolved by Prophet itself.
	CountryHolidays string `json:"country_holidays" mapstructure:"country_holidays"`

	YearlySeasonality     bool    `json:"yearly_seasonality" mapstructure:"yearly_seasonality"`
	WeeklySeasonality     bool    `json:"weekly_seasonality" mapstructure:"weekly_seasonality"`
	DailySeasonality      bool    `json:"daily_seasonality" mapstructure:"daily_seasonality"`
	ChangepointPriorScale float64 `json:"changepoint_prior_scale" mapstructure:"changepoint_prior_scale"`
	SeasonalityPriorScale float64 `json:"seasonality_prior_scale" mapstructure:"seasonality_prior_scale"`
	HolidaysPriorScale    float64 `json:"holidays_prior_scale" mapstructure:"holidays_prior_scale"`
	IntervalWidth         float64 `json:"interval_width" mapstructure:"interval_width"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Python:                "python3",
		Timeout:               2 * time.Minute,
		YearlySeasonality:     true,
		WeeklySeasonality:     true,
		DailySeasonality:      false,
		ChangepointPriorScale: 0.05,
		SeasonalityPriorScale: 10.0,
		HolidaysPriorScale:    10.0,
		IntervalWidth:         0.8,
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Python) == "" {
		return fmt.Errorf("no python interpreter, %w", ErrInvalidConfig)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout of %s, %w", c.Timeout, ErrInvalidConfig)
	}
	if c.IntervalWidth <= 0 || c.IntervalWidth >= 1 {
		return fmt.Errorf("interval width of %f, %w", c.IntervalWidth, ErrInvalidConfig)
	}
	if c.ChangepointPriorScale <= 0 || c.SeasonalityPriorScale <= 0 || c.HolidaysPriorScale <= 0 {
		return fmt.Errorf("prior scales must be positive, %w", ErrInvalidConfig)
	}
	return nil
}

// Runner executes a program with the given stdin and returns its stdout
type Runner interface {
	Run(ctx context.Context, name string, args []string, stdin []byte) ([]byte, error)
}

// ExecRunner runs programs as child processes
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args []string, stdin []byte) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = bytes.NewReader(stdin)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := lastLine(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// Model satisfies forecast.Model by delegating to Prophet
type Model struct {
	cfg    *Config
	runner Runner
}

// New creates a Prophet backed model. If no config is provided a default is used.
func New(cfg *Config) (*Model, error) {
	return NewWithRunner(cfg, ExecRunner{})
}

// NewWithRunner creates a model that executes the interpreter through the given runner
func NewWithRunner(cfg *Config, runner Runner) (*Model, error) {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := *cfg
	return &Model{cfg: &c, runner: runner}, nil
}

type historyRow struct {
	DS string  `json:"ds"`
	Y  float64 `json:"y"`
}

type request struct {
	History         []historyRow `json:"history"`
	Periods         int          `json:"periods"`
	Holidays        []event.Row  `json:"holidays,omitempty"`
	CountryHolidays string       `json:"country_holidays,omitempty"`
	Config          *Config      `json:"config"`
}

type predictionRow struct {
	DS        string  `json:"ds"`
	Yhat      float64 `json:"yhat"`
	YhatLower float64 `json:"yhat_lower"`
	YhatUpper float64 `json:"yhat_upper"`
}

type response struct {
	Fitted   []predictionRow `json:"fitted"`
	Forecast []predictionRow `json:"forecast"`
}

func (m *Model) Forecast(td *timedataset.TimeDataset, horizon int) (*forecast.Results, error) {
	return m.ForecastContext(context.Background(), td, horizon)
}

// ForecastContext fits Prophet on the series and predicts horizon days ahead. The call is bounded
// by the configured timeout.
func (m *Model) ForecastContext(ctx context.Context, td *timedataset.TimeDataset, horizon int) (*forecast.Results, error) {
	if td.Len() == 0 {
		return nil, forecast.ErrEmptySeries
	}
	if horizon < 0 {
		return nil, fmt.Errorf("got %d, %w", horizon, forecast.ErrInvalidHorizon)
	}
	if td.Len() < MinHistory {
		return nil, fmt.Errorf("prophet needs %d points, got %d, %w", MinHistory, td.Len(), forecast.ErrInsufficientHistory)
	}

	req, err := m.newRequest(td, horizon)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("unable to encode prophet request, %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()

	out, err := m.runner.Run(ctx, m.cfg.Python, []string{"-c", forecastScript}, payload)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w, %w", ErrUnavailable, ctxErr)
		}
		return nil, fmt.Errorf("%w, %w", ErrUnavailable, err)
	}

	var resp response
	if err := json.Unmarshal(out, &resp); err != nil {
		return nil, fmt.Errorf("%w, %w", ErrInvalidResponse, err)
	}
	return toResults(td, horizon, resp)
}

func (m *Model) newRequest(td *timedataset.TimeDataset, horizon int) (*request, error) {
	req := &request{
		History: make([]historyRow, 0, td.Len()),
		Periods: horizon,
		Config:  m.cfg,
	}
	for i := range td.T {
		req.History = append(req.History, historyRow{
			DS: td.T[i].Format(timedataset.DateLayout),
			Y:  td.Y[i],
		})
	}

	country := strings.TrimSpace(m.cfg.CountryHolidays)
	if country == "" {
		return req, nil
	}
	ts := timedataset.TimeSlice(td.T)
	end := ts.EndTime().AddDate(0, 0, horizon)
	rows, err := event.Table(country, ts.StartTime(), end, 0, 0)
	switch {
	case errors.Is(err, event.ErrUnknownCountry):
		req.CountryHolidays = country
	case err != nil:
		return nil, fmt.Errorf("unable to build holiday table, %w", err)
	default:
		req.Holidays = rows
	}
	return req, nil
}

func toResults(td *timedataset.TimeDataset, horizon int, resp response) (*forecast.Results, error) {
	if len(resp.Fitted) != td.Len() {
		return nil, fmt.Errorf("expected %d fitted points, got %d, %w", td.Len(), len(resp.Fitted), ErrInvalidResponse)
	}
	if len(resp.Forecast) != horizon {
		return nil, fmt.Errorf("expected %d forecast points, got %d, %w", horizon, len(resp.Forecast), ErrInvalidResponse)
	}

	res := &forecast.Results{
		Fitted: make([]forecast.Point, 0, len(resp.Fitted)),
		Future: make([]forecast.Point, 0, len(resp.Forecast)),
	}
	for i, row := range resp.Fitted {
		res.Fitted = append(res.Fitted, toPoint(td.T[i], row))
	}
	futureTimes := timedataset.TimeSlice(td.T).NextDays(horizon)
	for i, row := range resp.Forecast {
		res.Future = append(res.Future, toPoint(futureTimes[i], row))
	}
	return res, nil
}

// toPoint keeps the bounds ordered around the estimate
func toPoint(t time.Time, row predictionRow) forecast.Point {
	return forecast.Point{
		Time:  t,
		Value: row.Yhat,
		Lower: min(row.YhatLower, row.Yhat),
		Upper: max(row.YhatUpper, row.Yhat),
	}
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
