package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	forecaster "github.com/muhardiansyah15/prophet-forecasting-app"
	"github.com/muhardiansyah15/prophet-forecasting-app/forecast"
	"github.com/muhardiansyah15/prophet-forecasting-app/ingest"
	"github.com/muhardiansyah15/prophet-forecasting-app/timedataset"
)

func (s *Server) handleRoot(c *gin.Context) {
	s.writeJSON(c, http.StatusOK, gin.H{"message": "Prophet Forecasting API", "version": Version})
}

func (s *Server) handleHealth(c *gin.Context) {
	s.writeJSON(c, http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleMethods(c *gin.Context) {
	methods := s.forecaster.Methods()
	res := MethodsResponse{
		Methods: make([]string, 0, len(methods)),
		Default: s.cfg.Forecast.DefaultMethod.String(),
	}
	for _, m := range methods {
		res.Methods = append(res.Methods, m.String())
	}
	s.writeJSON(c, http.StatusOK, res)
}

// handleProphetStatus probes the toolchain on every call so installs and removals show up
// without a restart
func (s *Server) handleProphetStatus(c *gin.Context) {
	s.writeJSON(c, http.StatusOK, ProphetStatus{
		Enabled:     s.cfg.Prophet.Enabled,
		Registered:  s.forecaster.Available(forecast.Prophet),
		Diagnostics: s.probe(c.Request.Context()),
	})
}

func (s *Server) handleForecast(c *gin.Context) {
	req, err := s.bindForecast(c)
	if err != nil {
		s.abort(c, err)
		return
	}
	method, err := s.forecaster.ParseMethod(req.Config.ForecastMethod)
	if err != nil {
		s.abort(c, err)
		return
	}
	horizon, err := s.horizon(req.Config)
	if err != nil {
		s.abort(c, err)
		return
	}
	td, err := timedataset.Normalize(ingest.ToRaw(req.Data))
	if err != nil {
		s.metrics.ForecastsTotal.WithLabelValues(method.String(), "client_error").Inc()
		s.abort(c, err)
		return
	}

	res, err := s.runForecast(c.Request.Context(), td, horizon, method, req.Config)
	s.observe(c, method, td, res, err)
	if err != nil {
		s.abort(c, err)
		return
	}
	s.writeJSON(c, http.StatusOK, NewForecastResponse(res))
}

// runForecast uses a prophet model built from the request when it overrides any prophet setting
func (s *Server) runForecast(ctx context.Context, td *timedataset.TimeDataset, horizon int, method forecast.Method, cfg ForecastConfig) (*forecaster.Results, error) {
	if method != forecast.Prophet || !s.forecaster.Available(method) {
		return s.forecaster.ForecastDataset(ctx, td, horizon, method)
	}
	prophetCfg, changed := cfg.prophetOverrides(s.cfg.Prophet)
	if !changed {
		return s.forecaster.ForecastDataset(ctx, td, horizon, method)
	}
	model, err := s.newProphet(prophetCfg)
	if err != nil {
		return nil, fmt.Errorf("%w, %w", ErrBadRequest, err)
	}
	return s.forecaster.ForecastWith(ctx, td, horizon, method, model)
}

func (s *Server) handleCompare(c *gin.Context) {
	req, err := s.bindForecast(c)
	if err != nil {
		s.abort(c, err)
		return
	}
	horizon, err := s.horizon(req.Config)
	if err != nil {
		s.abort(c, err)
		return
	}

	comparisons, err := s.forecaster.Compare(c.Request.Context(), ingest.ToRaw(req.Data), horizon)
	if err != nil {
		s.abort(c, err)
		return
	}

	for _, cmp := range comparisons {
		if cmp.Err != nil {
			s.logger.Warn().
				Err(cmp.Err).
				Str("request_id", c.GetString(requestIDKey)).
				Str("method", cmp.Method.String()).
				Msg("method failed during comparison")
		}
	}
	s.writeJSON(c, http.StatusOK, NewCompareResponse(comparisons))
}

func (s *Server) handleUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.Server.MaxUploadBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			s.abort(c, fmt.Errorf("limit of %d bytes, %w", tooBig.Limit, ErrFileTooBig))
			return
		}
		s.abort(c, fmt.Errorf("%w, %w", ErrNoFile, err))
		return
	}
	f, err := fh.Open()
	if err != nil {
		s.abort(c, fmt.Errorf("unable to open upload, %w", err))
		return
	}
	defer f.Close()

	parsed, err := ingest.ReadFile(fh.Filename, f)
	if err != nil {
		if !errors.Is(err, ingest.ErrUnsupportedFormat) && !errors.Is(err, ingest.ErrMissingColumn) && !errors.Is(err, ingest.ErrNoRows) {
			err = fmt.Errorf("%w, %w", ErrBadRequest, err)
		}
		s.abort(c, err)
		return
	}
	for _, row := range parsed.Skipped {
		s.logger.Warn().
			Str("request_id", c.GetString(requestIDKey)).
			Str("file", fh.Filename).
			Int("row", row.Row).
			Str("reason", row.Reason).
			Msg("skipped invalid row")
	}
	if len(parsed.Points) == 0 {
		s.abort(c, fmt.Errorf("%q has no valid rows, %w", fh.Filename, timedataset.ErrEmptySeries))
		return
	}

	s.writeJSON(c, http.StatusOK, UploadResponse{
		Message: fmt.Sprintf("Successfully uploaded and parsed %d data points", len(parsed.Points)),
		Data:    parsed.Points,
		Skipped: parsed.Skipped,
	})
}

func (s *Server) bindForecast(c *gin.Context) (*ForecastRequest, error) {
	var req ForecastRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("%w, %w", ErrBadRequest, err)
	}
	if err := s.validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%w, %w", ErrBadRequest, err)
	}
	return &req, nil
}

// horizon resolves the requested periods against the configured default and maximum
func (s *Server) horizon(cfg ForecastConfig) (int, error) {
	if cfg.Periods == nil {
		return s.cfg.Forecast.DefaultPeriods, nil
	}
	periods := *cfg.Periods
	if periods < 0 || periods > s.cfg.Forecast.MaxPeriods {
		return 0, fmt.Errorf("periods must be within [0, %d], got %d, %w", s.cfg.Forecast.MaxPeriods, periods, forecast.ErrInvalidHorizon)
	}
	return periods, nil
}

func (s *Server) observe(c *gin.Context, method forecast.Method, td *timedataset.TimeDataset, res *forecaster.Results, err error) {
	s.metrics.SeriesPoints.Observe(float64(td.Len()))
	if err != nil {
		outcome := "server_error"
		if status, _ := statusFor(err); status < http.StatusInternalServerError {
			outcome = "client_error"
		}
		s.metrics.ForecastsTotal.WithLabelValues(method.String(), outcome).Inc()
		return
	}
	s.metrics.ForecastsTotal.WithLabelValues(method.String(), "ok").Inc()

	switch {
	case res.Metrics != nil:
		s.metrics.BacktestsTotal.WithLabelValues(method.String(), "scored").Inc()
	case res.BacktestSkipped:
		s.metrics.BacktestsTotal.WithLabelValues(method.String(), "skipped").Inc()
		s.logger.Debug().
			Str("request_id", c.GetString(requestIDKey)).
			Str("method", method.String()).
			Int("points", td.Len()).
			Msg("backtest skipped")
	default:
		s.metrics.BacktestsTotal.WithLabelValues(method.String(), "failed").Inc()
		s.logger.Warn().
			Str("request_id", c.GetString(requestIDKey)).
			Str("method", method.String()).
			Int("points", td.Len()).
			Str("reason", res.BacktestError).
			Msg("backtest failed, metrics unavailable")
	}
}

// abort writes the error body with the status mapped from the error
func (s *Server) abort(c *gin.Context, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("request_id", c.GetString(requestIDKey)).Str("code", code).Msg("request failed")
	}
	c.Abort()
	s.writeJSON(c, status, ErrorResponse{
		Error:     err.Error(),
		Code:      code,
		RequestID: c.GetString(requestIDKey),
	})
}

func (s *Server) writeJSON(c *gin.Context, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Error().Err(err).Str("request_id", c.GetString(requestIDKey)).Msg("unable to encode response")
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(status, "application/json; charset=utf-8", body)
}
