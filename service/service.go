// Package service exposes the forecaster over HTTP. Request and response bodies use the snake_case
// field names of the forecasting API clients (ds, y, yhat, forecast_method, ...).
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	forecaster "github.com/muhardiansyah15/prophet-forecasting-app"
	"github.com/muhardiansyah15/prophet-forecasting-app/config"
	"github.com/muhardiansyah15/prophet-forecasting-app/forecast"
	"github.com/muhardiansyah15/prophet-forecasting-app/prophet"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Version is reported by the banner endpoint. Overridden at build time.
var Version = "1.0.0"

const shutdownTimeout = 10 * time.Second

// ProbeFunc reports the state of the prophet toolchain
type ProbeFunc func(ctx context.Context) prophet.Diagnostics

// ProphetFactory builds a prophet model for request specific settings
type ProphetFactory func(cfg *prophet.Config) (forecast.Model, error)

// Server serves forecasts over HTTP
type Server struct {
	cfg        *config.Config
	forecaster *forecaster.Forecaster
	logger     zerolog.Logger
	metrics    *Metrics
	registry   *prometheus.Registry
	limiter    *rate.Limiter
	validate   *validator.Validate
	probe      ProbeFunc
	newProphet ProphetFactory
	router     *gin.Engine
}

type Option func(s *Server)

// WithRegistry registers the metrics with reg instead of a private registry
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// WithProbe replaces the prophet toolchain probe
func WithProbe(probe ProbeFunc) Option {
	return func(s *Server) {
		s.probe = probe
	}
}

// WithProphetFactory replaces how prophet models with request specific settings are built
func WithProphetFactory(f ProphetFactory) Option {
	return func(s *Server) {
		s.newProphet = f
	}
}

// New constructs the HTTP server
func New(cfg *config.Config, fc *forecaster.Forecaster, logger zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		cfg:        cfg,
		forecaster: fc,
		logger:     logger.With().Str("component", "service").Logger(),
		limiter:    rate.NewLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst),
		validate:   validator.New(),
	}
	s.probe = func(ctx context.Context) prophet.Diagnostics {
		return prophet.Probe(ctx, &s.cfg.Prophet)
	}
	s.newProphet = func(c *prophet.Config) (forecast.Model, error) {
		m, err := prophet.New(c)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = NewMetrics(s.registry)
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler of the API
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics returns the collectors of the server
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestID())
	router.Use(s.accessLog())
	router.Use(cors.New(s.corsConfig()))
	router.Use(s.instrument())

	router.GET("/", s.handleRoot)
	router.GET("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	api := router.Group("/api")
	api.Use(s.rateLimit())
	api.Use(s.timeout())
	{
		api.GET("/methods", s.handleMethods)
		api.GET("/prophet_status", s.handleProphetStatus)
		api.POST("/forecast", s.handleForecast)
		api.POST("/forecast/compare", s.handleCompare)
		api.POST("/upload", s.handleUpload)
	}
	return router
}

func (s *Server) corsConfig() cors.Config {
	c := cors.DefaultConfig()
	if len(s.cfg.Server.CORSOrigins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = s.cfg.Server.CORSOrigins
		c.AllowWildcard = true
		c.AllowCredentials = true
	}
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", requestIDHeader)
	c.ExposeHeaders = []string{requestIDHeader}
	return c
}

// Run serves until the context is canceled and then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
