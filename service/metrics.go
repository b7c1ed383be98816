package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "trendcast"

// Metrics holds the Prometheus collectors of the API
type Metrics struct {
	// RequestsTotal counts requests by route, method and status code
	RequestsTotal *prometheus.CounterVec

	// RequestDuration measures request latency by route
	RequestDuration *prometheus.HistogramVec

	// ForecastsTotal counts forecasts by method and outcome (ok, client_error, server_error)
	ForecastsTotal *prometheus.CounterVec

	// BacktestsTotal counts backtests by method and outcome (scored, skipped, failed)
	BacktestsTotal *prometheus.CounterVec

	// SeriesPoints observes the number of normalized points per forecast
	SeriesPoints prometheus.Histogram

	// RateLimited counts requests rejected by the rate limiter
	RateLimited prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"route"},
		),
		ForecastsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "forecast",
				Name:      "requests_total",
				Help:      "Total number of forecasts by method and outcome",
			},
			[]string{"method", "outcome"},
		),
		BacktestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "forecast",
				Name:      "backtests_total",
				Help:      "Total number of backtests by method and outcome",
			},
			[]string{"method", "outcome"},
		),
		SeriesPoints: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "forecast",
				Name:      "series_points",
				Help:      "Number of normalized points per forecast",
				Buckets:   prometheus.ExponentialBuckets(8, 2, 10),
			},
		),
		RateLimited: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "rate_limited_total",
				Help:      "Total number of requests rejected by the rate limiter",
			},
		),
	}
}
