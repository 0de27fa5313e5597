package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Market data accessor metrics
	MarketDataCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_market_data_calls_total",
			Help: "Total number of market data provider calls",
		},
		[]string{"operation", "status"},
	)

	MarketDataCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_market_data_call_duration_seconds",
			Help:    "Market data provider call duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
		[]string{"operation"},
	)

	// Business metrics
	ValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_portfolio_validations_total",
			Help: "Total number of portfolio validation runs",
		},
		[]string{"result"},
	)

	ActiveSessionsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dashboard_active_sessions",
			Help: "Number of live dashboard sessions",
		},
	)

	ChartsRenderedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_charts_rendered_total",
			Help: "Total number of chart images rendered",
		},
		[]string{"kind"},
	)
)
