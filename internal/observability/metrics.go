package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Outbound API client metrics
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "unitip_api_request_duration_seconds",
			Help:    "Latency of Unitip API round trips in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"operation", "status"},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unitip_api_requests_total",
			Help: "Total number of Unitip API requests",
		},
		[]string{"operation", "status"},
	)

	APITransportErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unitip_api_transport_errors_total",
			Help: "Total number of API requests that failed before a response arrived",
		},
		[]string{"operation"},
	)

	// Dev server metrics
	ServerRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "devserver_request_duration_seconds",
			Help:    "Dev server HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path", "status"},
	)

	ServerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devserver_requests_total",
			Help: "Total number of dev server HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RealtimeConnectionsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "devserver_realtime_connections_active",
			Help: "Number of active room event subscriptions",
		},
		[]string{"room_id"},
	)
)
