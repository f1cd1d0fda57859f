// Package metrics provides Prometheus metrics for presscanvas.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts served requests.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "presscanvas",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPRequestDuration measures request handling time.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "presscanvas",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// ContentFallbacksTotal counts recovered content failures, labelled by
	// what could not be loaded (index, body, render).
	ContentFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "presscanvas",
			Name:      "content_fallbacks_total",
			Help:      "Content failures recovered with an empty or placeholder view",
		},
		[]string{"kind"},
	)

	// RenderCacheTotal counts rendered-HTML cache lookups by result.
	RenderCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "presscanvas",
			Name:      "render_cache_total",
			Help:      "Rendered article cache lookups",
		},
		[]string{"result"},
	)
)
