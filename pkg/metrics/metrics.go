// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts finished requests by route template.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// ReportsGenerated counts yearly reports built.
	ReportsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "farm_reports_generated_total",
		Help: "Total number of yearly reports generated",
	})

	// ReportDegraded counts reports served with zeroed financials because
	// the transaction sums could not be read.
	ReportDegraded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "farm_report_degraded_total",
		Help: "Total number of yearly reports served with zeroed financials",
	})
)
