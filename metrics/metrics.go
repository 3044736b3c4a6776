// Package metrics declares the prometheus collectors exported on /metrics
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration observes handler latency by route template, method and status
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dispute_http_request_duration_seconds",
		Help:    "Latency of HTTP requests by route, method and status code.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method", "status"})

	// Transitions counts applied lifecycle events
	Transitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dispute_case_transitions_total",
		Help: "Number of applied case lifecycle transitions by event.",
	}, []string{"event"})

	// TransitionConflicts counts writes rejected by the optimistic version check
	TransitionConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispute_case_version_conflicts_total",
		Help: "Number of case writes lost to a concurrent update.",
	})

	// Notifications counts notification sends by channel and outcome (sent, failed, dropped)
	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dispute_notifications_total",
		Help: "Number of notification sends by channel and outcome.",
	}, []string{"channel", "outcome"})

	// AuditFailures counts audit entries that could not be written
	AuditFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispute_audit_write_failures_total",
		Help: "Number of audit log entries that failed to persist.",
	})

	// OverdueCases is the number of overdue cases found by the last sweep
	OverdueCases = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dispute_overdue_cases",
		Help: "Number of overdue open or appealed cases at the last sweep.",
	})
)
