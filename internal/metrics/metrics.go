// Package metrics defines the application's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Spin metrics
var (
	// SpinsTotal tracks accepted spins.
	SpinsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "spins_total",
			Help: "Total accepted wheel spins",
		},
	)

	// SpinsRejectedTotal tracks spin triggers ignored because one was running.
	SpinsRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "spins_rejected_total",
			Help: "Spin triggers ignored because a spin was already running",
		},
	)

	// SpinOutcomesTotal tracks settled outcomes by segment label.
	SpinOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spin_outcomes_total",
			Help: "Settled spin outcomes by segment label",
		},
		[]string{"outcome"},
	)
)

// Quote generation metrics
var (
	// QuoteRequestsTotal tracks quote generation attempts by result.
	// result: success, fallback_error, fallback_degenerate
	QuoteRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_requests_total",
			Help: "Quote generation attempts by result",
		},
		[]string{"result"},
	)

	// QuoteRequestDuration tracks text service latency in seconds.
	QuoteRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quote_request_duration_seconds",
			Help:    "Text generation request duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	// QuoteBreakerState tracks the Gemini circuit breaker state
	// (0=closed, 1=half-open, 2=open).
	QuoteBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "quote_breaker_state",
			Help: "Gemini circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)
)

// Persistence metrics
var (
	// CelebrationPersistFailuresTotal tracks swallowed result-store write failures.
	CelebrationPersistFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "celebration_persist_failures_total",
			Help: "Celebration records that could not be written to the result store",
		},
	)
)

// Hall feed metrics
var (
	// HallConnectedClients tracks currently connected hall display clients.
	HallConnectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hall_connected_clients",
			Help: "Currently connected hall display WebSocket clients",
		},
	)

	// HallEventsTotal tracks events fanned out to hall displays by type.
	HallEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hall_events_total",
			Help: "Events fanned out to hall displays by event type",
		},
		[]string{"type"},
	)
)

// Registration metrics
var (
	// RegistrationsTotal tracks staff registrations.
	RegistrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Total staff registrations",
		},
	)

	// RegistrationsThrottledTotal tracks registrations refused by rate limiting.
	RegistrationsThrottledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "registrations_throttled_total",
			Help: "Registration attempts refused by per-IP rate limiting",
		},
	)
)
