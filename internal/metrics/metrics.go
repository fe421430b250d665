// Package metrics holds the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation paths, used as the "path" label of RecommendationsServed.
const (
	PathNoPreferences = "no_preferences"
	PathExploration   = "exploration"
	PathNoThemes      = "no_themes"
	PathThemed        = "themed"
	PathThemeFallback = "theme_fallback"
	PathLastResort    = "last_resort"
	PathEmptyCatalog  = "empty_catalog"
)

var (
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "joke_recommendations_total",
			Help: "Recommendations served, by the selection path that produced them",
		},
		[]string{"path"},
	)

	FeedbackRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "joke_feedback_total",
			Help: "Feedback events processed, by verdict and outcome",
		},
		[]string{"verdict", "outcome"},
	)

	PreferenceUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "joke_preference_updates_total",
			Help: "Per-theme preference updates, by outcome",
		},
		[]string{"outcome"},
	)

	JokesSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "joke_submissions_total",
			Help: "Joke submissions, by outcome",
		},
		[]string{"outcome"},
	)

	ViewHistoryUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "joke_view_history_users",
			Help: "Users with an in-memory view history",
		},
	)

	// Circuit breaker metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Requests through a circuit breaker, by result",
		},
		[]string{"name", "result"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)
