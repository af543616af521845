package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/learnhub/internal/domain"
)

// Screen data Prometheus metrics.
var (
	FilterQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "learnhub",
			Name:      "filter_queries_total",
			Help:      "Total number of list filter queries",
		},
		[]string{"screen", "query"}, // query: "empty" / "text"
	)

	FilterResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "learnhub",
			Name:      "filter_results",
			Help:      "Number of items returned by a list filter",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
		[]string{"screen"},
	)

	ChartRendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "learnhub",
			Name:      "chart_renders_total",
			Help:      "Total number of normalized charts served",
		},
		[]string{"chart"},
	)

	SignInTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "learnhub",
			Name:      "sign_in_total",
			Help:      "Sign-in attempts by method and outcome",
		},
		[]string{"method", "status"},
	)

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "learnhub",
			Name:      "active_sessions",
			Help:      "Sessions currently held by the session registry",
		},
	)
)

var screenMetricsRegistered bool

// RegisterScreenMetrics registers the screen data metrics. Must be called once from main.
func RegisterScreenMetrics() {
	if screenMetricsRegistered {
		return
	}
	prometheus.MustRegister(FilterQueriesTotal)
	prometheus.MustRegister(FilterResults)
	prometheus.MustRegister(ChartRendersTotal)
	prometheus.MustRegister(SignInTotal)
	prometheus.MustRegister(ActiveSessions)
	screenMetricsRegistered = true
}

// ObserveFilter records one filter query for a screen.
func ObserveFilter(screen, query string, results int) {
	kind := "text"
	if query == "" {
		kind = "empty"
	}
	FilterQueriesTotal.WithLabelValues(screen, kind).Inc()
	FilterResults.WithLabelValues(screen).Observe(float64(results))
}

// ObserveSignIn records a sign-in attempt as ok, rejected (user error) or error.
func ObserveSignIn(method string, err error) {
	SignInTotal.WithLabelValues(method, signInStatus(err)).Inc()
}

func signInStatus(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrMissingCredentials),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrOAuthStateMismatch):
		return "rejected"
	default:
		return "error"
	}
}
