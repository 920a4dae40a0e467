package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce        sync.Once
	httpRequestsTotal  *prometheus.CounterVec
	httpLatencySeconds *prometheus.HistogramVec
	httpErrorsTotal    *prometheus.CounterVec
	scoreOutcomesTotal  *prometheus.CounterVec
	questionFallbacks   prometheus.Counter
	sessionConflicts    prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mockprep_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mockprep_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mockprep_http_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		scoreOutcomesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mockprep_score_outcomes_total",
			Help: "Scored answers partitioned by how the score was obtained.",
		}, []string{"source", "matcher"})

		questionFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mockprep_question_fallbacks_total",
			Help: "Question generations answered with the built-in fallback list.",
		})

		sessionConflicts = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mockprep_session_conflicts_total",
			Help: "Concurrent answer submissions that had to be re-applied.",
		})

		prometheus.MustRegister(httpRequestsTotal, httpLatencySeconds, httpErrorsTotal, scoreOutcomesTotal, questionFallbacks, sessionConflicts)
	})
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the request latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter of 4xx and 5xx responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// ScoreOutcomes exposes the counter of scored answers by extraction path.
func ScoreOutcomes() *prometheus.CounterVec {
	RegisterMetrics()
	return scoreOutcomesTotal
}

// QuestionFallbacks exposes the counter of fallback question lists served.
func QuestionFallbacks() prometheus.Counter {
	RegisterMetrics()
	return questionFallbacks
}

// SessionConflicts exposes the counter of optimistic-lock retries.
func SessionConflicts() prometheus.Counter {
	RegisterMetrics()
	return sessionConflicts
}
