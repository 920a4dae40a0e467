package ai

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mockprep",
		Subsystem: "ai",
		Name:      "generation_duration_seconds",
		Help:      "Duration of text generation requests",
	}, []string{"provider", "model"})

	generationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mockprep",
		Subsystem: "ai",
		Name:      "generation_failures_total",
		Help:      "Number of failed text generation requests",
	}, []string{"provider", "model"})
)
