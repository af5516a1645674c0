package ai

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"storyteller/internal/model"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storyteller_ai_requests_total",
			Help: "Total number of requests to the AI API.",
		},
		[]string{"operation", "status"},
	)
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storyteller_ai_request_duration_seconds",
			Help:    "Histogram of AI API request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	promptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storyteller_ai_prompt_tokens",
			Help:    "Histogram of prompt token counts.",
			Buckets: prometheus.LinearBuckets(250, 250, 20),
		},
		[]string{"model"},
	)
	completionTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storyteller_ai_completion_tokens",
			Help:    "Histogram of completion token counts.",
			Buckets: prometheus.LinearBuckets(100, 100, 20),
		},
		[]string{"model"},
	)
)

func observeRequest(operation, status string, elapsed time.Duration) {
	requestsTotal.With(prometheus.Labels{"operation": operation, "status": status}).Inc()
	requestDuration.With(prometheus.Labels{"operation": operation}).Observe(elapsed.Seconds())
}

func observeUsage(modelName string, usage model.Usage) {
	if usage.TotalTokens == 0 {
		return
	}
	promptTokens.With(prometheus.Labels{"model": modelName}).Observe(float64(usage.PromptTokens))
	completionTokens.With(prometheus.Labels{"model": modelName}).Observe(float64(usage.CompletionTokens))
}
