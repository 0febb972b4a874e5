package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "resuralph"

var (
	interactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "interactions_total",
		Help:      "Interactions received by command and outcome.",
	}, []string{"command", "outcome"})

	asyncJobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "async_jobs_total",
		Help:      "Async command jobs by command and outcome.",
	}, []string{"command", "outcome"})

	followupFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "followup_failures_total",
		Help:      "Follow-up webhook deliveries that failed after the error retry.",
	})

	commandDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "command_duration_ms",
		Help:      "Command handler duration in milliseconds.",
		Buckets:   []float64{10, 50, 100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000},
	})
)

// IncInteraction records one routed interaction.
func IncInteraction(command, outcome string) {
	interactionsTotal.WithLabelValues(command, outcome).Inc()
}

// IncAsyncJob records one background job result.
func IncAsyncJob(command, outcome string) {
	asyncJobsTotal.WithLabelValues(command, outcome).Inc()
}

// IncFollowupFailure records a follow-up that could not be delivered at all.
func IncFollowupFailure() {
	followupFailuresTotal.Inc()
}

// ObserveCommandDuration records a handler duration.
func ObserveCommandDuration(d time.Duration) {
	commandDuration.Observe(float64(d.Milliseconds()))
}

// Handler exposes metrics in Prometheus format.
func Handler() http.Handler {
	return promhttp.Handler()
}
