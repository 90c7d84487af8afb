// Package metrics exposes Prometheus collectors for backend calls and
// workflow outcomes.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bookpot_admin"

// Recorder groups the dashboard's collectors. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	apiRequests      *prometheus.CounterVec
	apiDuration      *prometheus.HistogramVec
	workflowOutcomes *prometheus.CounterVec
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Backend API requests by endpoint and response status (0 for network failures).",
		}, []string{"endpoint", "status"}),
		apiDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Backend API request latency by endpoint.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		workflowOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workflow",
			Name:      "outcomes_total",
			Help:      "Completed workflows by name and outcome.",
		}, []string{"workflow", "outcome"}),
	}
	reg.MustRegister(r.apiRequests, r.apiDuration, r.workflowOutcomes)
	return r
}

// ObserveRequest records one backend call.
func (r *Recorder) ObserveRequest(endpoint string, status int, took time.Duration) {
	if r == nil {
		return
	}
	r.apiRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	r.apiDuration.WithLabelValues(endpoint).Observe(took.Seconds())
}

// ObserveWorkflow records how a workflow finished, e.g. ("ebook_assets", "failure").
func (r *Recorder) ObserveWorkflow(workflow, outcome string) {
	if r == nil {
		return
	}
	r.workflowOutcomes.WithLabelValues(workflow, outcome).Inc()
}
