// Package metrics exposes the pipeline's Prometheus instrumentation: trigger
// counters by workflow type and outcome, stage latency, and side effect
// failure counts.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the pipeline's Prometheus collectors behind one private
// prometheus registry, keeping the /metrics surface limited to what the
// service itself registers.
type Registry struct {
	reg *prometheus.Registry

	TriggersTotal      *prometheus.CounterVec
	StageDurationSec   *prometheus.HistogramVec
	SideEffectFailures *prometheus.CounterVec
	RemindersSent      prometheus.Counter
}

// NewRegistry creates the pipeline metrics registry with all collectors
// registered.
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	triggers := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "freightflow_workflow_triggers_total",
		Help: "Workflow triggers by type and outcome.",
	}, []string{"workflow_type", "outcome"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "freightflow_workflow_stage_duration_seconds",
		Help:    "Stage handler latency by workflow type.",
		Buckets: prometheus.DefBuckets,
	}, []string{"workflow_type"})

	sideEffectFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "freightflow_side_effect_failures_total",
		Help: "External side effects (notifications, documents) that failed.",
	}, []string{"workflow_type"})

	remindersSent := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "freightflow_tender_reminders_sent_total",
		Help: "Reminder notifications sent to non-responding suppliers.",
	})

	r.MustRegister(triggers, duration, sideEffectFailures, remindersSent)
	return &Registry{
		reg:                r,
		TriggersTotal:      triggers,
		StageDurationSec:   duration,
		SideEffectFailures: sideEffectFailures,
		RemindersSent:      remindersSent,
	}
}

// ObserveTrigger records one trigger's outcome and duration.
func (r *Registry) ObserveTrigger(workflowType string, outcome string, duration time.Duration, failedSideEffects int) {
	r.TriggersTotal.WithLabelValues(workflowType, outcome).Inc()
	r.StageDurationSec.WithLabelValues(workflowType).Observe(duration.Seconds())
	if failedSideEffects > 0 {
		r.SideEffectFailures.WithLabelValues(workflowType).Add(float64(failedSideEffects))
	}
}

// Handler returns the HTTP handler serving this registry's metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
