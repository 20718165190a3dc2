// Package metrics holds the gateway's Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder tracks tool invocation outcomes. A nil *Recorder is a valid
// no-op, so the engine never branches on whether metrics are enabled.
type Recorder struct {
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewRecorder builds the collectors and registers them on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		invocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gatehouse_invocations_total",
				Help: "Total number of tool invocations by outcome",
			},
			[]string{"tool", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gatehouse_invocation_duration_seconds",
				Help:    "Duration of tool invocations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
	}
	reg.MustRegister(r.invocations, r.duration)
	return r
}

// Observe records one finished invocation. outcome is "success" or the
// fault kind.
func (r *Recorder) Observe(tool, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.invocations.WithLabelValues(tool, outcome).Inc()
	r.duration.WithLabelValues(tool).Observe(elapsed.Seconds())
}
