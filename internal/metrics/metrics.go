// Package metrics provides process-local prometheus instrumentation for
// decide() calls. There is no HTTP exporter here -- no transport surface is
// in scope for this engine -- a caller that wants to serve /metrics
// registers Recorder's collectors on its own prometheus.Registerer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder wraps the counters/histograms the orchestrator updates per call.
// A nil *Recorder is valid and every method on it is a no-op, so callers
// that do not care about metrics can pass nil.
type Recorder struct {
	decisionsTotal    *prometheus.CounterVec
	solverStatusTotal *prometheus.CounterVec
	solveDuration     prometheus.Histogram
}

// NewRecorder builds a Recorder and registers its collectors on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		decisionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transferdecision_decisions_total",
			Help: "Count of TransferDecision outcomes by reasoning code.",
		}, []string{"code"}),
		solverStatusTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transferdecision_solver_status_total",
			Help: "Count of solver outcomes by status.",
		}, []string{"status"}),
		solveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "transferdecision_solve_duration_seconds",
			Help:    "Wall-clock duration of a single decide() call.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(r.decisionsTotal, r.solverStatusTotal, r.solveDuration)
	}
	return r
}

func (r *Recorder) ObserveDecision(code string) {
	if r == nil {
		return
	}
	r.decisionsTotal.WithLabelValues(code).Inc()
}

func (r *Recorder) ObserveSolverStatus(status string) {
	if r == nil {
		return
	}
	r.solverStatusTotal.WithLabelValues(status).Inc()
}

func (r *Recorder) ObserveSolveSeconds(seconds float64) {
	if r == nil {
		return
	}
	r.solveDuration.Observe(seconds)
}
