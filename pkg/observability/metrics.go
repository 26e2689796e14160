package observability

import (
	"context"

	"github.com/aretw0/flowserve/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors describing engine activity.
type Metrics struct {
	Runs     *prometheus.CounterVec
	Nodes    *prometheus.CounterVec
	Waves    prometheus.Histogram
	Duration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flowserve_runs_total",
				Help: "Total number of workflow runs by final status",
			},
			[]string{"status"},
		),
		Nodes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flowserve_node_executions_total",
				Help: "Total number of node executions by node type",
			},
			[]string{"node_type"},
		),
		Waves: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "flowserve_run_waves",
				Help:    "Number of waves executed per run",
				Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 1000},
			},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "flowserve_run_duration_seconds",
				Help:    "Duration of workflow runs",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Runs, m.Nodes, m.Waves, m.Duration)
	}
	return m
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunEnd: func(_ context.Context, e *domain.RunEvent) {
			m.Runs.WithLabelValues(e.Status).Inc()
			m.Waves.Observe(float64(e.Waves))
			m.Duration.Observe(e.Duration.Seconds())
		},
		OnNodeEnter: func(_ context.Context, e *domain.NodeEvent) {
			m.Nodes.WithLabelValues(string(e.NodeType)).Inc()
		},
	}
}
