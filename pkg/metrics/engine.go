package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics records write commits and subscription refresh activity.
type EngineMetrics struct {
	commits   *prometheus.CounterVec
	refreshes prometheus.Counter
	latency   prometheus.Histogram
}

// NewEngineMetrics registers the engine metrics on the provided registerer.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	if reg == nil {
		return &EngineMetrics{}
	}
	commits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_commits_total",
		Help: "Committed write transactions by operation.",
	}, []string{"op"})
	refreshes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "engine_view_refreshes_total",
		Help: "Projection re-evaluations delivered to subscribers.",
	})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "engine_view_refresh_seconds",
		Help:    "Duration of projection re-evaluation after a commit.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(commits, refreshes, latency)
	return &EngineMetrics{
		commits:   commits,
		refreshes: refreshes,
		latency:   latency,
	}
}

// IncCommit increments the commit counter for the named operation.
func (m *EngineMetrics) IncCommit(op string) {
	if m == nil || m.commits == nil {
		return
	}
	m.commits.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncRefresh increments the refresh counter.
func (m *EngineMetrics) IncRefresh() {
	if m == nil || m.refreshes == nil {
		return
	}
	m.refreshes.Inc()
}

// ObserveRefresh records how long a post-commit refresh took.
func (m *EngineMetrics) ObserveRefresh(duration time.Duration) {
	if m == nil || m.latency == nil {
		return
	}
	m.latency.Observe(duration.Seconds())
}

func normalizeLabel(op string) string {
	if op == "" {
		return "unknown"
	}
	return op
}
