// Package metrics exposes board counters to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/memoryboard/internal/models"
)

const namespace = "memoryboard"

// Metrics holds the board counters.
type Metrics struct {
	likes    *prometheus.CounterVec
	badges   *prometheus.CounterVec
	deleted  *prometheus.CounterVec
	failures *prometheus.CounterVec
	rpc      *prometheus.HistogramVec
}

// New creates the counters and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		likes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "likes_total",
			Help:      "Likes received, by entity kind.",
		}, []string{"kind"}),
		badges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "badges_granted_total",
			Help:      "Badges granted to groups, by badge.",
		}, []string{"badge"}),
		deleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cascade_deleted_total",
			Help:      "Entities removed by cascading deletes, by entity kind.",
		}, []string{"kind"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "followup_failures_total",
			Help:      "Badge evaluations and cascades that failed after the primary write.",
		}, []string{"step"}),
		rpc: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency, by procedure and result code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
	}
	reg.MustRegister(m.likes, m.badges, m.deleted, m.failures, m.rpc)
	return m
}

// Liked counts one like on an entity of the given kind.
func (m *Metrics) Liked(kind string) {
	m.likes.WithLabelValues(kind).Inc()
}

// Granted counts newly granted badges.
func (m *Metrics) Granted(badges ...models.Badge) {
	for _, b := range badges {
		m.badges.WithLabelValues(string(b)).Inc()
	}
}

// Deleted counts n entities of kind removed by a cascade.
func (m *Metrics) Deleted(kind string, n int) {
	if n > 0 {
		m.deleted.WithLabelValues(kind).Add(float64(n))
	}
}

// Failed counts a failed follow-up step such as "badges" or "cascade".
func (m *Metrics) Failed(step string) {
	m.failures.WithLabelValues(step).Inc()
}

// ObserveRPC records the latency of one RPC.
func (m *Metrics) ObserveRPC(procedure, code string, elapsed time.Duration) {
	m.rpc.WithLabelValues(procedure, code).Observe(elapsed.Seconds())
}
