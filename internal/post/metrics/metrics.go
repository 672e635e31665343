package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the post module. Mutation counters
// are labelled by action so the audit trail and the metrics can be
// cross-checked.
type Metrics struct {
	Mutations        *prometheus.CounterVec
	ArchiveToggles   prometheus.Counter
	MutationDuration prometheus.Histogram
	PublicCacheHits  prometheus.Counter
	PublicCacheMiss  prometheus.Counter
}

// New creates a Metrics instance with all post module metrics registered.
func New() *Metrics {
	return &Metrics{
		Mutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "inkwell_post_mutations_total",
			Help: "Total number of committed post mutations by action",
		}, []string{"action"}),
		ArchiveToggles: promauto.NewCounter(prometheus.CounterOpts{
			Name: "inkwell_post_archive_toggles_total",
			Help: "Total number of superuser archive flag changes",
		}),
		MutationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "inkwell_post_mutation_duration_seconds",
			Help:    "Duration of post mutations including the audit write",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		PublicCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "inkwell_public_cache_hits_total",
			Help: "Public post listing served from cache",
		}),
		PublicCacheMiss: promauto.NewCounter(prometheus.CounterOpts{
			Name: "inkwell_public_cache_misses_total",
			Help: "Public post listing served from the store",
		}),
	}
}

// IncrementMutation records a committed mutation for an action label.
func (m *Metrics) IncrementMutation(action string) {
	m.Mutations.WithLabelValues(action).Inc()
}

// ObserveMutation records the duration of a mutation. Call with
// time.Now() captured at the start of the operation.
func (m *Metrics) ObserveMutation(start time.Time) {
	m.MutationDuration.Observe(time.Since(start).Seconds())
}
