// Package metrics holds process-level Prometheus metrics. Module
// metrics live next to the module they observe.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	UsersCreated prometheus.Counter
	UsersDeleted prometheus.Counter
}

// New creates and registers the process metrics.
func New() *Metrics {
	return &Metrics{
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "inkwell_users_created_total",
			Help: "Total number of provisioned user accounts",
		}),
		UsersDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "inkwell_users_deleted_total",
			Help: "Total number of deleted user accounts",
		}),
	}
}

// IncrementUsersCreated records a provisioned account.
func (m *Metrics) IncrementUsersCreated() {
	m.UsersCreated.Inc()
}

// IncrementUsersDeleted records a deleted account.
func (m *Metrics) IncrementUsersDeleted() {
	m.UsersDeleted.Inc()
}
