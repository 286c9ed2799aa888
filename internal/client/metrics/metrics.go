package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the client module. Tracks record
// creation/soft-deletion counts and critical path durations.
type Metrics struct {
	ClientsCreated     prometheus.Counter
	ClientsSoftDeleted prometheus.Counter
	CreateDuration     prometheus.Histogram
	UpdateDuration     prometheus.Histogram
	ListDuration       prometheus.Histogram
}

// New creates a Metrics instance with all client module metrics registered.
func New() *Metrics {
	return &Metrics{
		ClientsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crmsimples_clients_created_total",
			Help: "Total number of client records created",
		}),
		ClientsSoftDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crmsimples_clients_soft_deleted_total",
			Help: "Total number of client records marked INACTIVE via delete",
		}),
		CreateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "crmsimples_client_create_duration_seconds",
			Help:    "Duration of client create operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		UpdateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "crmsimples_client_update_duration_seconds",
			Help:    "Duration of client update operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		ListDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "crmsimples_client_list_duration_seconds",
			Help:    "Duration of client list operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementClientsCreated records a successful client creation.
func (m *Metrics) IncrementClientsCreated() {
	m.ClientsCreated.Inc()
}

// IncrementClientsSoftDeleted records a successful soft deletion.
func (m *Metrics) IncrementClientsSoftDeleted() {
	m.ClientsSoftDeleted.Inc()
}

// ObserveCreate records the duration of a create operation.
// Call with time.Now() captured at the start of the operation.
func (m *Metrics) ObserveCreate(start time.Time) {
	m.CreateDuration.Observe(time.Since(start).Seconds())
}

// ObserveUpdate records the duration of an update operation.
func (m *Metrics) ObserveUpdate(start time.Time) {
	m.UpdateDuration.Observe(time.Since(start).Seconds())
}

// ObserveList records the duration of a list operation.
func (m *Metrics) ObserveList(start time.Time) {
	m.ListDuration.Observe(time.Since(start).Seconds())
}
