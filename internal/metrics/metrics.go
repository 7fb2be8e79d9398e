// package metrics provides Prometheus collection for engine operations.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector records engine measurements against a Prometheus registry.
// It implements collections.MetricsRecorder.
type Collector struct {
	operations    *prometheus.CounterVec
	itemsAdded    *prometheus.CounterVec
	itemsFailed   *prometheus.CounterVec
	cycleRejected prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with the given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ytshelf_operations_total",
			Help: "Engine operations by name and outcome",
		}, []string{"operation", "status"}),
		itemsAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ytshelf_items_added_total",
			Help: "Items linked to collections by kind",
		}, []string{"kind"}),
		itemsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ytshelf_items_failed_total",
			Help: "Item link attempts that failed by kind",
		}, []string{"kind"}),
		cycleRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ytshelf_cycle_rejected_total",
			Help: "Moves rejected because they would create a cycle",
		}),
	}

	reg.MustRegister(
		c.operations,
		c.itemsAdded,
		c.itemsFailed,
		c.cycleRejected,
	)

	return c
}

// RecordOperation counts one engine operation with its outcome.
func (c *Collector) RecordOperation(op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.operations.WithLabelValues(op, status).Inc()
}

// RecordItemsAdded counts items linked to a collection.
func (c *Collector) RecordItemsAdded(kind string, count int) {
	if count > 0 {
		c.itemsAdded.WithLabelValues(kind).Add(float64(count))
	}
}

// RecordItemsFailed counts item link attempts that failed.
func (c *Collector) RecordItemsFailed(kind string, count int) {
	if count > 0 {
		c.itemsFailed.WithLabelValues(kind).Add(float64(count))
	}
}

// RecordCycleRejected counts a move rejected by cycle validation.
func (c *Collector) RecordCycleRejected() {
	c.cycleRejected.Inc()
}

// HTTPMetrics observes request latency on the API surface.
type HTTPMetrics struct {
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics creates an HTTPMetrics and registers its histogram with the
// given registry.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ytshelf_http_request_duration_seconds",
			Help:    "HTTP request latency by method and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "status"}),
	}

	reg.MustRegister(m.duration)
	return m
}

// Observe records one request's latency.
func (m *HTTPMetrics) Observe(method string, status int, seconds float64) {
	m.duration.WithLabelValues(method, strconv.Itoa(status)).Observe(seconds)
}
