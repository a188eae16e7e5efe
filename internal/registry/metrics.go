package registry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	resultAccepted      = "accepted"
	resultInvalidJSON   = "invalid_json"
	resultInvalidFields = "invalid_fields"
	resultTooLarge      = "too_large"
)

type Metrics struct {
	registry      *prometheus.Registry
	statusUpdates *prometheus.CounterVec
	targetsServed prometheus.Counter
}

// NewMetrics builds a private registry so several handlers can coexist in
// one process (tests) without colliding on the global one.
func NewMetrics(store *Store) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		statusUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statusd_status_updates_total",
			Help: "Machine status submissions by outcome.",
		}, []string{"result"}),
		targetsServed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "statusd_crawl_targets_served_total",
			Help: "Crawl target URLs handed out.",
		}),
	}

	m.registry.MustRegister(
		m.statusUpdates,
		m.targetsServed,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "statusd_machines_known",
			Help: "Machines currently present in the status registry.",
		}, func() float64 {
			return float64(store.Len())
		}),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeUpdate(result string) {
	m.statusUpdates.WithLabelValues(result).Inc()
}

func (m *Metrics) observeTargets(n int) {
	m.targetsServed.Add(float64(n))
}
