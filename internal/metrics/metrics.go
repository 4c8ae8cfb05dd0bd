// Package metrics exposes dexview's prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ziadkadry99/dexview/internal/catalog"
)

const namespace = "dexview"

// Metrics holds the collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	fetchFailures *prometheus.CounterVec
	fragments     *prometheus.CounterVec
	overlayOpens  prometheus.Counter
	notices       *prometheus.CounterVec
	sessions      prometheus.Gauge
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		fetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_failures_total",
			Help:      "Failed upstream fetches by record stream.",
		}, []string{"source"}),
		fragments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fragments_stored_total",
			Help:      "Record fragments merged into the catalog by slot.",
		}, []string{"slot"}),
		overlayOpens: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "overlay_opens_total",
			Help:      "Detail overlays opened.",
		}),
		notices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notices_total",
			Help:      "Notices raised to page sessions by kind.",
		}, []string{"kind"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Connected page sessions.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.fetchFailures,
		m.fragments,
		m.overlayOpens,
		m.notices,
		m.sessions,
	)
	return m
}

// FragmentStored implements catalog.Observer.
func (m *Metrics) FragmentStored(slot catalog.Slot) {
	m.fragments.WithLabelValues(string(slot)).Inc()
}

// FetchFailed implements catalog.Observer.
func (m *Metrics) FetchFailed(slot catalog.Slot) {
	m.fetchFailures.WithLabelValues(string(slot)).Inc()
}

func (m *Metrics) OverlayOpened() { m.overlayOpens.Inc() }

func (m *Metrics) NoticeRaised(kind string) { m.notices.WithLabelValues(kind).Inc() }

func (m *Metrics) SessionStarted() { m.sessions.Inc() }

func (m *Metrics) SessionEnded() { m.sessions.Dec() }

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
