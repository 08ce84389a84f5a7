package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "agri_dashboard"

// Metrics holds the Prometheus counters, histograms, and gauges for the dashboard.
type Metrics struct {
	// Load metrics. Dataset-labelled vectors use label dataset={water,nutrient,energy,land}.
	RecordsLoaded *prometheus.GaugeVec
	RowsDropped   *prometheus.GaugeVec
	LoadDuration  prometheus.Histogram
	LoadErrors    prometheus.Counter
	CatalogReady  prometheus.Gauge

	// Publishing metrics.
	RecordsPublished prometheus.Counter
	PublishErrors    prometheus.Counter

	Queries *prometheus.CounterVec // labels: kind={records,stats,kpis,correlation,<chart>}, outcome={ok,error}
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RecordsLoaded,
		m.RowsDropped,
		m.LoadDuration,
		m.LoadErrors,
		m.CatalogReady,
		m.RecordsPublished,
		m.PublishErrors,
		m.Queries,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// NewUnregisteredMetrics creates Metrics that are never exported, for one-shot
// commands that have no /metrics endpoint.
func NewUnregisteredMetrics() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RecordsLoaded: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_loaded",
			Help:      "Normalized records held in the catalog per dataset.",
		}, []string{"dataset"}),
		RowsDropped: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rows_dropped",
			Help:      "Raw rows removed by discriminants or unusable years during the last load.",
		}, []string{"dataset"}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Duration of a full four-dataset load.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		LoadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_errors_total",
			Help:      "Total failed catalog loads.",
		}),
		CatalogReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_ready",
			Help:      "1 when a catalog is loaded and serving, 0 otherwise.",
		}),
		RecordsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_published_total",
			Help:      "Total normalized records written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Total failed dataset publishes.",
		}),
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Dashboard queries by kind and outcome.",
		}, []string{"kind", "outcome"}),
	}
}
