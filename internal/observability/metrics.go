package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// dashboard render pipeline.
type Metrics struct {
	RenderPasses     prometheus.Counter
	SourceErrors     prometheus.Counter
	EmptyPasses      prometheus.Counter
	RowsIngested     prometheus.Histogram
	CoercionFailures prometheus.Counter
	DivergentRows    prometheus.Gauge

	FetchDuration prometheus.Histogram
	PassDuration  prometheus.Histogram

	// Alert publishing metrics.
	AlertsPublished    prometheus.Counter
	AlertPublishErrors prometheus.Counter
	AlertsEnabled      prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RenderPasses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "viveiro_dash",
			Name:      "render_passes_total",
			Help:      "Total completed render passes.",
		}),
		SourceErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "viveiro_dash",
			Name:      "source_errors_total",
			Help:      "Total render passes aborted because the sheet could not be fetched or parsed.",
		}),
		EmptyPasses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "viveiro_dash",
			Name:      "empty_passes_total",
			Help:      "Total render passes where the sheet loaded with zero data rows.",
		}),
		RowsIngested: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "viveiro_dash",
			Name:      "rows_ingested",
			Help:      "Number of data rows ingested per render pass.",
			Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2500},
		}),
		CoercionFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "viveiro_dash",
			Name:      "coercion_failures_total",
			Help:      "Total non-blank numeric cells that failed coercion.",
		}),
		DivergentRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "viveiro_dash",
			Name:      "divergent_rows",
			Help:      "Divergent rows detected in the most recent render pass.",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "viveiro_dash",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of the sheet CSV fetch.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		PassDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "viveiro_dash",
			Name:      "pass_duration_seconds",
			Help:      "Duration of a complete fetch-ingest-filter-detect-aggregate render pass.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		AlertsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "viveiro_dash",
			Name:      "alerts_published_total",
			Help:      "Total divergence alerts published to the alert topic.",
		}),
		AlertPublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "viveiro_dash",
			Name:      "alert_publish_errors_total",
			Help:      "Total failed alert publish attempts.",
		}),
		AlertsEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "viveiro_dash",
			Name:      "alerts_enabled",
			Help:      "1 when divergence alert publishing is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.RenderPasses,
		m.SourceErrors,
		m.EmptyPasses,
		m.RowsIngested,
		m.CoercionFailures,
		m.DivergentRows,
		m.FetchDuration,
		m.PassDuration,
		m.AlertsPublished,
		m.AlertPublishErrors,
		m.AlertsEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RenderPasses:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "viveiro_dash", Name: "render_passes_total"}),
		SourceErrors:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "viveiro_dash", Name: "source_errors_total"}),
		EmptyPasses:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "viveiro_dash", Name: "empty_passes_total"}),
		RowsIngested:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "viveiro_dash", Name: "rows_ingested"}),
		CoercionFailures:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "viveiro_dash", Name: "coercion_failures_total"}),
		DivergentRows:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "viveiro_dash", Name: "divergent_rows"}),
		FetchDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "viveiro_dash", Name: "fetch_duration_seconds"}),
		PassDuration:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "viveiro_dash", Name: "pass_duration_seconds"}),
		AlertsPublished:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "viveiro_dash", Name: "alerts_published_total"}),
		AlertPublishErrors: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "viveiro_dash", Name: "alert_publish_errors_total"}),
		AlertsEnabled:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "viveiro_dash", Name: "alerts_enabled"}),
	}
}
