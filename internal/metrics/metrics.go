package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Issue outcomes.
const (
	OutcomeIssued    = "issued"
	OutcomeDuplicate = "duplicate"
	OutcomeConflict  = "conflict"
	OutcomeError     = "error"
)

// Config sets the constant labels attached to every series.
type Config struct {
	ServiceName string
	Environment string
}

// Metrics holds the engine's Prometheus instruments. A nil *Metrics is a
// valid no-op.
type Metrics struct {
	computations      *prometheus.CounterVec
	lineItems         prometheus.Histogram
	reconcileFailures *prometheus.CounterVec
	numberIssues      *prometheus.CounterVec
	numberRetries     prometheus.Counter
	issueDuration     prometheus.Histogram
}

// New creates the instruments and registers them with registerer
// (prometheus.DefaultRegisterer when nil).
func New(registerer prometheus.Registerer, cfg Config) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "gstcore"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	m := &Metrics{
		computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "gstcore_totals_computed_total",
			Help:        "Invoice totals computations by supply type.",
			ConstLabels: constLabels,
		}, []string{"supply_type"}),
		lineItems: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "gstcore_totals_line_items",
			Help:        "Line items per totals computation.",
			Buckets:     []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 500},
			ConstLabels: constLabels,
		}),
		reconcileFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "gstcore_reconcile_failures_total",
			Help:        "Arithmetic reconciliation checks that failed, by rule.",
			ConstLabels: constLabels,
		}, []string{"rule"}),
		numberIssues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "gstcore_invoice_numbers_total",
			Help:        "Invoice number issue attempts by source and outcome.",
			ConstLabels: constLabels,
		}, []string{"source", "outcome"}),
		numberRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "gstcore_invoice_number_retries_total",
			Help:        "Invoice number issues retried after a duplicate.",
			ConstLabels: constLabels,
		}),
		issueDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "gstcore_invoice_number_issue_seconds",
			Help:        "Latency of issuing an invoice number.",
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			ConstLabels: constLabels,
		}),
	}

	registerer.MustRegister(
		m.computations,
		m.lineItems,
		m.reconcileFailures,
		m.numberIssues,
		m.numberRetries,
		m.issueDuration,
	)
	return m
}

// ObserveComputation records one totals computation.
func (m *Metrics) ObserveComputation(supplyType string, items int) {
	if m == nil {
		return
	}
	m.computations.WithLabelValues(supplyType).Inc()
	m.lineItems.Observe(float64(items))
}

// IncReconcileFailure counts a failed reconciliation rule.
func (m *Metrics) IncReconcileFailure(rule string) {
	if m == nil {
		return
	}
	m.reconcileFailures.WithLabelValues(rule).Inc()
}

// ObserveIssue records the outcome of an invoice number issue.
func (m *Metrics) ObserveIssue(source, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.numberIssues.WithLabelValues(source, outcome).Inc()
	m.issueDuration.Observe(duration.Seconds())
}

// IncRetry counts a retry after a duplicate number.
func (m *Metrics) IncRetry() {
	if m == nil {
		return
	}
	m.numberRetries.Inc()
}
