package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeApplied = "applied"
	OutcomeFailed  = "failed"
)

// Metrics counts engine activity. A nil *Metrics is valid and records nothing.
type Metrics struct {
	transactions *prometheus.CounterVec
	malformed    prometheus.Counter
	accounts     prometheus.Gauge
	locked       prometheus.Gauge
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		transactions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_transactions_total",
				Help: "Transactions applied by the engine, by type and outcome",
			},
			[]string{"kind", "outcome"},
		),
		malformed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "payments_malformed_rows_total",
				Help: "Input rows skipped because they could not be decoded",
			},
		),
		accounts: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "payments_accounts",
				Help: "Accounts known to the engine",
			},
		),
		locked: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "payments_locked_accounts",
				Help: "Accounts locked by a chargeback",
			},
		),
	}
}

func (m *Metrics) Transaction(kind, outcome string) {
	if m == nil {
		return
	}
	m.transactions.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) MalformedRow() {
	if m == nil {
		return
	}
	m.malformed.Inc()
}

func (m *Metrics) SetAccounts(total, locked int) {
	if m == nil {
		return
	}
	m.accounts.Set(float64(total))
	m.locked.Set(float64(locked))
}

// WriteFile writes everything g gathers to path in the text exposition
// format, for pickup by a node_exporter textfile collector.
func WriteFile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}
	return nil
}
