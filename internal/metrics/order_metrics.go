// Package metrics exposes order lifecycle and stock metrics to Prometheus.
package metrics

import (
	"time"

	"onlineshop/internal/core/application/usecases/commands"
	"onlineshop/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
)

// Transition outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

type OrderMetrics struct {
	transitions     *prometheus.CounterVec
	unitsMoved      *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	lowStock        prometheus.Gauge
}

var _ commands.Observer = (*OrderMetrics)(nil)

// NewOrderMetrics registers the collectors on registerer, or on the default
// registry when registerer is nil.
func NewOrderMetrics(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &OrderMetrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shop_order_transitions_total",
			Help: "Order lifecycle commands by action and outcome",
		}, []string{"action", "outcome"}),
		unitsMoved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shop_stock_units_moved_total",
			Help: "Stock units taken out by placements or put back by returns",
		}, []string{"direction"}),
		commandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shop_order_command_duration_seconds",
			Help:    "Duration of order lifecycle commands in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		}, []string{"action"}),
		lowStock: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "shop_low_stock_products",
			Help: "Products at or below the low stock threshold at the last report",
		}),
	}

	registerer.MustRegister(m.transitions, m.unitsMoved, m.commandDuration, m.lowStock)
	return m
}

func (m *OrderMetrics) CommandHandled(action string, err error, elapsed time.Duration) {
	m.transitions.WithLabelValues(action, outcomeOf(err)).Inc()
	m.commandDuration.WithLabelValues(action).Observe(elapsed.Seconds())
}

func (m *OrderMetrics) StockMoved(direction string, units int) {
	if units <= 0 {
		return
	}
	m.unitsMoved.WithLabelValues(direction).Add(float64(units))
}

func (m *OrderMetrics) SetLowStockProducts(count int) {
	m.lowStock.Set(float64(count))
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errs.IsBusinessFailure(err):
		return OutcomeRejected
	default:
		return OutcomeError
	}
}
