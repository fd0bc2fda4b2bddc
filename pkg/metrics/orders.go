package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics records order lifecycle activity.
type OrderMetrics struct {
	transitions *prometheus.CounterVec
	rejected    *prometheus.CounterVec
	byStatus    *prometheus.GaugeVec
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_transitions_total",
		Help: "Committed order status transitions.",
	}, []string{"from", "to"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_transitions_rejected_total",
		Help: "Order transition commands rejected before mutating.",
	}, []string{"reason"})
	byStatus := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "orders_by_status",
		Help: "Current number of orders per status.",
	}, []string{"status"})
	reg.MustRegister(transitions, rejected, byStatus)
	return &OrderMetrics{
		transitions: transitions,
		rejected:    rejected,
		byStatus:    byStatus,
	}
}

// ObserveTransition counts one committed transition.
func (o *OrderMetrics) ObserveTransition(from, to string) {
	if o == nil || o.transitions == nil {
		return
	}
	o.transitions.WithLabelValues(normalizeLabel(from), normalizeLabel(to)).Inc()
}

// IncRejected counts one rejected transition command.
func (o *OrderMetrics) IncRejected(reason string) {
	if o == nil || o.rejected == nil {
		return
	}
	o.rejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

// SetStatusCount sets the gauge for one status bucket.
func (o *OrderMetrics) SetStatusCount(status string, count int) {
	if o == nil || o.byStatus == nil {
		return
	}
	o.byStatus.WithLabelValues(normalizeLabel(status)).Set(float64(count))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
