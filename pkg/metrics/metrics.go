package metrics

import "github.com/prometheus/client_golang/prometheus"

// CheckoutMetrics records checkout analyses and discount rejections.
type CheckoutMetrics struct {
	analyses   *prometheus.CounterVec
	rejections prometheus.Counter
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	analyses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_analyses_total",
		Help: "Completed order analyses by payment type.",
	}, []string{"payment_type"})
	rejections := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_discount_rejections_total",
		Help: "Discount codes rejected during checkout validation.",
	})
	reg.MustRegister(analyses, rejections)
	return &CheckoutMetrics{
		analyses:   analyses,
		rejections: rejections,
	}
}

// IncAnalysis counts one completed analysis for the given payment type.
func (m *CheckoutMetrics) IncAnalysis(paymentType string) {
	if m == nil || m.analyses == nil {
		return
	}
	if paymentType == "" {
		paymentType = "unknown"
	}
	m.analyses.WithLabelValues(paymentType).Inc()
}

// IncDiscountRejection counts one rejected discount code.
func (m *CheckoutMetrics) IncDiscountRejection() {
	if m == nil || m.rejections == nil {
		return
	}
	m.rejections.Inc()
}

// OrderMetrics records order lifecycle movements.
type OrderMetrics struct {
	transitions *prometheus.CounterVec
	illegal     prometheus.Counter
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_transitions_total",
		Help: "Committed order status transitions.",
	}, []string{"from", "to"})
	illegal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_status_transitions_rejected_total",
		Help: "Status transition attempts rejected by the lifecycle table.",
	})
	reg.MustRegister(transitions, illegal)
	return &OrderMetrics{
		transitions: transitions,
		illegal:     illegal,
	}
}

// IncTransition counts one committed transition.
func (m *OrderMetrics) IncTransition(from, to string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(from, to).Inc()
}

// IncIllegalTransition counts one rejected transition attempt.
func (m *OrderMetrics) IncIllegalTransition() {
	if m == nil || m.illegal == nil {
		return
	}
	m.illegal.Inc()
}
