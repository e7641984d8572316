package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PharmacyMetrics records the cart/checkout instrumentation surface.
type PharmacyMetrics struct {
	reconcileDuration *prometheus.HistogramVec
	reconcileFailures *prometheus.CounterVec
	ordersSubmitted   *prometheus.CounterVec
	couponsApplied    *prometheus.CounterVec
}

// NewPharmacyMetrics registers the pharmacy metrics on the provided registerer.
func NewPharmacyMetrics(reg prometheus.Registerer) *PharmacyMetrics {
	if reg == nil {
		return &PharmacyMetrics{}
	}
	reconcileDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pharmacy_reconcile_duration_seconds",
		Help:    "Duration of cart inventory reconciliation batches.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	reconcileFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pharmacy_reconcile_item_failures",
		Help: "Cart lines whose inventory lookup failed.",
	}, []string{"vendor"})
	ordersSubmitted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pharmacy_orders_submitted",
		Help: "Pharmacy order submissions by outcome.",
	}, []string{"outcome"})
	couponsApplied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pharmacy_coupons_applied",
		Help: "Coupon application attempts by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(reconcileDuration, reconcileFailures, ordersSubmitted, couponsApplied)
	return &PharmacyMetrics{
		reconcileDuration: reconcileDuration,
		reconcileFailures: reconcileFailures,
		ordersSubmitted:   ordersSubmitted,
		couponsApplied:    couponsApplied,
	}
}

// ObserveReconcile records the duration of a reconciliation batch.
func (m *PharmacyMetrics) ObserveReconcile(outcome string, duration time.Duration) {
	if m == nil || m.reconcileDuration == nil {
		return
	}
	m.reconcileDuration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncReconcileFailure counts a failed per-item inventory lookup.
func (m *PharmacyMetrics) IncReconcileFailure(vendor string) {
	if m == nil || m.reconcileFailures == nil {
		return
	}
	m.reconcileFailures.WithLabelValues(normalizeLabel(vendor)).Inc()
}

// IncOrderSubmitted counts an order submission attempt.
func (m *PharmacyMetrics) IncOrderSubmitted(outcome string) {
	if m == nil || m.ordersSubmitted == nil {
		return
	}
	m.ordersSubmitted.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncCouponApplied counts a coupon application attempt.
func (m *PharmacyMetrics) IncCouponApplied(outcome string) {
	if m == nil || m.couponsApplied == nil {
		return
	}
	m.couponsApplied.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
