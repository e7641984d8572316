package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestPharmacyMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPharmacyMetrics(reg)

	m.ObserveReconcile("ok", 250*time.Millisecond)
	m.IncReconcileFailure("vendora")
	m.IncOrderSubmitted("success")
	m.IncOrderSubmitted("success")
	m.IncCouponApplied("")

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := map[string]*dto.MetricFamily{}
	for _, fam := range families {
		byName[fam.GetName()] = fam
	}

	require.Contains(t, byName, "pharmacy_reconcile_duration_seconds")
	require.Contains(t, byName, "pharmacy_reconcile_item_failures")

	orders := byName["pharmacy_orders_submitted"]
	require.Len(t, orders.GetMetric(), 1)
	require.Equal(t, float64(2), orders.GetMetric()[0].GetCounter().GetValue())

	coupons := byName["pharmacy_coupons_applied"]
	require.Equal(t, "unknown", coupons.GetMetric()[0].GetLabel()[0].GetValue())
}

func TestPharmacyMetricsNilSafe(t *testing.T) {
	var m *PharmacyMetrics
	m.ObserveReconcile("ok", time.Second)
	m.IncOrderSubmitted("failure")

	unregistered := NewPharmacyMetrics(nil)
	unregistered.IncReconcileFailure("vendorb")
}
