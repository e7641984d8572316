// Package inventory reconciles cart lines against the vendor backends. Every
// line is checked concurrently; one failing lookup never blocks or invalidates
// the rest of the cart.
package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wellport/wellport-backend/internal/pharmacy/cart"
	"github.com/wellport/wellport-backend/pkg/enums"
	pkgerrors "github.com/wellport/wellport-backend/pkg/errors"
	"github.com/wellport/wellport-backend/pkg/logger"
	"github.com/wellport/wellport-backend/pkg/metrics"
	"go.uber.org/multierr"
)

// checker is the slice of a vendor gateway the reconciler needs.
type checker interface {
	Vendor() enums.PharmacyVendor
	CheckInventory(ctx context.Context, line cart.Line, contact cart.Contact) (cart.CheckResult, error)
}

type cartSaver interface {
	Save(ctx context.Context, userKey string, lines []cart.Line) error
}

// Reconciler fans inventory checks out per line and folds the results back
// into the stored cart.
type Reconciler struct {
	gateways map[enums.PharmacyVendor]checker
	carts    cartSaver
	logg     *logger.Logger
	metrics  *metrics.PharmacyMetrics
	timeout  time.Duration
}

// NewReconciler wires the reconciler. Metrics may be nil.
func NewReconciler(carts cartSaver, logg *logger.Logger, m *metrics.PharmacyMetrics, timeout time.Duration, gateways ...checker) (*Reconciler, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart saver is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if len(gateways) == 0 {
		return nil, fmt.Errorf("at least one vendor gateway is required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	byVendor := make(map[enums.PharmacyVendor]checker, len(gateways))
	for _, gw := range gateways {
		byVendor[gw.Vendor()] = gw
	}
	return &Reconciler{gateways: byVendor, carts: carts, logg: logg, metrics: m, timeout: timeout}, nil
}

// CheckOne verifies a single line against its vendor.
func (r *Reconciler) CheckOne(ctx context.Context, line cart.Line, contact cart.Contact) (cart.CheckResult, error) {
	gw, ok := r.gateways[line.Vendor]
	if !ok {
		return cart.CheckResult{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("no gateway for vendor %q", line.Vendor))
	}
	return gw.CheckInventory(ctx, line, contact)
}

// CheckAll reconciles every line concurrently. Results are folded in only
// after all checks settle, then the updated cart is persisted. The returned
// lines are always usable; the error aggregates per-item failures so the
// caller can log them.
func (r *Reconciler) CheckAll(ctx context.Context, userKey string, lines []cart.Line, contact cart.Contact) ([]cart.Line, error) {
	if len(lines) == 0 {
		return []cart.Line{}, nil
	}

	started := time.Now()
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	updated := make([]cart.Line, len(lines))
	copy(updated, lines)

	type itemResult struct {
		result cart.CheckResult
		err    error
	}
	results := make([]itemResult, len(lines))

	var wg sync.WaitGroup
	for i := range updated {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := r.CheckOne(ctx, updated[i], contact)
			results[i] = itemResult{result: result, err: err}
		}(i)
	}
	wg.Wait()

	var combined error
	succeeded := 0
	for i, res := range results {
		if res.err != nil {
			r.metrics.IncReconcileFailure(string(updated[i].Vendor))
			vctx := r.logg.WithVendor(ctx, string(updated[i].Vendor))
			r.logg.Warn(r.logg.WithField(vctx, "product_id", updated[i].ProductID), "inventory check failed for cart line")
			combined = multierr.Append(combined, fmt.Errorf("%s/%s: %w", updated[i].Vendor, updated[i].ProductID, res.err))
			continue
		}
		applyResult(&updated[i], res.result)
		succeeded++
	}

	// Persist whatever was learned, even on partial failure. Failed lines
	// simply keep their previous state.
	if succeeded > 0 {
		if err := r.carts.Save(ctx, userKey, updated); err != nil {
			combined = multierr.Append(combined, fmt.Errorf("persisting reconciled cart: %w", err))
		}
	}

	outcome := "ok"
	if combined != nil {
		outcome = "partial"
		if succeeded == 0 {
			outcome = "failed"
		}
	}
	r.metrics.ObserveReconcile(outcome, time.Since(started))

	return updated, combined
}

// applyResult folds a vendor check into the line: fresh cart reference, fresh
// snapshot, and updated last-known prices.
func applyResult(line *cart.Line, result cart.CheckResult) {
	snap := result.Snapshot
	line.ServerCartRefID = result.CartRefID
	line.Snapshot = &snap
	line.Available = snap.Available
	if snap.Price != nil {
		line.UnitMRP = *snap.Price
	}
	if snap.DiscountedPrice != nil {
		line.UnitPrice = *snap.DiscountedPrice
	}
}
