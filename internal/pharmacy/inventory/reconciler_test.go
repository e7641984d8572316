package inventory

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/wellport/wellport-backend/internal/pharmacy/cart"
	"github.com/wellport/wellport-backend/pkg/enums"
	"github.com/wellport/wellport-backend/pkg/logger"
)

type stubChecker struct {
	vendor  enums.PharmacyVendor
	mu      sync.Mutex
	nextRef int64
	fail    map[string]error
	calls   int
}

func (s *stubChecker) Vendor() enums.PharmacyVendor { return s.vendor }

func (s *stubChecker) CheckInventory(ctx context.Context, line cart.Line, contact cart.Contact) (cart.CheckResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if err, ok := s.fail[line.ProductID]; ok {
		return cart.CheckResult{}, err
	}
	s.nextRef++
	price := decimal.NewFromInt(120)
	offer := decimal.NewFromInt(100)
	return cart.CheckResult{
		CartRefID: s.nextRef,
		Snapshot: cart.Snapshot{
			Price:           &price,
			DiscountedPrice: &offer,
			Available:       true,
			FetchedAt:       time.Now(),
		},
	}, nil
}

type recordingSaver struct {
	mu    sync.Mutex
	saved [][]cart.Line
}

func (r *recordingSaver) Save(ctx context.Context, userKey string, lines []cart.Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := make([]cart.Line, len(lines))
	copy(copied, lines)
	r.saved = append(r.saved, copied)
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
}

func testLines() []cart.Line {
	return []cart.Line{
		{Vendor: enums.VendorA, ProductID: "a1", Quantity: 1},
		{Vendor: enums.VendorA, ProductID: "a2", Quantity: 2},
		{Vendor: enums.VendorB, ProductID: "b1", Quantity: 1},
	}
}

func TestCheckAllAppliesEveryResult(t *testing.T) {
	t.Parallel()

	saver := &recordingSaver{}
	a := &stubChecker{vendor: enums.VendorA}
	b := &stubChecker{vendor: enums.VendorB}
	rec, err := NewReconciler(saver, testLogger(), nil, time.Second, a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := rec.CheckAll(context.Background(), "user-1", testLines(), cart.Contact{Name: "Asha"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, line := range updated {
		if !line.Synced() {
			t.Fatalf("every line should carry a cart ref: %+v", line)
		}
		if line.Snapshot == nil || !line.Available {
			t.Fatalf("every line should carry a fresh snapshot: %+v", line)
		}
		if !line.UnitPrice.Equal(decimal.NewFromInt(100)) {
			t.Fatalf("last-known price should update from the snapshot: %+v", line)
		}
	}
	if a.calls != 2 || b.calls != 1 {
		t.Fatalf("lines must route to their own vendor, a=%d b=%d", a.calls, b.calls)
	}
	if len(saver.saved) != 1 {
		t.Fatalf("cart should be persisted exactly once, got %d", len(saver.saved))
	}
}

func TestCheckAllIsolatesItemFailures(t *testing.T) {
	t.Parallel()

	saver := &recordingSaver{}
	a := &stubChecker{vendor: enums.VendorA, fail: map[string]error{"a2": errors.New("out of region")}}
	b := &stubChecker{vendor: enums.VendorB}
	rec, _ := NewReconciler(saver, testLogger(), nil, time.Second, a, b)

	updated, err := rec.CheckAll(context.Background(), "user-1", testLines(), cart.Contact{})
	if err == nil {
		t.Fatal("partial failure should surface in the combined error")
	}
	if len(updated) != 3 {
		t.Fatalf("all lines must survive, got %d", len(updated))
	}

	byID := map[string]cart.Line{}
	for _, line := range updated {
		byID[line.ProductID] = line
	}
	if !byID["a1"].Synced() || !byID["b1"].Synced() {
		t.Fatal("healthy lines should still be reconciled")
	}
	if byID["a2"].Synced() || byID["a2"].Snapshot != nil {
		t.Fatalf("failed line must keep its previous state: %+v", byID["a2"])
	}
	if len(saver.saved) != 1 {
		t.Fatal("partial success should still persist the cart")
	}
}

func TestCheckAllTotalFailureSkipsPersist(t *testing.T) {
	t.Parallel()

	saver := &recordingSaver{}
	a := &stubChecker{vendor: enums.VendorA, fail: map[string]error{"a1": errors.New("down"), "a2": errors.New("down")}}
	b := &stubChecker{vendor: enums.VendorB, fail: map[string]error{"b1": errors.New("down")}}
	rec, _ := NewReconciler(saver, testLogger(), nil, time.Second, a, b)

	updated, err := rec.CheckAll(context.Background(), "user-1", testLines(), cart.Contact{})
	if err == nil {
		t.Fatal("expected a combined error")
	}
	if len(updated) != 3 {
		t.Fatalf("lines must survive untouched, got %d", len(updated))
	}
	if len(saver.saved) != 0 {
		t.Fatal("nothing was learned, nothing should be written")
	}
}

func TestCheckOneUnknownVendor(t *testing.T) {
	t.Parallel()

	rec, _ := NewReconciler(&recordingSaver{}, testLogger(), nil, time.Second, &stubChecker{vendor: enums.VendorA})
	_, err := rec.CheckOne(context.Background(), cart.Line{Vendor: "nope", ProductID: "x"}, cart.Contact{})
	if err == nil {
		t.Fatal("unknown vendor should error")
	}
}

func TestCheckAllEmptyCart(t *testing.T) {
	t.Parallel()

	saver := &recordingSaver{}
	rec, _ := NewReconciler(saver, testLogger(), nil, time.Second, &stubChecker{vendor: enums.VendorA})
	updated, err := rec.CheckAll(context.Background(), "user-1", nil, cart.Contact{})
	if err != nil || len(updated) != 0 {
		t.Fatalf("empty cart should be a no-op, got %v %v", updated, err)
	}
	if len(saver.saved) != 0 {
		t.Fatal("empty cart should not be persisted")
	}
}
