package pharmacy

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/wellport/wellport-backend/internal/pharmacy/cart"
	"github.com/wellport/wellport-backend/internal/pharmacy/catalog"
	"github.com/wellport/wellport-backend/internal/pharmacy/coupons"
	"github.com/wellport/wellport-backend/internal/pharmacy/pricing"
	"github.com/wellport/wellport-backend/pkg/db/models"
	"github.com/wellport/wellport-backend/pkg/enums"
	pkgerrors "github.com/wellport/wellport-backend/pkg/errors"
	"github.com/wellport/wellport-backend/pkg/logger"
)

type memoryCartStore struct {
	carts      map[string][]cart.Line
	breakdowns map[string]cart.Breakdown
}

func newMemoryCartStore() *memoryCartStore {
	return &memoryCartStore{carts: map[string][]cart.Line{}, breakdowns: map[string]cart.Breakdown{}}
}

func (m *memoryCartStore) Load(ctx context.Context, userKey string) []cart.Line {
	lines := m.carts[userKey]
	if lines == nil {
		return []cart.Line{}
	}
	return lines
}

func (m *memoryCartStore) Save(ctx context.Context, userKey string, lines []cart.Line) error {
	m.carts[userKey] = lines
	return nil
}

func (m *memoryCartStore) Clear(ctx context.Context, userKey string) error {
	delete(m.carts, userKey)
	delete(m.breakdowns, userKey)
	return nil
}

func (m *memoryCartStore) SaveBreakdown(ctx context.Context, userKey string, bd cart.Breakdown) error {
	m.breakdowns[userKey] = bd
	return nil
}

func (m *memoryCartStore) LoadBreakdown(ctx context.Context, userKey string) (cart.Breakdown, bool) {
	bd, ok := m.breakdowns[userKey]
	return bd, ok
}

type passthroughReconciler struct {
	store *memoryCartStore
}

func (r passthroughReconciler) CheckAll(ctx context.Context, userKey string, lines []cart.Line, contact cart.Contact) ([]cart.Line, error) {
	for i := range lines {
		lines[i].ServerCartRefID = int64(i + 1)
	}
	if r.store != nil {
		_ = r.store.Save(ctx, userKey, lines)
	}
	return lines, nil
}

type stubCatalog struct{}

func (stubCatalog) Search(ctx context.Context, query string, order enums.CatalogSort, vendors []enums.PharmacyVendor) (catalog.SearchResult, error) {
	return catalog.SearchResult{Items: []catalog.Product{}}, nil
}

type stubOrders struct {
	submitted int
}

func (s *stubOrders) Submit(ctx context.Context, userID uuid.UUID, userKey string, lines []cart.Line, address cart.Address, breakdown cart.Breakdown) (string, error) {
	s.submitted++
	if unsynced := cart.Unsynced(lines); len(unsynced) > 0 {
		return "", pkgerrors.New(pkgerrors.CodeCartNotSynced, "cart items not synced")
	}
	return "A-1", nil
}

func (s *stubOrders) History(ctx context.Context, userID uuid.UUID) ([]models.PharmacyOrder, error) {
	return nil, nil
}

type stubOffline struct{}

func (stubOffline) Generate(ctx context.Context, userID uuid.UUID, lines []cart.Line) (*models.OfflineCoupon, error) {
	return &models.OfflineCoupon{Code: "TESTCODE", ItemCount: len(lines)}, nil
}

func (stubOffline) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.OfflineCoupon, error) {
	return nil, nil
}

func feeDefaults() pricing.FeeDefaults {
	return pricing.FeeDefaults{
		Handling: decimal.NewFromInt(12),
		Platform: decimal.Zero,
		Delivery: decimal.NewFromInt(79),
	}
}

func newTestService(t *testing.T) (Service, *memoryCartStore) {
	t.Helper()
	store := newMemoryCartStore()
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
	registry := coupons.NewStaticRegistry(map[string]int{"SAVE10": 10})
	svc, err := NewService(store, passthroughReconciler{store: store}, stubCatalog{}, &stubOrders{}, stubOffline{}, registry, feeDefaults(), logg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc, store
}

func item(vendor enums.PharmacyVendor, id string) cart.Line {
	return cart.Line{
		Vendor:    vendor,
		ProductID: id,
		Name:      "item " + id,
		Quantity:  1,
		UnitMRP:   decimal.NewFromInt(120),
		UnitPrice: decimal.NewFromInt(100),
	}
}

func TestGuestAndUserCartsAreSeparate(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "", item(enums.VendorA, "p1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.AddToCart(ctx, "user-1", item(enums.VendorB, "p2")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	guest := svc.ViewCart(ctx, "")
	if len(guest) != 1 || guest[0].ProductID != "p1" {
		t.Fatalf("guest cart wrong: %+v", guest)
	}
	user := svc.ViewCart(ctx, "user-1")
	if len(user) != 1 || user[0].ProductID != "p2" {
		t.Fatalf("user cart wrong: %+v", user)
	}
}

func TestAddToCartRejectsUnknownVendor(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	_, err := svc.AddToCart(context.Background(), "user-1", cart.Line{Vendor: "nope", ProductID: "x"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBreakdownIsCached(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	ctx := context.Background()
	if _, err := svc.AddToCart(ctx, "user-1", item(enums.VendorA, "p1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bd, err := svc.Breakdown(ctx, "user-1", "SAVE10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bd.TotalPayable.Equal(decimal.NewFromInt(181)) {
		t.Fatalf("payable: want 181, got %s", bd.TotalPayable)
	}

	cached, ok := store.LoadBreakdown(ctx, "user-1")
	if !ok || !cached.TotalPayable.Equal(bd.TotalPayable) {
		t.Fatalf("breakdown should be cached, got ok=%v %+v", ok, cached)
	}
}

func TestSubmitOrderUsesReconciledCart(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.AddToCart(ctx, "user-1", item(enums.VendorA, "p1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Unreconciled cart is refused by the submitter.
	_, err := svc.SubmitOrder(ctx, uuid.New(), "user-1", cart.Address{Name: "A", Line1: "x", City: "y", PostalCode: "z"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeCartNotSynced {
		t.Fatalf("expected cart-not-synced, got %v", err)
	}

	if _, err := svc.Reconcile(ctx, "user-1", cart.Contact{Name: "A"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	orderID, err := svc.SubmitOrder(ctx, uuid.New(), "user-1", cart.Address{Name: "A", Line1: "x", City: "y", PostalCode: "z"})
	if err != nil || orderID != "A-1" {
		t.Fatalf("expected order A-1, got %q %v", orderID, err)
	}
}
