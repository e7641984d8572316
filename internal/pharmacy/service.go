// Package pharmacy orchestrates the cart, catalog, pricing and order flows
// behind the portal's pharmacy endpoints.
package pharmacy

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/wellport/wellport-backend/internal/pharmacy/cart"
	"github.com/wellport/wellport-backend/internal/pharmacy/catalog"
	"github.com/wellport/wellport-backend/internal/pharmacy/coupons"
	"github.com/wellport/wellport-backend/internal/pharmacy/orders"
	"github.com/wellport/wellport-backend/internal/pharmacy/pricing"
	"github.com/wellport/wellport-backend/pkg/db/models"
	"github.com/wellport/wellport-backend/pkg/enums"
	pkgerrors "github.com/wellport/wellport-backend/pkg/errors"
	"github.com/wellport/wellport-backend/pkg/logger"
	"github.com/wellport/wellport-backend/pkg/metrics"
)

type cartStore interface {
	Load(ctx context.Context, userKey string) []cart.Line
	Save(ctx context.Context, userKey string, lines []cart.Line) error
	Clear(ctx context.Context, userKey string) error
	SaveBreakdown(ctx context.Context, userKey string, bd cart.Breakdown) error
	LoadBreakdown(ctx context.Context, userKey string) (cart.Breakdown, bool)
}

type reconciler interface {
	CheckAll(ctx context.Context, userKey string, lines []cart.Line, contact cart.Contact) ([]cart.Line, error)
}

// Service is the surface the pharmacy controllers talk to.
type Service interface {
	Search(ctx context.Context, query string, order enums.CatalogSort, vendors []enums.PharmacyVendor) (catalog.SearchResult, error)

	ViewCart(ctx context.Context, identity string) []cart.Line
	AddToCart(ctx context.Context, identity string, item cart.Line) ([]cart.Line, error)
	DecrementItem(ctx context.Context, identity string, vendor enums.PharmacyVendor, productID string) ([]cart.Line, error)
	RemoveItem(ctx context.Context, identity string, vendor enums.PharmacyVendor, productID string) ([]cart.Line, error)
	ClearCart(ctx context.Context, identity string) error

	Reconcile(ctx context.Context, identity string, contact cart.Contact) ([]cart.Line, error)
	Breakdown(ctx context.Context, identity string, couponCode string) (cart.Breakdown, error)

	SubmitOrder(ctx context.Context, userID uuid.UUID, identity string, address cart.Address) (string, error)
	OrderHistory(ctx context.Context, userID uuid.UUID) ([]models.PharmacyOrder, error)

	GenerateOfflineCoupon(ctx context.Context, userID uuid.UUID, identity string) (*models.OfflineCoupon, error)
	ListOfflineCoupons(ctx context.Context, userID uuid.UUID) ([]models.OfflineCoupon, error)
}

type service struct {
	store    cartStore
	inv      reconciler
	catalog  catalog.Service
	orders   orders.Service
	offline  coupons.OfflineService
	registry coupons.Registry
	fees     pricing.FeeDefaults
	logg     *logger.Logger
	metrics  *metrics.PharmacyMetrics
}

// NewService wires the pharmacy façade. Metrics may be nil.
func NewService(
	store cartStore,
	inv reconciler,
	cat catalog.Service,
	ord orders.Service,
	offline coupons.OfflineService,
	registry coupons.Registry,
	fees pricing.FeeDefaults,
	logg *logger.Logger,
	m *metrics.PharmacyMetrics,
) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store is required")
	}
	if inv == nil {
		return nil, fmt.Errorf("reconciler is required")
	}
	if cat == nil {
		return nil, fmt.Errorf("catalog service is required")
	}
	if ord == nil {
		return nil, fmt.Errorf("order service is required")
	}
	if offline == nil {
		return nil, fmt.Errorf("offline coupon service is required")
	}
	if registry == nil {
		return nil, fmt.Errorf("coupon registry is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		store:    store,
		inv:      inv,
		catalog:  cat,
		orders:   ord,
		offline:  offline,
		registry: registry,
		fees:     fees,
		logg:     logg,
		metrics:  m,
	}, nil
}

func (s *service) Search(ctx context.Context, query string, order enums.CatalogSort, vendors []enums.PharmacyVendor) (catalog.SearchResult, error) {
	for _, vendor := range vendors {
		if !vendor.IsValid() {
			return catalog.SearchResult{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown vendor %q", vendor))
		}
	}
	return s.catalog.Search(ctx, query, order, vendors)
}

func (s *service) ViewCart(ctx context.Context, identity string) []cart.Line {
	return s.store.Load(ctx, cart.Key(identity))
}

func (s *service) AddToCart(ctx context.Context, identity string, item cart.Line) ([]cart.Line, error) {
	if !item.Vendor.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown vendor %q", item.Vendor))
	}
	if item.ProductID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	userKey := cart.Key(identity)
	lines := cart.Add(s.store.Load(ctx, userKey), item)
	if err := s.store.Save(ctx, userKey, lines); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart")
	}
	return lines, nil
}

func (s *service) DecrementItem(ctx context.Context, identity string, vendor enums.PharmacyVendor, productID string) ([]cart.Line, error) {
	return s.mutate(ctx, identity, func(lines []cart.Line) []cart.Line {
		return cart.Decrement(lines, vendor, productID)
	})
}

func (s *service) RemoveItem(ctx context.Context, identity string, vendor enums.PharmacyVendor, productID string) ([]cart.Line, error) {
	return s.mutate(ctx, identity, func(lines []cart.Line) []cart.Line {
		return cart.Remove(lines, vendor, productID)
	})
}

func (s *service) mutate(ctx context.Context, identity string, fn func([]cart.Line) []cart.Line) ([]cart.Line, error) {
	userKey := cart.Key(identity)
	lines := fn(s.store.Load(ctx, userKey))
	if err := s.store.Save(ctx, userKey, lines); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart")
	}
	return lines, nil
}

func (s *service) ClearCart(ctx context.Context, identity string) error {
	if err := s.store.Clear(ctx, cart.Key(identity)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing cart")
	}
	return nil
}

// Reconcile refreshes vendor state for every line. Partial failures are
// logged and the refreshed cart is returned regardless.
func (s *service) Reconcile(ctx context.Context, identity string, contact cart.Contact) ([]cart.Line, error) {
	userKey := cart.Key(identity)
	lines := s.store.Load(ctx, userKey)
	updated, err := s.inv.CheckAll(ctx, userKey, lines, contact)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "cart_key", userKey), "cart reconciliation completed with item failures")
	}
	return updated, nil
}

// Breakdown prices the current cart and caches the result for checkout.
func (s *service) Breakdown(ctx context.Context, identity string, couponCode string) (cart.Breakdown, error) {
	userKey := cart.Key(identity)
	lines := s.store.Load(ctx, userKey)

	bd := pricing.ComputeBreakdown(lines, s.fees, couponCode, s.registry)
	if couponCode != "" {
		if bd.CouponInvalid {
			s.metrics.IncCouponApplied("invalid")
		} else {
			s.metrics.IncCouponApplied("ok")
		}
	}

	if err := s.store.SaveBreakdown(ctx, userKey, bd); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "cart_key", userKey), "caching breakdown failed")
	}
	return bd, nil
}

// SubmitOrder places the order using the cached breakdown, recomputing when
// no cache survives.
func (s *service) SubmitOrder(ctx context.Context, userID uuid.UUID, identity string, address cart.Address) (string, error) {
	userKey := cart.Key(identity)
	lines := s.store.Load(ctx, userKey)

	bd, ok := s.store.LoadBreakdown(ctx, userKey)
	if !ok {
		bd = pricing.ComputeBreakdown(lines, s.fees, "", s.registry)
	}

	return s.orders.Submit(ctx, userID, userKey, lines, address, bd)
}

func (s *service) OrderHistory(ctx context.Context, userID uuid.UUID) ([]models.PharmacyOrder, error) {
	return s.orders.History(ctx, userID)
}

func (s *service) GenerateOfflineCoupon(ctx context.Context, userID uuid.UUID, identity string) (*models.OfflineCoupon, error) {
	lines := s.store.Load(ctx, cart.Key(identity))
	return s.offline.Generate(ctx, userID, lines)
}

func (s *service) ListOfflineCoupons(ctx context.Context, userID uuid.UUID) ([]models.OfflineCoupon, error) {
	return s.offline.ListForUser(ctx, userID)
}
