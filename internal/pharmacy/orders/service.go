// Package orders submits reconciled carts to the vendor order endpoint and
// keeps a local history of accepted orders.
package orders

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/wellport/wellport-backend/internal/pharmacy/cart"
	"github.com/wellport/wellport-backend/pkg/db/models"
	pkgerrors "github.com/wellport/wellport-backend/pkg/errors"
	"github.com/wellport/wellport-backend/pkg/logger"
	"github.com/wellport/wellport-backend/pkg/metrics"
)

type orderGateway interface {
	CreateOrder(ctx context.Context, req cart.OrderRequest) (string, error)
}

type cartCleaner interface {
	Clear(ctx context.Context, userKey string) error
}

type historyRepo interface {
	Create(ctx context.Context, order *models.PharmacyOrder) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PharmacyOrder, error)
}

// Service is the order submission surface.
type Service interface {
	Submit(ctx context.Context, userID uuid.UUID, userKey string, lines []cart.Line, address cart.Address, breakdown cart.Breakdown) (string, error)
	History(ctx context.Context, userID uuid.UUID) ([]models.PharmacyOrder, error)
}

type service struct {
	gateway orderGateway
	carts   cartCleaner
	history historyRepo
	logg    *logger.Logger
	metrics *metrics.PharmacyMetrics
}

// NewService wires the submitter. Metrics may be nil.
func NewService(gateway orderGateway, carts cartCleaner, history historyRepo, logg *logger.Logger, m *metrics.PharmacyMetrics) (Service, error) {
	if gateway == nil {
		return nil, fmt.Errorf("order gateway is required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart cleaner is required")
	}
	if history == nil {
		return nil, fmt.Errorf("history repo is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{gateway: gateway, carts: carts, history: history, logg: logg, metrics: m}, nil
}

// Submit places the order. Every line must carry a vendor cart reference; a
// cart with any unsynced line is refused locally, before any network call.
// The cart and its cached breakdown are cleared only after the vendor accepts.
func (s *service) Submit(ctx context.Context, userID uuid.UUID, userKey string, lines []cart.Line, address cart.Address, breakdown cart.Breakdown) (string, error) {
	if len(lines) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if err := validateAddress(address); err != nil {
		return "", err
	}
	if unsynced := cart.Unsynced(lines); len(unsynced) > 0 {
		s.metrics.IncOrderSubmitted("refused_unsynced")
		return "", pkgerrors.New(pkgerrors.CodeCartNotSynced, "cart items not synced").
			WithDetails(map[string]any{"items": unsynced})
	}

	refs := make([]int64, 0, len(lines))
	for _, line := range lines {
		refs = append(refs, line.ServerCartRefID)
	}

	orderID, err := s.gateway.CreateOrder(ctx, cart.OrderRequest{
		Identity:      userKey,
		CartRefIDs:    refs,
		Address:       address,
		PayableAmount: breakdown.TotalPayable,
	})
	if err != nil {
		s.metrics.IncOrderSubmitted("failed")
		return "", err
	}
	s.metrics.IncOrderSubmitted("ok")

	// History and cart cleanup are best effort: the vendor already owns the
	// order, so a local hiccup must not fail the submission.
	record := &models.PharmacyOrder{
		UserID:        userID,
		VendorOrderID: orderID,
		CartRefIDs:    joinRefs(refs),
		PayableAmount: breakdown.TotalPayable,
		DeliveryName:  address.Name,
		DeliveryLine:  address.Line1,
		DeliveryCity:  address.City,
		DeliveryPIN:   address.PostalCode,
	}
	if err := s.history.Create(ctx, record); err != nil {
		s.logg.Error(s.logg.WithField(ctx, "vendor_order_id", orderID), "recording order history failed", err)
	}
	if err := s.carts.Clear(ctx, userKey); err != nil {
		s.logg.Error(s.logg.WithField(ctx, "vendor_order_id", orderID), "clearing cart after order failed", err)
	}

	return orderID, nil
}

func (s *service) History(ctx context.Context, userID uuid.UUID) ([]models.PharmacyOrder, error) {
	found, err := s.history.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing order history")
	}
	return found, nil
}

func validateAddress(address cart.Address) error {
	missing := []string{}
	if strings.TrimSpace(address.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(address.Line1) == "" {
		missing = append(missing, "line1")
	}
	if strings.TrimSpace(address.City) == "" {
		missing = append(missing, "city")
	}
	if strings.TrimSpace(address.PostalCode) == "" {
		missing = append(missing, "postal_code")
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "delivery address incomplete").
			WithDetails(map[string]any{"missing": missing})
	}
	return nil
}

func joinRefs(refs []int64) string {
	parts := make([]string, 0, len(refs))
	for _, ref := range refs {
		parts = append(parts, strconv.FormatInt(ref, 10))
	}
	return strings.Join(parts, ",")
}
