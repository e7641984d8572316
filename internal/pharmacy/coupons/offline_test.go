package coupons

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/wellport/wellport-backend/internal/pharmacy/cart"
	pkgerrors "github.com/wellport/wellport-backend/pkg/errors"
	"github.com/wellport/wellport-backend/pkg/db/models"
	"github.com/wellport/wellport-backend/pkg/enums"
	"github.com/wellport/wellport-backend/pkg/logger"
)

type stubOfflineRepo struct {
	created    []*models.OfflineCoupon
	failFirstN int
	createErr  error
}

var errDuplicate = errors.New("duplicate code")

func (s *stubOfflineRepo) Create(ctx context.Context, coupon *models.OfflineCoupon) error {
	if s.createErr != nil {
		return s.createErr
	}
	if s.failFirstN > 0 {
		s.failFirstN--
		return errDuplicate
	}
	s.created = append(s.created, coupon)
	return nil
}

func (s *stubOfflineRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.OfflineCoupon, error) {
	out := make([]models.OfflineCoupon, 0, len(s.created))
	for _, c := range s.created {
		out = append(out, *c)
	}
	return out, nil
}

func (s *stubOfflineRepo) IsDuplicateCode(err error) bool {
	return errors.Is(err, errDuplicate)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
}

func cartLines() []cart.Line {
	return []cart.Line{
		{Vendor: enums.VendorA, ProductID: "p1", Quantity: 2, UnitPrice: decimal.NewFromInt(50)},
		{Vendor: enums.VendorB, ProductID: "p2", Quantity: 1, UnitPrice: decimal.NewFromInt(30)},
	}
}

func TestGenerateComputesTotals(t *testing.T) {
	t.Parallel()

	repo := &stubOfflineRepo{}
	svc, err := NewOfflineService(repo, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	coupon, err := svc.Generate(context.Background(), uuid.New(), cartLines())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coupon.ItemCount != 3 {
		t.Fatalf("expected item count 3, got %d", coupon.ItemCount)
	}
	if !coupon.CartTotal.Equal(decimal.NewFromInt(130)) {
		t.Fatalf("expected cart total 130, got %s", coupon.CartTotal)
	}
	if len(coupon.Code) != offlineCodeLength {
		t.Fatalf("expected a %d-char code, got %q", offlineCodeLength, coupon.Code)
	}
}

func TestGenerateRetriesOnCollision(t *testing.T) {
	t.Parallel()

	repo := &stubOfflineRepo{failFirstN: 2}
	svc, _ := NewOfflineService(repo, testLogger())

	coupon, err := svc.Generate(context.Background(), uuid.New(), cartLines())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coupon == nil || coupon.Code == "" {
		t.Fatal("expected a coupon after retrying")
	}
}

func TestGenerateRejectsEmptyCart(t *testing.T) {
	t.Parallel()

	svc, _ := NewOfflineService(&stubOfflineRepo{}, testLogger())
	_, err := svc.Generate(context.Background(), uuid.New(), nil)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
