package coupons

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wellport/wellport-backend/internal/pharmacy/cart"
	pkgerrors "github.com/wellport/wellport-backend/pkg/errors"
	"github.com/wellport/wellport-backend/pkg/db/models"
	"github.com/wellport/wellport-backend/pkg/logger"
	"github.com/wellport/wellport-backend/pkg/security"
)

const (
	offlineCodeLength   = 10
	offlineCodeAttempts = 5
)

type offlineRepo interface {
	Create(ctx context.Context, coupon *models.OfflineCoupon) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.OfflineCoupon, error)
	IsDuplicateCode(err error) bool
}

// OfflineService turns a cart into a printable counter coupon. The member
// presents the code at a partner pharmacy instead of checking out online.
type OfflineService interface {
	Generate(ctx context.Context, userID uuid.UUID, lines []cart.Line) (*models.OfflineCoupon, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.OfflineCoupon, error)
}

type offlineService struct {
	repo offlineRepo
	logg *logger.Logger
}

func NewOfflineService(repo offlineRepo, logg *logger.Logger) (OfflineService, error) {
	if repo == nil {
		return nil, fmt.Errorf("repo is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &offlineService{repo: repo, logg: logg}, nil
}

func (s *offlineService) Generate(ctx context.Context, userID uuid.UUID, lines []cart.Line) (*models.OfflineCoupon, error) {
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	itemsJSON, err := json.Marshal(lines)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding cart items")
	}

	itemCount := 0
	total := decimal.Zero
	for _, line := range lines {
		itemCount += line.Quantity
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	// Codes are random, so a collision is possible. Retry a few times and let
	// the unique index arbitrate.
	for attempt := 0; attempt < offlineCodeAttempts; attempt++ {
		code, err := security.GenerateOfflineCode(offlineCodeLength)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating coupon code")
		}

		coupon := &models.OfflineCoupon{
			UserID:      userID,
			Code:        code,
			ItemCount:   itemCount,
			CartTotal:   total,
			ItemsJSON:   string(itemsJSON),
			GeneratedAt: time.Now().UTC(),
		}
		err = s.repo.Create(ctx, coupon)
		if err == nil {
			return coupon, nil
		}
		if !s.repo.IsDuplicateCode(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storing offline coupon")
		}
		s.logg.Warn(s.logg.WithField(ctx, "attempt", attempt+1), "offline coupon code collision, retrying")
	}

	return nil, pkgerrors.New(pkgerrors.CodeInternal, "could not generate a unique coupon code")
}

func (s *offlineService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.OfflineCoupon, error) {
	found, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing offline coupons")
	}
	return found, nil
}
