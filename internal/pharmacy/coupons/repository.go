package coupons

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/wellport/wellport-backend/pkg/db"
	"github.com/wellport/wellport-backend/pkg/db/models"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

type gormOfflineRepo struct {
	client *db.Client
}

// NewOfflineRepo returns the GORM-backed offline coupon repository.
func NewOfflineRepo(client *db.Client) (*gormOfflineRepo, error) {
	if client == nil {
		return nil, fmt.Errorf("db client is required")
	}
	return &gormOfflineRepo{client: client}, nil
}

func (r *gormOfflineRepo) Create(ctx context.Context, coupon *models.OfflineCoupon) error {
	return r.client.DB().WithContext(ctx).Create(coupon).Error
}

func (r *gormOfflineRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.OfflineCoupon, error) {
	var found []models.OfflineCoupon
	err := r.client.DB().WithContext(ctx).
		Where("user_id = ?", userID).
		Order("generated_at DESC").
		Find(&found).Error
	return found, err
}

// IsDuplicateCode reports whether err is a unique-constraint violation on the
// coupon code, under either postgres driver or GORM's own sentinel.
func (r *gormOfflineRepo) IsDuplicateCode(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
