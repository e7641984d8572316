package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/wellport/wellport-backend/pkg/db"
	"github.com/wellport/wellport-backend/pkg/db/models"
)

type gormHistoryRepo struct {
	client *db.Client
}

// NewHistoryRepo returns the GORM-backed order history repository.
func NewHistoryRepo(client *db.Client) (*gormHistoryRepo, error) {
	if client == nil {
		return nil, fmt.Errorf("db client is required")
	}
	return &gormHistoryRepo{client: client}, nil
}

func (r *gormHistoryRepo) Create(ctx context.Context, order *models.PharmacyOrder) error {
	return r.client.DB().WithContext(ctx).Create(order).Error
}

func (r *gormHistoryRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PharmacyOrder, error) {
	var found []models.PharmacyOrder
	err := r.client.DB().WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&found).Error
	return found, err
}
