package dependants

import (
	"context"

	"github.com/google/uuid"
	"github.com/wellport/wellport-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes dependant persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a dependants repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a dependant.
func (r *Repository) Create(ctx context.Context, dependant *models.Dependant) error {
	return r.db.WithContext(ctx).Create(dependant).Error
}

// ListByUser returns the member's dependants.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Dependant, error) {
	var found []models.Dependant
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&found).Error
	return found, err
}

// Delete removes a dependant scoped to its owner.
func (r *Repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Dependant{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
