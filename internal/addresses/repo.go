package addresses

import (
	"context"

	"github.com/google/uuid"
	"github.com/wellport/wellport-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes address-book persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an addresses repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts an address-book entry.
func (r *Repository) Create(ctx context.Context, address *models.SavedAddress) error {
	return r.db.WithContext(ctx).Create(address).Error
}

// ListByUser returns the member's address book, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SavedAddress, error) {
	var found []models.SavedAddress
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&found).Error
	return found, err
}

// FindOwned loads an entry only when it belongs to the user.
func (r *Repository) FindOwned(ctx context.Context, userID, id uuid.UUID) (*models.SavedAddress, error) {
	var address models.SavedAddress
	if err := r.db.WithContext(ctx).First(&address, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

// Update persists the mutable fields of an entry.
func (r *Repository) Update(ctx context.Context, address *models.SavedAddress) error {
	return r.db.WithContext(ctx).Save(address).Error
}

// Delete removes an entry scoped to its owner.
func (r *Repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SavedAddress{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
