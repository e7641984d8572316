package gym

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wellport/wellport-backend/pkg/db/models"
	"github.com/wellport/wellport-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository exposes gym plan and membership persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a gym repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActivePlans returns purchasable plans, cheapest first.
func (r *Repository) ListActivePlans(ctx context.Context) ([]models.GymPlan, error) {
	var plans []models.GymPlan
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("price ASC").
		Find(&plans).Error
	return plans, err
}

// FindPlan loads a plan by id.
func (r *Repository) FindPlan(ctx context.Context, id uuid.UUID) (*models.GymPlan, error) {
	var plan models.GymPlan
	if err := r.db.WithContext(ctx).First(&plan, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// CreateMembership inserts a purchased membership.
func (r *Repository) CreateMembership(ctx context.Context, membership *models.GymMembership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

// ListMemberships returns the member's memberships with plans preloaded,
// newest first.
func (r *Repository) ListMemberships(ctx context.Context, userID uuid.UUID) ([]models.GymMembership, error) {
	var memberships []models.GymMembership
	err := r.db.WithContext(ctx).
		Preload("Plan").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&memberships).Error
	return memberships, err
}

// SweepExpired flips every active membership whose window closed before now.
// The cron worker runs this so rows stay honest without waiting on a read.
func (r *Repository) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.GymMembership{}).
		Where("status = ? AND expires_at < ?", enums.GymMembershipActive, now).
		UpdateColumn("status", enums.GymMembershipExpired)
	return res.RowsAffected, res.Error
}

// MarkExpired flips status on memberships whose window has passed.
func (r *Repository) MarkExpired(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.GymMembership{}).
		Where("id IN ?", ids).
		UpdateColumn("status", enums.GymMembershipExpired).Error
}
