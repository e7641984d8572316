package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wellport/wellport-backend/pkg/enums"
)

// GymPlan is a purchasable gym membership tier.
type GymPlan struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string          `gorm:"column:name;not null"`
	Description  *string         `gorm:"column:description"`
	DurationDays int             `gorm:"column:duration_days;not null"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	IsActive     bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// GymMembership records a plan purchase with its computed validity window.
type GymMembership struct {
	ID        uuid.UUID                 `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID                 `gorm:"column:user_id;type:uuid;not null;index"`
	PlanID    uuid.UUID                 `gorm:"column:plan_id;type:uuid;not null"`
	Plan      *GymPlan                  `gorm:"foreignKey:PlanID"`
	Amount    decimal.Decimal           `gorm:"column:amount;type:numeric(12,2);not null"`
	StartsAt  time.Time                 `gorm:"column:starts_at;not null"`
	ExpiresAt time.Time                 `gorm:"column:expires_at;not null"`
	Status    enums.GymMembershipStatus `gorm:"column:status;type:text;not null;default:'active'"`
	CreatedAt time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}
