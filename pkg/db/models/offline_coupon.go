package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OfflineCoupon is a printable code a member presents at a partner pharmacy
// counter instead of checking out online.
type OfflineCoupon struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index"`
	Code        string          `gorm:"column:code;not null;uniqueIndex"`
	ItemCount   int             `gorm:"column:item_count;not null"`
	CartTotal   decimal.Decimal `gorm:"column:cart_total;type:numeric(12,2);not null"`
	ItemsJSON   string          `gorm:"column:items_json;type:text;not null"`
	RedeemedAt  *time.Time      `gorm:"column:redeemed_at"`
	GeneratedAt time.Time       `gorm:"column:generated_at;autoCreateTime"`
}
