package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PharmacyOrder is the local record of an order accepted by a vendor backend.
// The vendor remains the source of truth for fulfilment; this row exists for
// order history and support lookups.
type PharmacyOrder struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index"`
	VendorOrderID string          `gorm:"column:vendor_order_id;not null"`
	CartRefIDs    string          `gorm:"column:cart_ref_ids;not null"`
	PayableAmount decimal.Decimal `gorm:"column:payable_amount;type:numeric(12,2);not null"`
	DeliveryName  string          `gorm:"column:delivery_name;not null"`
	DeliveryLine  string          `gorm:"column:delivery_line;not null"`
	DeliveryCity  string          `gorm:"column:delivery_city;not null"`
	DeliveryPIN   string          `gorm:"column:delivery_pin;not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
}
