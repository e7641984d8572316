package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/wellport/wellport-backend/pkg/enums"
)

// SavedAddress is an address-book entry tagged with a relationship label and an
// address-type label used to filter selectable delivery addresses.
type SavedAddress struct {
	ID           uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	Name         string            `gorm:"column:name;not null"`
	Phone        string            `gorm:"column:phone;not null"`
	Line1        string            `gorm:"column:line1;not null"`
	Line2        *string           `gorm:"column:line2"`
	City         string            `gorm:"column:city;not null"`
	State        string            `gorm:"column:state;not null"`
	PostalCode   string            `gorm:"column:postal_code;not null"`
	Relationship string            `gorm:"column:relationship;not null;default:'self'"`
	AddressType  enums.AddressType `gorm:"column:address_type;type:text;not null;default:'home'"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
