package models

import (
	"time"

	"github.com/google/uuid"
)

// Dependant is a family member covered under the member's benefits.
type Dependant struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	FirstName   string     `gorm:"column:first_name;not null"`
	LastName    string     `gorm:"column:last_name;not null"`
	Relation    string     `gorm:"column:relation;not null"`
	DateOfBirth *time.Time `gorm:"column:date_of_birth"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
