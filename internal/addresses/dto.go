package addresses

import (
	"github.com/wellport/wellport-backend/pkg/enums"
)

// CreateRequest is the payload for a new address-book entry.
type CreateRequest struct {
	Name         string            `json:"name" validate:"required"`
	Phone        string            `json:"phone" validate:"required"`
	Line1        string            `json:"line1" validate:"required"`
	Line2        *string           `json:"line2,omitempty"`
	City         string            `json:"city" validate:"required"`
	State        string            `json:"state" validate:"required"`
	PostalCode   string            `json:"postal_code" validate:"required"`
	Relationship string            `json:"relationship,omitempty"`
	AddressType  enums.AddressType `json:"address_type,omitempty"`
}

// UpdateRequest mirrors CreateRequest; the whole entry is replaced.
type UpdateRequest = CreateRequest
