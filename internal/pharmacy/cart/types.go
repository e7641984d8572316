package cart

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wellport/wellport-backend/pkg/enums"
)

// GuestKey is the bucket used when no authenticated identity is available.
// Guest carts share one bucket; merging them into a user cart on login is the
// caller's concern.
const GuestKey = "guest"

// Line is one cart entry. Items are unique per (vendor, product id) pair; the
// two vendors use disjoint identifier schemes so the pair never collides.
type Line struct {
	Vendor    enums.PharmacyVendor `json:"vendor"`
	ProductID string               `json:"product_id"`
	Name      string               `json:"name"`
	Quantity  int                  `json:"quantity"`

	// UnitMRP and UnitPrice are the last known list/selling prices. The
	// authoritative values live in the attached inventory snapshot once a
	// reconciliation has run.
	UnitMRP   decimal.Decimal `json:"unit_mrp"`
	UnitPrice decimal.Decimal `json:"unit_price"`

	// ServerCartRefID is the vendor-side cart row id assigned during
	// reconciliation. Zero means the line was never registered upstream and
	// cannot be part of an order.
	ServerCartRefID int64 `json:"server_cart_ref_id"`

	Available bool      `json:"available"`
	Snapshot  *Snapshot `json:"snapshot,omitempty"`
}

// SameItem reports whether the line refers to the given vendor-scoped product.
func (l Line) SameItem(vendor enums.PharmacyVendor, productID string) bool {
	return l.Vendor == vendor && l.ProductID == productID
}

// Synced reports whether the line holds a vendor-side cart reference.
func (l Line) Synced() bool {
	return l.ServerCartRefID != 0
}

// Snapshot is the per-line result of an inventory check. It is transient
// state: stored alongside the line, replaced wholesale on the next check.
type Snapshot struct {
	Price           *decimal.Decimal `json:"price,omitempty"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price,omitempty"`
	MinQuantity     int              `json:"min_quantity"`
	MaxQuantity     int              `json:"max_quantity"`
	ETA             string           `json:"eta,omitempty"`
	Available       bool             `json:"available"`
	Fees            *FeeSchedule     `json:"fees,omitempty"`
	FetchedAt       time.Time        `json:"fetched_at"`
}

// CheckResult is what a vendor inventory endpoint hands back for one line:
// the vendor-side cart row id plus the fresh snapshot.
type CheckResult struct {
	CartRefID int64
	Snapshot  Snapshot
}

// FeeSchedule carries fee overrides returned by a vendor inventory endpoint.
// A nil field means the vendor did not quote that fee and the configured
// default applies.
type FeeSchedule struct {
	Handling *decimal.Decimal `json:"handling,omitempty"`
	Platform *decimal.Decimal `json:"platform,omitempty"`
	Delivery *decimal.Decimal `json:"delivery,omitempty"`
}

// Contact identifies the person an inventory check or order is for.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// Address is the delivery address attached to an order.
type Address struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// OrderRequest is what the submitter hands to the vendor order endpoint.
type OrderRequest struct {
	Identity      string
	CartRefIDs    []int64
	Address       Address
	PayableAmount decimal.Decimal
}

// Breakdown is the priced view of a cart. Monetary fields use decimals so the
// arithmetic never drifts the way binary floats do.
type Breakdown struct {
	TotalOriginalPrice   decimal.Decimal `json:"total_original_price"`
	TotalDiscountedPrice decimal.Decimal `json:"total_discounted_price"`
	TotalDiscountAmount  decimal.Decimal `json:"total_discount_amount"`

	HandlingFee    decimal.Decimal `json:"handling_fee"`
	PlatformFee    decimal.Decimal `json:"platform_fee"`
	DeliveryCharge decimal.Decimal `json:"delivery_charge"`

	AppliedCoupon  string          `json:"applied_coupon,omitempty"`
	CouponDiscount decimal.Decimal `json:"coupon_discount"`
	CouponInvalid  bool            `json:"coupon_invalid,omitempty"`

	TotalPayable decimal.Decimal `json:"total_payable"`
}
