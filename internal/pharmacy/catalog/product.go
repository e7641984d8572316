package catalog

import (
	"github.com/shopspring/decimal"
	"github.com/wellport/wellport-backend/pkg/enums"
)

// Product is the vendor-neutral catalog shape. Each gateway maps its own wire
// fields onto this before anything downstream sees the item.
type Product struct {
	Vendor    enums.PharmacyVendor `json:"vendor"`
	ProductID string               `json:"product_id"`
	Name      string               `json:"name"`
	MRP       decimal.Decimal      `json:"mrp"`
	Price     decimal.Decimal      `json:"price"`
	PackSize  string               `json:"pack_size,omitempty"`
	Available bool                 `json:"available"`
}

// DiscountPercent derives the markdown from MRP to selling price.
func (p Product) DiscountPercent() decimal.Decimal {
	if p.MRP.IsZero() || p.MRP.LessThanOrEqual(p.Price) {
		return decimal.Zero
	}
	hundred := decimal.NewFromInt(100)
	return p.MRP.Sub(p.Price).Mul(hundred).DivRound(p.MRP, 2)
}
