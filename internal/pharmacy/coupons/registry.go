package coupons

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Registry resolves coupon codes to flat discount amounts.
type Registry interface {
	Lookup(code string) (decimal.Decimal, bool)
}

// StaticRegistry serves codes from an in-memory map loaded at boot. Codes are
// matched case-insensitively.
type StaticRegistry struct {
	discounts map[string]decimal.Decimal
}

// NewStaticRegistry builds a registry from code -> flat discount amounts, the
// shape the configuration layer provides.
func NewStaticRegistry(codes map[string]int) *StaticRegistry {
	discounts := make(map[string]decimal.Decimal, len(codes))
	for code, amount := range codes {
		if amount <= 0 {
			continue
		}
		discounts[Normalize(code)] = decimal.NewFromInt(int64(amount))
	}
	return &StaticRegistry{discounts: discounts}
}

// Lookup returns the discount for a code and whether the code exists.
func (r *StaticRegistry) Lookup(code string) (decimal.Decimal, bool) {
	amount, ok := r.discounts[Normalize(code)]
	return amount, ok
}

// Normalize trims and uppercases a coupon code for comparison.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
