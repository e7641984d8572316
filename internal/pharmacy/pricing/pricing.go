// Package pricing computes cart breakdowns. It is pure: no I/O, no clocks,
// decimal arithmetic only.
package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/wellport/wellport-backend/internal/pharmacy/cart"
	"github.com/wellport/wellport-backend/internal/pharmacy/coupons"
	"github.com/wellport/wellport-backend/pkg/config"
)

// FeeDefaults are the configured fallback fees, used whenever the latest
// inventory snapshot did not quote an override.
type FeeDefaults struct {
	Handling decimal.Decimal
	Platform decimal.Decimal
	Delivery decimal.Decimal
}

// DefaultsFromConfig lifts the integer fee configuration into decimals.
func DefaultsFromConfig(cfg config.PharmacyConfig) FeeDefaults {
	return FeeDefaults{
		Handling: decimal.NewFromInt(int64(cfg.HandlingFee)),
		Platform: decimal.NewFromInt(int64(cfg.PlatformFee)),
		Delivery: decimal.NewFromInt(int64(cfg.DeliveryCharge)),
	}
}

// ComputeBreakdown prices a cart. Lines whose snapshot reports the item
// unavailable are left out of every total. An unknown coupon code contributes
// nothing and flags the breakdown instead of failing it.
func ComputeBreakdown(lines []cart.Line, defaults FeeDefaults, couponCode string, registry coupons.Registry) cart.Breakdown {
	bd := cart.Breakdown{
		TotalOriginalPrice:   decimal.Zero,
		TotalDiscountedPrice: decimal.Zero,
		TotalDiscountAmount:  decimal.Zero,
		CouponDiscount:       decimal.Zero,
		HandlingFee:          decimal.Zero,
		PlatformFee:          decimal.Zero,
		DeliveryCharge:       decimal.Zero,
		TotalPayable:         decimal.Zero,
	}

	priced := 0
	for _, line := range lines {
		if line.Snapshot != nil && !line.Snapshot.Available {
			continue
		}
		qty := decimal.NewFromInt(int64(line.Quantity))
		bd.TotalOriginalPrice = bd.TotalOriginalPrice.Add(originalUnit(line).Mul(qty))
		bd.TotalDiscountedPrice = bd.TotalDiscountedPrice.Add(discountedUnit(line).Mul(qty))
		priced++
	}
	bd.TotalDiscountAmount = bd.TotalOriginalPrice.Sub(bd.TotalDiscountedPrice)

	couponAmount := decimal.Zero
	if couponCode != "" {
		bd.AppliedCoupon = coupons.Normalize(couponCode)
		if amount, ok := registryLookup(registry, couponCode); ok {
			couponAmount = amount
		} else {
			bd.CouponInvalid = true
		}
	}

	// An empty (or fully unavailable) cart owes nothing, fees and coupon
	// discount included.
	if priced == 0 {
		return bd
	}

	bd.CouponDiscount = couponAmount
	bd.HandlingFee, bd.PlatformFee, bd.DeliveryCharge = resolveFees(lines, defaults)

	payable := bd.TotalDiscountedPrice.
		Add(bd.HandlingFee).
		Add(bd.PlatformFee).
		Add(bd.DeliveryCharge).
		Sub(bd.CouponDiscount)
	bd.TotalPayable = decimal.Max(decimal.Zero, payable)
	return bd
}

// originalUnit prefers the authoritative snapshot price, then the stored MRP,
// then the last known selling price.
func originalUnit(line cart.Line) decimal.Decimal {
	if line.Snapshot != nil && line.Snapshot.Price != nil {
		return *line.Snapshot.Price
	}
	if !line.UnitMRP.IsZero() {
		return line.UnitMRP
	}
	return line.UnitPrice
}

// discountedUnit prefers the snapshot's discounted quote, then the stored
// selling price, then whatever originalUnit resolves to.
func discountedUnit(line cart.Line) decimal.Decimal {
	if line.Snapshot != nil && line.Snapshot.DiscountedPrice != nil {
		return *line.Snapshot.DiscountedPrice
	}
	if !line.UnitPrice.IsZero() {
		return line.UnitPrice
	}
	return originalUnit(line)
}

// resolveFees applies per-field overrides from the most recently fetched
// snapshot that quoted a fee schedule.
func resolveFees(lines []cart.Line, defaults FeeDefaults) (handling, platform, delivery decimal.Decimal) {
	handling, platform, delivery = defaults.Handling, defaults.Platform, defaults.Delivery

	var latest *cart.FeeSchedule
	var latestAt int64
	for _, line := range lines {
		snap := line.Snapshot
		if snap == nil || snap.Fees == nil {
			continue
		}
		if latest == nil || snap.FetchedAt.UnixNano() >= latestAt {
			latest = snap.Fees
			latestAt = snap.FetchedAt.UnixNano()
		}
	}
	if latest == nil {
		return handling, platform, delivery
	}
	if latest.Handling != nil {
		handling = *latest.Handling
	}
	if latest.Platform != nil {
		platform = *latest.Platform
	}
	if latest.Delivery != nil {
		delivery = *latest.Delivery
	}
	return handling, platform, delivery
}

func registryLookup(registry coupons.Registry, code string) (decimal.Decimal, bool) {
	if registry == nil {
		return decimal.Zero, false
	}
	return registry.Lookup(code)
}
