package coupons

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestStaticRegistryLookup(t *testing.T) {
	t.Parallel()

	registry := NewStaticRegistry(map[string]int{"SAVE10": 10, "BIG50": 50, "junk": 0})

	amount, ok := registry.Lookup("SAVE10")
	if !ok || !amount.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("SAVE10 should resolve to 10, got %s ok=%v", amount, ok)
	}

	// Codes are case-insensitive and tolerate surrounding whitespace.
	if _, ok := registry.Lookup("  save10 "); !ok {
		t.Fatal("lookup should normalize the code")
	}

	if _, ok := registry.Lookup("NOPE"); ok {
		t.Fatal("unknown code should miss")
	}
	if _, ok := registry.Lookup("JUNK"); ok {
		t.Fatal("non-positive discounts should be dropped at load")
	}
}
