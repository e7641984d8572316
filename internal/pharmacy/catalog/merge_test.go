package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/wellport/wellport-backend/pkg/enums"
)

func product(vendor enums.PharmacyVendor, id, name string, price int64) Product {
	return Product{
		Vendor:    vendor,
		ProductID: id,
		Name:      name,
		MRP:       decimal.NewFromInt(price + 20),
		Price:     decimal.NewFromInt(price),
		Available: true,
	}
}

func TestMergeKeepsEveryItem(t *testing.T) {
	t.Parallel()

	a := []Product{product(enums.VendorA, "1", "Paracetamol 500", 30)}
	b := []Product{
		product(enums.VendorB, "1", "Paracetamol 650", 45),
		product(enums.VendorB, "2", "Vitamin C", 90),
	}

	merged := Merge(a, b)
	if len(merged) != 3 {
		t.Fatalf("expected 3 items, got %d", len(merged))
	}
	// Same local id under both vendors survives as two items.
	seen := 0
	for _, p := range merged {
		if p.ProductID == "1" {
			seen++
		}
	}
	if seen != 2 {
		t.Fatalf("expected both vendor items with id 1, got %d", seen)
	}
}

func TestFilterByName(t *testing.T) {
	t.Parallel()

	items := []Product{
		product(enums.VendorA, "1", "Paracetamol 500", 30),
		product(enums.VendorB, "2", "Vitamin C", 90),
	}

	kept := FilterByName(items, "PARACETAMOL")
	if len(kept) != 1 || kept[0].ProductID != "1" {
		t.Fatalf("case-insensitive filter failed: %+v", kept)
	}
	if got := FilterByName(items, "  "); len(got) != 2 {
		t.Fatalf("blank query should keep everything, got %d", len(got))
	}
}

func TestSortIsVendorBlind(t *testing.T) {
	t.Parallel()

	items := []Product{
		product(enums.VendorB, "2", "Vitamin C", 90),
		product(enums.VendorA, "1", "Paracetamol 500", 30),
		product(enums.VendorB, "3", "Zinc", 30),
	}

	Sort(items, enums.CatalogSortPriceAsc)
	if items[0].ProductID != "1" || items[1].ProductID != "3" {
		t.Fatalf("ascending sort broken, ties must keep merge order: %+v", items)
	}

	Sort(items, enums.CatalogSortPriceDesc)
	if items[0].ProductID != "2" {
		t.Fatalf("descending sort broken: %+v", items)
	}
}

func TestDiscountPercent(t *testing.T) {
	t.Parallel()

	p := Product{MRP: decimal.NewFromInt(120), Price: decimal.NewFromInt(100)}
	want := decimal.NewFromFloat(16.67)
	if !p.DiscountPercent().Equal(want) {
		t.Fatalf("want %s, got %s", want, p.DiscountPercent())
	}

	flat := Product{MRP: decimal.NewFromInt(100), Price: decimal.NewFromInt(100)}
	if !flat.DiscountPercent().IsZero() {
		t.Fatalf("no markdown should be zero, got %s", flat.DiscountPercent())
	}
}
