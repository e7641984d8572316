package catalog

import (
	"sort"
	"strings"

	"github.com/wellport/wellport-backend/pkg/enums"
)

// Merge concatenates per-vendor result sets into one list. Identifiers are
// disjoint across vendors, so no dedup happens; every input item survives.
func Merge(sets ...[]Product) []Product {
	total := 0
	for _, set := range sets {
		total += len(set)
	}
	merged := make([]Product, 0, total)
	for _, set := range sets {
		merged = append(merged, set...)
	}
	return merged
}

// FilterByName keeps products whose name contains the query,
// case-insensitively. A blank query keeps everything.
func FilterByName(products []Product, query string) []Product {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return products
	}
	kept := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			kept = append(kept, p)
		}
	}
	return kept
}

// Sort orders the merged list in place. Ties keep their merge order so the
// output is stable across identical inputs.
func Sort(products []Product, order enums.CatalogSort) {
	switch order {
	case enums.CatalogSortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.LessThan(products[j].Price)
		})
	case enums.CatalogSortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[j].Price.LessThan(products[i].Price)
		})
	}
}
