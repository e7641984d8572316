package enums

// CatalogSort orders a merged product list. Sorting applies uniformly after
// the vendor catalogs are concatenated; vendor origin never affects precedence.
type CatalogSort string

const (
	CatalogSortNone      CatalogSort = ""
	CatalogSortPriceAsc  CatalogSort = "price_asc"
	CatalogSortPriceDesc CatalogSort = "price_desc"
)

func (s CatalogSort) IsValid() bool {
	switch s {
	case CatalogSortNone, CatalogSortPriceAsc, CatalogSortPriceDesc:
		return true
	}
	return false
}
