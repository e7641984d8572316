package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wellport/wellport-backend/pkg/enums"
	"github.com/wellport/wellport-backend/pkg/logger"
)

// gateway is the slice of a vendor client the catalog needs.
type gateway interface {
	Vendor() enums.PharmacyVendor
	SearchProducts(ctx context.Context, query string) ([]Product, error)
}

// SearchResult is a merged catalog page. A vendor that failed contributes no
// items and is listed in VendorsDown so callers can tell "no matches" from
// "vendor unreachable".
type SearchResult struct {
	Items       []Product              `json:"items"`
	VendorsDown []enums.PharmacyVendor `json:"vendors_down,omitempty"`
}

// Service fans a search out to every enabled vendor and merges what comes
// back. One slow or broken vendor degrades the result, never kills it.
type Service interface {
	// Search queries the vendors named in enabled, or every wired vendor when
	// enabled is empty. A vendor left out of enabled contributes nothing and is
	// not reported as down.
	Search(ctx context.Context, query string, order enums.CatalogSort, enabled []enums.PharmacyVendor) (SearchResult, error)
}

type service struct {
	gateways []gateway
	logg     *logger.Logger
	timeout  time.Duration
}

func NewService(logg *logger.Logger, timeout time.Duration, gateways ...gateway) (Service, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if len(gateways) == 0 {
		return nil, fmt.Errorf("at least one vendor gateway is required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &service{gateways: gateways, logg: logg, timeout: timeout}, nil
}

func (s *service) Search(ctx context.Context, query string, order enums.CatalogSort, enabled []enums.PharmacyVendor) (SearchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	selected := s.gateways
	if len(enabled) > 0 {
		selected = make([]gateway, 0, len(s.gateways))
		for _, gw := range s.gateways {
			for _, vendor := range enabled {
				if gw.Vendor() == vendor {
					selected = append(selected, gw)
					break
				}
			}
		}
	}

	type vendorPage struct {
		vendor enums.PharmacyVendor
		items  []Product
		err    error
	}

	pages := make([]vendorPage, len(selected))
	var wg sync.WaitGroup
	for i, gw := range selected {
		wg.Add(1)
		go func(i int, gw gateway) {
			defer wg.Done()
			items, err := gw.SearchProducts(ctx, query)
			pages[i] = vendorPage{vendor: gw.Vendor(), items: items, err: err}
		}(i, gw)
	}
	wg.Wait()

	result := SearchResult{Items: []Product{}}
	for _, page := range pages {
		if page.err != nil {
			s.logg.Warn(s.logg.WithVendor(ctx, string(page.vendor)), "vendor search failed, serving partial results")
			result.VendorsDown = append(result.VendorsDown, page.vendor)
			continue
		}
		result.Items = Merge(result.Items, page.items)
	}

	// Filtering and sorting run on the merged list so both vendors are
	// treated identically.
	result.Items = FilterByName(result.Items, query)
	Sort(result.Items, order)
	return result, nil
}
