package vendors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wellport/wellport-backend/internal/pharmacy/cart"
	"github.com/wellport/wellport-backend/internal/pharmacy/catalog"
	"github.com/wellport/wellport-backend/pkg/enums"
	pkgerrors "github.com/wellport/wellport-backend/pkg/errors"
)

// VendorBClient talks to the secondary pharmacy backend. Vendor B serves
// catalog and stock only; orders always go through vendor A.
type VendorBClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewVendorB builds the vendor B gateway.
func NewVendorB(baseURL string, timeout time.Duration, opts ...Option) (*VendorBClient, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("vendor B base URL is required")
	}
	built := buildOptions(timeout, opts)
	return &VendorBClient{httpClient: built.httpClient, baseURL: trimmed}, nil
}

// Vendor identifies this gateway.
func (c *VendorBClient) Vendor() enums.PharmacyVendor {
	return enums.VendorB
}

// SearchProducts queries the item catalog. Vendor B names everything
// differently (sku/title/list_price), so the mapping is its own.
func (c *VendorBClient) SearchProducts(ctx context.Context, query string) ([]catalog.Product, error) {
	endpoint := fmt.Sprintf("%s/v2/catalog/search?query=%s", c.baseURL, url.QueryEscape(query))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build vendor B search request")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute vendor B search request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, "vendor B search failed")
	}

	var apiResp struct {
		Items []struct {
			SKU        string  `json:"sku"`
			Title      string  `json:"title"`
			ListPrice  float64 `json:"list_price"`
			OfferPrice float64 `json:"offer_price"`
			Pack       string  `json:"pack"`
			Available  bool    `json:"available"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstreamData, err, "decode vendor B search response")
	}

	products := make([]catalog.Product, 0, len(apiResp.Items))
	for _, item := range apiResp.Items {
		products = append(products, catalog.Product{
			Vendor:    enums.VendorB,
			ProductID: item.SKU,
			Name:      item.Title,
			MRP:       decimal.NewFromFloat(item.ListPrice),
			Price:     decimal.NewFromFloat(item.OfferPrice),
			PackSize:  item.Pack,
			Available: item.Available,
		})
	}
	return products, nil
}

// CheckInventory reserves stock for a cart line and returns the reservation
// id plus a fresh snapshot.
func (c *VendorBClient) CheckInventory(ctx context.Context, line cart.Line, contact cart.Contact) (cart.CheckResult, error) {
	payload, err := json.Marshal(map[string]any{
		"sku": line.ProductID,
		"qty": line.Quantity,
		"buyer": map[string]string{
			"name":  contact.Name,
			"phone": contact.Phone,
		},
	})
	if err != nil {
		return cart.CheckResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal vendor B reserve request")
	}

	endpoint := c.baseURL + "/v2/stock/reserve"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return cart.CheckResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build vendor B reserve request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return cart.CheckResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute vendor B reserve request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return cart.CheckResult{}, statusError(resp, "vendor B stock reserve failed")
	}

	var apiResp struct {
		ReservationID int64 `json:"reservation_id"`
		Pricing       struct {
			List  float64 `json:"list"`
			Offer float64 `json:"offer"`
		} `json:"pricing"`
		Limits struct {
			Min int `json:"min"`
			Max int `json:"max"`
		} `json:"limits"`
		ETADays   int  `json:"eta_days"`
		Available bool `json:"available"`
		Fees      *struct {
			Handling *float64 `json:"handling"`
			Platform *float64 `json:"platform"`
			Shipping *float64 `json:"shipping"`
		} `json:"fees"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return cart.CheckResult{}, pkgerrors.Wrap(pkgerrors.CodeUpstreamData, err, "decode vendor B reserve response")
	}
	if apiResp.ReservationID == 0 {
		return cart.CheckResult{}, pkgerrors.New(pkgerrors.CodeUpstreamData, "vendor B returned no reservation id")
	}

	list := decimal.NewFromFloat(apiResp.Pricing.List)
	offer := decimal.NewFromFloat(apiResp.Pricing.Offer)
	snapshot := cart.Snapshot{
		Price:           &list,
		DiscountedPrice: &offer,
		MinQuantity:     apiResp.Limits.Min,
		MaxQuantity:     apiResp.Limits.Max,
		Available:       apiResp.Available,
		FetchedAt:       time.Now().UTC(),
	}
	if apiResp.ETADays > 0 {
		snapshot.ETA = fmt.Sprintf("%d days", apiResp.ETADays)
	}
	if apiResp.Fees != nil {
		fees := &cart.FeeSchedule{}
		if apiResp.Fees.Handling != nil {
			amount := decimal.NewFromFloat(*apiResp.Fees.Handling)
			fees.Handling = &amount
		}
		if apiResp.Fees.Platform != nil {
			amount := decimal.NewFromFloat(*apiResp.Fees.Platform)
			fees.Platform = &amount
		}
		if apiResp.Fees.Shipping != nil {
			amount := decimal.NewFromFloat(*apiResp.Fees.Shipping)
			fees.Delivery = &amount
		}
		snapshot.Fees = fees
	}
	return cart.CheckResult{CartRefID: apiResp.ReservationID, Snapshot: snapshot}, nil
}
