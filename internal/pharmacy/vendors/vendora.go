package vendors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wellport/wellport-backend/internal/pharmacy/cart"
	"github.com/wellport/wellport-backend/internal/pharmacy/catalog"
	"github.com/wellport/wellport-backend/pkg/enums"
	pkgerrors "github.com/wellport/wellport-backend/pkg/errors"
)

// VendorAClient talks to the primary pharmacy backend. Vendor A also runs the
// order endpoint, so this client is the one the submitter is wired to.
type VendorAClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewVendorA builds the vendor A gateway.
func NewVendorA(baseURL string, timeout time.Duration, opts ...Option) (*VendorAClient, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("vendor A base URL is required")
	}
	built := buildOptions(timeout, opts)
	return &VendorAClient{httpClient: built.httpClient, baseURL: trimmed}, nil
}

// Vendor identifies this gateway.
func (c *VendorAClient) Vendor() enums.PharmacyVendor {
	return enums.VendorA
}

// SearchProducts queries the medicine catalog and maps it onto the neutral
// product shape.
func (c *VendorAClient) SearchProducts(ctx context.Context, query string) ([]catalog.Product, error) {
	endpoint := fmt.Sprintf("%s/api/v1/medicines?search=%s", c.baseURL, url.QueryEscape(query))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build vendor A search request")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute vendor A search request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, "vendor A search failed")
	}

	var apiResp struct {
		Data []struct {
			MedicineID   string  `json:"medicine_id"`
			MedicineName string  `json:"medicine_name"`
			MRP          float64 `json:"mrp"`
			SellingPrice float64 `json:"selling_price"`
			PackSize     string  `json:"pack_size"`
			InStock      bool    `json:"in_stock"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstreamData, err, "decode vendor A search response")
	}

	products := make([]catalog.Product, 0, len(apiResp.Data))
	for _, item := range apiResp.Data {
		products = append(products, catalog.Product{
			Vendor:    enums.VendorA,
			ProductID: item.MedicineID,
			Name:      item.MedicineName,
			MRP:       decimal.NewFromFloat(item.MRP),
			Price:     decimal.NewFromFloat(item.SellingPrice),
			PackSize:  item.PackSize,
			Available: item.InStock,
		})
	}
	return products, nil
}

// CheckInventory registers a cart line with vendor A and returns the row id
// plus a fresh price/stock snapshot.
func (c *VendorAClient) CheckInventory(ctx context.Context, line cart.Line, contact cart.Contact) (cart.CheckResult, error) {
	payload, err := json.Marshal(map[string]any{
		"medicine_id":    line.ProductID,
		"quantity":       line.Quantity,
		"customer_name":  contact.Name,
		"customer_phone": contact.Phone,
	})
	if err != nil {
		return cart.CheckResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal vendor A inventory request")
	}

	endpoint := c.baseURL + "/api/v1/cart/items"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return cart.CheckResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build vendor A inventory request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return cart.CheckResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute vendor A inventory request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return cart.CheckResult{}, statusError(resp, "vendor A inventory check failed")
	}

	var apiResp struct {
		CartItemID   int64   `json:"cart_item_id"`
		MRP          float64 `json:"mrp"`
		SellingPrice float64 `json:"selling_price"`
		MinQty       int     `json:"min_qty"`
		MaxQty       int     `json:"max_qty"`
		DeliveryETA  string  `json:"delivery_eta"`
		InStock      bool    `json:"in_stock"`
		Charges      []struct {
			Type   string  `json:"type"`
			Amount float64 `json:"amount"`
		} `json:"charges"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return cart.CheckResult{}, pkgerrors.Wrap(pkgerrors.CodeUpstreamData, err, "decode vendor A inventory response")
	}
	if apiResp.CartItemID == 0 {
		return cart.CheckResult{}, pkgerrors.New(pkgerrors.CodeUpstreamData, "vendor A returned no cart item id")
	}

	mrp := decimal.NewFromFloat(apiResp.MRP)
	price := decimal.NewFromFloat(apiResp.SellingPrice)
	snapshot := cart.Snapshot{
		Price:           &mrp,
		DiscountedPrice: &price,
		MinQuantity:     apiResp.MinQty,
		MaxQuantity:     apiResp.MaxQty,
		ETA:             apiResp.DeliveryETA,
		Available:       apiResp.InStock,
		FetchedAt:       time.Now().UTC(),
	}
	if fees := mapVendorACharges(apiResp.Charges); fees != nil {
		snapshot.Fees = fees
	}
	return cart.CheckResult{CartRefID: apiResp.CartItemID, Snapshot: snapshot}, nil
}

// CreateOrder submits the reconciled cart. Vendor A expects the cart row ids
// as one comma-joined string.
func (c *VendorAClient) CreateOrder(ctx context.Context, req cart.OrderRequest) (string, error) {
	refs := make([]string, 0, len(req.CartRefIDs))
	for _, id := range req.CartRefIDs {
		refs = append(refs, strconv.FormatInt(id, 10))
	}

	payload, err := json.Marshal(map[string]any{
		"customer_ref":     req.Identity,
		"cart_item_ids":    strings.Join(refs, ","),
		"delivery_address": formatAddress(req.Address),
		"payable_amount":   req.PayableAmount,
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal vendor A order request")
	}

	endpoint := c.baseURL + "/api/v1/orders"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build vendor A order request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute vendor A order request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", statusError(resp, "vendor A order submission failed")
	}

	var apiResp struct {
		OrderID string `json:"order_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeUpstreamData, err, "decode vendor A order response")
	}
	if apiResp.OrderID == "" {
		return "", pkgerrors.New(pkgerrors.CodeUpstreamData, "vendor A returned no order id")
	}
	return apiResp.OrderID, nil
}

func mapVendorACharges(charges []struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}) *cart.FeeSchedule {
	if len(charges) == 0 {
		return nil
	}
	fees := &cart.FeeSchedule{}
	quoted := false
	for _, charge := range charges {
		amount := decimal.NewFromFloat(charge.Amount)
		switch strings.ToLower(charge.Type) {
		case "handling":
			fees.Handling = &amount
			quoted = true
		case "platform":
			fees.Platform = &amount
			quoted = true
		case "delivery", "shipping":
			fees.Delivery = &amount
			quoted = true
		}
	}
	if !quoted {
		return nil
	}
	return fees
}

func formatAddress(addr cart.Address) string {
	parts := []string{addr.Name, addr.Phone, addr.Line1}
	if addr.Line2 != "" {
		parts = append(parts, addr.Line2)
	}
	parts = append(parts, addr.City, addr.State, addr.PostalCode)
	return strings.Join(parts, ", ")
}

func statusError(resp *http.Response, message string) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, requestBodyReadLimit))
	return pkgerrors.Wrap(
		pkgerrors.CodeDependency,
		fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))),
		message,
	)
}
