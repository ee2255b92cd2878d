package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/storeops/storefront-backend/pkg/errors"
)

// APIClient talks to the storefront backend's checkout endpoint.
type APIClient struct {
	baseURL string
	http    *http.Client
}

// NewAPIClient builds a client for the given base URL.
func NewAPIClient(baseURL string) (*APIClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base url required")
	}
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type checkoutLine struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type checkoutRequest struct {
	BranchID int64          `json:"branchId"`
	Items    []checkoutLine `json:"items"`
}

type checkoutResponse struct {
	Data struct {
		Order struct {
			OrderID int64  `json:"orderId"`
			Name    string `json:"name"`
			Status  string `json:"status"`
		} `json:"order"`
		Details []struct {
			Quantity  int     `json:"quantity"`
			UnitPrice float64 `json:"unitPrice"`
		} `json:"details"`
	} `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SubmitCheckout posts the client-priced cart to the checkout endpoint.
func (c *APIClient) SubmitCheckout(ctx context.Context, branchID int64, items []Item) (*CheckoutConfirmation, error) {
	payload := checkoutRequest{
		BranchID: branchID,
		Items:    make([]checkoutLine, len(items)),
	}
	for i, item := range items {
		payload.Items[i] = checkoutLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode checkout request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/orders/checkout", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build checkout request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "submit checkout")
	}
	defer resp.Body.Close()

	var decoded checkoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode checkout response")
	}

	if resp.StatusCode != http.StatusCreated {
		if decoded.Error != nil {
			return nil, pkgerrors.New(pkgerrors.Code(decoded.Error.Code), decoded.Error.Message)
		}
		return nil, pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("checkout failed with status %d", resp.StatusCode))
	}

	var total float64
	for _, detail := range decoded.Data.Details {
		total += float64(detail.Quantity) * detail.UnitPrice
	}
	return &CheckoutConfirmation{
		OrderID: decoded.Data.Order.OrderID,
		Name:    decoded.Data.Order.Name,
		Status:  decoded.Data.Order.Status,
		Total:   total,
	}, nil
}
