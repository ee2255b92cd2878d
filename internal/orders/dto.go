package orders

import (
	"github.com/storeops/storefront-backend/pkg/db/models"
)

// CheckoutItem is one requested line. UnitPrice is nil for server-priced
// checkouts; the cart checkout path passes the cart's snapshot price.
type CheckoutItem struct {
	ProductID int64    `json:"productId"`
	Quantity  int      `json:"quantity"`
	UnitPrice *float64 `json:"unitPrice,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

// CheckoutInput carries everything needed to commit an order.
type CheckoutInput struct {
	BranchID    int64          `json:"branchId"`
	Name        string         `json:"name,omitempty"`
	Description string         `json:"description,omitempty"`
	Items       []CheckoutItem `json:"items"`
}

// CheckoutResult mirrors the checkout response body: the created order plus
// its detail rows in request order.
type CheckoutResult struct {
	Order   *models.Order        `json:"order"`
	Details []models.OrderDetail `json:"details"`
}

// UpdateOrderInput holds the mutable order header fields. Nil pointers leave
// the stored value untouched.
type UpdateOrderInput struct {
	BranchID    *int64  `json:"branchId,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// OrderPage is one page of the orders listing.
type OrderPage struct {
	Orders     []models.Order `json:"orders"`
	NextCursor string         `json:"nextCursor,omitempty"`
}
