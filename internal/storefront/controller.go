package storefront

import (
	"context"
	"fmt"
	"sync"

	pkgerrors "github.com/storeops/storefront-backend/pkg/errors"
)

// Item is one client-held line: a product reference with the price observed
// when the shopper added it.
type Item struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Subtotal is the line contribution to the local total.
func (i Item) Subtotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

// CheckoutClient submits the local cart to the checkout endpoint.
type CheckoutClient interface {
	SubmitCheckout(ctx context.Context, branchID int64, items []Item) (*CheckoutConfirmation, error)
}

// CheckoutConfirmation is the subset of the checkout response the client
// cares about.
type CheckoutConfirmation struct {
	OrderID int64   `json:"orderId"`
	Name    string  `json:"name"`
	Status  string  `json:"status"`
	Total   float64 `json:"total"`
}

// Controller owns the client-local cart state. All mutation goes through
// its commands; every command persists the new state through the Store
// before returning.
type Controller struct {
	mu     sync.Mutex
	items  []Item
	store  Store
	client CheckoutClient
}

// NewController loads any previously persisted cart from the store.
func NewController(store Store, client CheckoutClient) (*Controller, error) {
	if store == nil {
		return nil, fmt.Errorf("store required")
	}
	items, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load cart state: %w", err)
	}
	return &Controller{items: items, store: store, client: client}, nil
}

// Add merges into an existing line for the same product, keeping the first
// observed price, or appends a new line.
func (c *Controller) Add(item Item) error {
	if item.Quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be greater than zero")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == item.ProductID {
			c.items[i].Quantity += item.Quantity
			return c.persistLocked()
		}
	}
	c.items = append(c.items, item)
	return c.persistLocked()
}

// SetQuantity replaces a line's quantity. Zero is rejected; Remove is the
// only way to drop a line.
func (c *Controller) SetQuantity(productID int64, quantity int) error {
	if quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be greater than zero")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = quantity
			return c.persistLocked()
		}
	}
	return pkgerrors.NotFound("Cart item", productID)
}

// Remove drops the line for the product.
func (c *Controller) Remove(productID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return c.persistLocked()
		}
	}
	return pkgerrors.NotFound("Cart item", productID)
}

// Clear empties the cart.
func (c *Controller) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	return c.persistLocked()
}

// Items returns a copy of the current lines.
func (c *Controller) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Count returns the number of units across all lines.
func (c *Controller) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var count int
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// Total sums line subtotals; an empty cart totals exactly 0.
func (c *Controller) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}

// Checkout submits the cart. Only the quantities that were actually
// submitted are removed after the server confirms, so a line added during
// the round trip survives; any failure leaves the list exactly as it was.
func (c *Controller) Checkout(ctx context.Context, branchID int64) (*CheckoutConfirmation, error) {
	if c.client == nil {
		return nil, fmt.Errorf("checkout client not configured")
	}

	items := c.Items()
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart contains no items")
	}

	confirmation, err := c.client.SubmitCheckout(ctx, branchID, items)
	if err != nil {
		return nil, err
	}

	if clearErr := c.clearSubmitted(items); clearErr != nil {
		return confirmation, fmt.Errorf("order %d placed but local cart not cleared: %w", confirmation.OrderID, clearErr)
	}
	return confirmation, nil
}

// clearSubmitted subtracts the submitted quantities from the current lines,
// dropping any line that reaches zero.
func (c *Controller) clearSubmitted(submitted []Item) error {
	ordered := make(map[int64]int, len(submitted))
	for _, item := range submitted {
		ordered[item.ProductID] += item.Quantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var remaining []Item
	for _, item := range c.items {
		item.Quantity -= ordered[item.ProductID]
		if item.Quantity > 0 {
			remaining = append(remaining, item)
		}
	}
	c.items = remaining
	return c.persistLocked()
}

func (c *Controller) persistLocked() error {
	if err := c.store.Save(c.items); err != nil {
		return fmt.Errorf("persist cart state: %w", err)
	}
	return nil
}
