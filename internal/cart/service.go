package cart

import (
	"context"
	"fmt"

	"github.com/storeops/storefront-backend/internal/catalog"
	"github.com/storeops/storefront-backend/pkg/db/models"
	pkgerrors "github.com/storeops/storefront-backend/pkg/errors"
)

// CartView is the fetch response shape: the cart row, its lines, and the
// running total computed from snapshot prices.
type CartView struct {
	Cart  *models.Cart      `json:"cart"`
	Items []models.CartItem `json:"items"`
	Total float64           `json:"total"`
}

// ValidatedItem is one line of the checkout preview, priced from the live
// catalog rather than cart snapshots.
type ValidatedItem struct {
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Discount    float64 `json:"discount"`
	Subtotal    float64 `json:"subtotal"`
}

// ValidationReport is the full checkout preview for a cart.
type ValidationReport struct {
	Items []ValidatedItem `json:"items"`
	Total float64         `json:"total"`
}

type service struct {
	repo     CartRepository
	products catalog.ProductRepository
}

// NewService builds the cart service.
func NewService(repo CartRepository, products catalog.ProductRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo, products: products}, nil
}

func (s *service) GetCart(ctx context.Context, sessionID string) (*CartView, error) {
	cart, err := s.repo.GetOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.Items(ctx, cart.CartID)
	if err != nil {
		return nil, err
	}
	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}
	return &CartView{Cart: cart, Items: items, Total: total}, nil
}

// AddItem snapshots a unit price into the new line: the caller's value when
// supplied, otherwise the product's current discounted price, so an
// unpriced add agrees with the validation preview and server-priced
// checkout. Adding a product already in the cart increments the existing
// line and keeps its original snapshot price.
func (s *service) AddItem(ctx context.Context, sessionID string, productID int64, quantity int, unitPrice *float64) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be greater than zero")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	price := catalog.FinalPrice(product)
	if unitPrice != nil {
		price = *unitPrice
	}

	cart, err := s.repo.GetOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.repo.AddItem(ctx, cart.CartID, product.ProductID, quantity, price)
}

// UpdateItemQuantity rejects zero explicitly: removing a line is a separate
// operation, never an implicit side effect of a quantity update.
func (s *service) UpdateItemQuantity(ctx context.Context, sessionID string, cartItemID int64, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be greater than zero")
	}
	if _, err := s.ownedItem(ctx, sessionID, cartItemID); err != nil {
		return nil, err
	}
	return s.repo.UpdateItemQuantity(ctx, cartItemID, quantity)
}

func (s *service) RemoveItem(ctx context.Context, sessionID string, cartItemID int64) error {
	if _, err := s.ownedItem(ctx, sessionID, cartItemID); err != nil {
		return err
	}
	return s.repo.RemoveItem(ctx, cartItemID)
}

// Validate prices the supplied lines from the live catalog, applying
// current discounts. Values are rounded for display; nothing is persisted
// and no cart is touched.
func (s *service) Validate(ctx context.Context, items []ItemRef) (*ValidationReport, error) {
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}

	report := &ValidationReport{Items: make([]ValidatedItem, 0, len(items))}
	var total float64
	for _, item := range items {
		if item.ProductID <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "productId must be positive")
		}
		if item.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("quantity must be greater than zero for product %d", item.ProductID))
		}
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		unit := catalog.FinalPrice(product)
		subtotal := unit * float64(item.Quantity)
		total += subtotal
		report.Items = append(report.Items, ValidatedItem{
			ProductID:   product.ProductID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   catalog.RoundDisplay(unit),
			Discount:    product.Discount,
			Subtotal:    catalog.RoundDisplay(subtotal),
		})
	}
	report.Total = catalog.RoundDisplay(total)
	return report, nil
}

func (s *service) ownedItem(ctx context.Context, sessionID string, cartItemID int64) (*models.CartItem, error) {
	cart, err := s.repo.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.FindItem(ctx, cartItemID)
	if err != nil {
		return nil, err
	}
	if item.CartID != cart.CartID {
		return nil, pkgerrors.NotFound("Cart item", cartItemID)
	}
	return item, nil
}
