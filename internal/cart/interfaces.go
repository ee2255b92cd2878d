package cart

import (
	"context"

	"gorm.io/gorm"

	"github.com/storeops/storefront-backend/pkg/db/models"
)

// CartRepository exposes persistence operations for session carts.
type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	GetOrCreate(ctx context.Context, sessionID string) (*models.Cart, error)
	FindBySession(ctx context.Context, sessionID string) (*models.Cart, error)
	AddItem(ctx context.Context, cartID, productID int64, quantity int, unitPrice float64) (*models.CartItem, error)
	FindItem(ctx context.Context, cartItemID int64) (*models.CartItem, error)
	UpdateItemQuantity(ctx context.Context, cartItemID int64, quantity int) (*models.CartItem, error)
	RemoveItem(ctx context.Context, cartItemID int64) error
	Items(ctx context.Context, cartID int64) ([]models.CartItem, error)
	Total(ctx context.Context, cartID int64) (float64, error)
	ClearCart(ctx context.Context, cartID int64) error
}

// ItemRef is a product/quantity pair supplied by a caller, independent of
// any persisted cart.
type ItemRef struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// Service is the session-facing cart API used by controllers.
type Service interface {
	GetCart(ctx context.Context, sessionID string) (*CartView, error)
	AddItem(ctx context.Context, sessionID string, productID int64, quantity int, unitPrice *float64) (*models.CartItem, error)
	UpdateItemQuantity(ctx context.Context, sessionID string, cartItemID int64, quantity int) (*models.CartItem, error)
	RemoveItem(ctx context.Context, sessionID string, cartItemID int64) error
	Validate(ctx context.Context, items []ItemRef) (*ValidationReport, error)
}
