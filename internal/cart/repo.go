package cart

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/storeops/storefront-backend/pkg/db"
	"github.com/storeops/storefront-backend/pkg/db/models"
	pkgerrors "github.com/storeops/storefront-backend/pkg/errors"
)

// Repository is the GORM-backed cart repository.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(gdb *gorm.DB) *Repository {
	return &Repository{db: gdb}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// GetOrCreate returns the session's cart, creating an empty one on first
// access.
func (r *Repository) GetOrCreate(ctx context.Context, sessionID string) (*models.Cart, error) {
	cart, err := r.FindBySession(ctx, sessionID)
	if err == nil {
		return cart, nil
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		return nil, err
	}

	created := &models.Cart{
		SessionID: sessionID,
		UpdatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(created).Error; err != nil {
		return nil, err
	}
	created.Items = []models.CartItem{}
	return created, nil
}

// FindBySession loads the cart with its items for one session.
func (r *Repository) FindBySession(ctx context.Context, sessionID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("session_id = ?", sessionID).
		First(&cart).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.NotFound("Cart", sessionID)
		}
		return nil, err
	}
	return &cart, nil
}

// AddItem inserts a new line or, when the product is already in the cart,
// increments the existing line's quantity. The stored unit price is the one
// captured when the line was first created.
func (r *Repository) AddItem(ctx context.Context, cartID, productID int64, quantity int, unitPrice float64) (*models.CartItem, error) {
	tx := r.db.WithContext(ctx)

	var existing models.CartItem
	err := tx.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&existing).Error
	switch {
	case err == nil:
		existing.Quantity += quantity
		if err := tx.Save(&existing).Error; err != nil {
			return nil, err
		}
		if err := r.touchCart(ctx, cartID); err != nil {
			return nil, err
		}
		return &existing, nil
	case db.IsNotFound(err):
		item := &models.CartItem{
			CartID:    cartID,
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: unitPrice,
		}
		if err := tx.Create(item).Error; err != nil {
			return nil, err
		}
		if err := r.touchCart(ctx, cartID); err != nil {
			return nil, err
		}
		return item, nil
	default:
		return nil, err
	}
}

// FindItem loads one cart line by id.
func (r *Repository) FindItem(ctx context.Context, cartItemID int64) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).First(&item, "cart_item_id = ?", cartItemID).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.NotFound("Cart item", cartItemID)
		}
		return nil, err
	}
	return &item, nil
}

// UpdateItemQuantity sets the quantity of an existing line. Quantity
// validation happens in the service; zero never reaches this method.
func (r *Repository) UpdateItemQuantity(ctx context.Context, cartItemID int64, quantity int) (*models.CartItem, error) {
	item, err := r.FindItem(ctx, cartItemID)
	if err != nil {
		return nil, err
	}
	item.Quantity = quantity
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	if err := r.touchCart(ctx, item.CartID); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes one line from the cart.
func (r *Repository) RemoveItem(ctx context.Context, cartItemID int64) error {
	item, err := r.FindItem(ctx, cartItemID)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.CartItem{}, "cart_item_id = ?", cartItemID).Error; err != nil {
		return err
	}
	return r.touchCart(ctx, item.CartID)
}

// Items returns the cart's lines ordered by insertion.
func (r *Repository) Items(ctx context.Context, cartID int64) ([]models.CartItem, error) {
	var rows []models.CartItem
	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("cart_item_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Total sums quantity times snapshot unit price across the cart.
func (r *Repository) Total(ctx context.Context, cartID int64) (float64, error) {
	items, err := r.Items(ctx, cartID)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total, nil
}

// ClearCart removes every line. Clearing an already empty cart is a no-op.
func (r *Repository) ClearCart(ctx context.Context, cartID int64) error {
	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return r.touchCart(ctx, cartID)
}

func (r *Repository) touchCart(ctx context.Context, cartID int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("cart_id = ?", cartID).
		Update("updated_at", time.Now().UTC()).Error
}
