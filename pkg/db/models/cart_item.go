package models

// CartItem is one product/quantity row within a cart. UnitPrice is the
// snapshot taken when the item was first added, not a live catalog value.
// At most one row exists per (cart, product) pair.
type CartItem struct {
	CartItemID int64   `gorm:"column:cart_item_id;primaryKey;autoIncrement" json:"cartItemId"`
	CartID     int64   `gorm:"column:cart_id;not null;index:idx_cart_product,unique" json:"cartId"`
	ProductID  int64   `gorm:"column:product_id;not null;index:idx_cart_product,unique" json:"productId"`
	Quantity   int     `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice  float64 `gorm:"column:unit_price;not null" json:"unitPrice"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// Subtotal is the line contribution to the cart total.
func (i CartItem) Subtotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}
