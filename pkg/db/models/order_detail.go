package models

// OrderDetail is one line item of a committed order. UnitPrice is frozen at
// order-creation time and must never be recomputed from the catalog.
type OrderDetail struct {
	OrderDetailID int64   `gorm:"column:order_detail_id;primaryKey;autoIncrement" json:"orderDetailId"`
	OrderID       int64   `gorm:"column:order_id;not null;index" json:"orderId"`
	ProductID     int64   `gorm:"column:product_id;not null" json:"productId"`
	Quantity      int     `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice     float64 `gorm:"column:unit_price;not null" json:"unitPrice"`
	Notes         string  `gorm:"column:notes" json:"notes"`
}

func (OrderDetail) TableName() string {
	return "order_details"
}

// Subtotal is the line contribution to the order total.
func (d OrderDetail) Subtotal() float64 {
	return float64(d.Quantity) * d.UnitPrice
}
