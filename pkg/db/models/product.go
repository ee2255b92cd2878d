package models

import "time"

// Product is a catalog listing. The cart/checkout subsystem only reads
// price and discount from it; ownership of catalog data lives elsewhere.
type Product struct {
	ProductID   int64     `gorm:"column:product_id;primaryKey;autoIncrement" json:"productId"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	Price       float64   `gorm:"column:price;not null" json:"price"`
	Discount    float64   `gorm:"column:discount;not null;default:0" json:"discount"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Product) TableName() string {
	return "products"
}
