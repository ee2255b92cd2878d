package models

import (
	"time"

	"github.com/storeops/storefront-backend/pkg/enums"
)

// Order is a committed purchase record, independent of any cart once created.
type Order struct {
	OrderID     int64             `gorm:"column:order_id;primaryKey;autoIncrement" json:"orderId"`
	BranchID    int64             `gorm:"column:branch_id;not null" json:"branchId"`
	OrderDate   time.Time         `gorm:"column:order_date;not null" json:"orderDate"`
	Name        string            `gorm:"column:name;not null" json:"name"`
	Description string            `gorm:"column:description" json:"description"`
	Status      enums.OrderStatus `gorm:"column:status;not null;default:'pending'" json:"status"`
	Details     []OrderDetail     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"details,omitempty"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Order) TableName() string {
	return "orders"
}
