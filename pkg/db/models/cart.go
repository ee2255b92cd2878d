package models

import "time"

// Cart is the server-persisted collection of pending line items for one
// anonymous browsing session. Created lazily on first access, never
// explicitly deleted; abandoned carts simply go stale.
type Cart struct {
	CartID    int64      `gorm:"column:cart_id;primaryKey;autoIncrement" json:"cartId"`
	SessionID string     `gorm:"column:session_id;not null;uniqueIndex" json:"sessionId"`
	UserID    *int64     `gorm:"column:user_id" json:"userId,omitempty"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"column:updated_at" json:"updatedAt"`
}

func (Cart) TableName() string {
	return "carts"
}
