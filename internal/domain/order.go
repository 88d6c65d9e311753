package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order Model
type Order struct {
	ID        uint            `gorm:"primaryKey" json:"order_id"`               // Primary key
	CartID    *uint           `gorm:"uniqueIndex" json:"cart_id"`               // Source cart, nil for manually created orders
	UserID    uint            `gorm:"index;not null" json:"user_id"`            // Owner, copied from the cart at checkout
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"` // Order total
	CreatedAt time.Time       `json:"created_at"`                               // Creation time
}
