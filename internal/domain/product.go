package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product Model
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"product_id"`                           // Primary key
	Name        string          `gorm:"size:255;not null" json:"name"`                          // Product name
	Description string          `gorm:"type:text" json:"description"`                           // Free-form description
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`               // Unit price
	Stock       int             `gorm:"not null;default:0" json:"stock"`                        // Units in stock
	CreatedAt   time.Time       `json:"created_at"`                                             // Creation time
	CartItems   []CartItem      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"` // Lines referencing the product
}
