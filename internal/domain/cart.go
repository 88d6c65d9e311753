package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart statuses
const (
	CartStatusOpen       = "open"        // Accepting items
	CartStatusCheckedOut = "checked_out" // Items converted into an order
)

// Cart Model
type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"cart_id"`                               // Primary key
	UserID    uint       `gorm:"index;not null" json:"user_id"`                           // Foreign key to User
	Status    string     `gorm:"size:16;not null;default:open" json:"status"`             // open or checked_out
	CreatedAt time.Time  `json:"created_at"`                                              // Creation time
	Items     []CartItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`  // Line items
	Orders    []Order    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"` // Order produced at checkout
}

// IsOpen reports whether the cart still accepts items and checkout
func (c *Cart) IsOpen() bool {
	return c.Status == "" || c.Status == CartStatusOpen
}

// CartItem Model
type CartItem struct {
	ID        uint `gorm:"primaryKey" json:"cart_item_id"`   // Primary key
	CartID    uint `gorm:"index;not null" json:"cart_id"`    // Foreign key to Cart
	ProductID uint `gorm:"index;not null" json:"product_id"` // Foreign key to Product
	Quantity  int  `gorm:"not null" json:"quantity"`         // Positive quantity
}

// CartLine is a cart item joined with its product
type CartLine struct {
	ProductID   uint            `json:"product_id"`  // Product ID
	Name        string          `json:"name"`        // Product name
	Description string          `json:"description"` // Product description
	Price       decimal.Decimal `json:"price"`       // Unit price
	Stock       int             `json:"stock"`       // Units in stock
	CreatedAt   time.Time       `json:"created_at"`  // Product creation time
	Quantity    int             `json:"quantity"`    // Quantity on the line
}

// Subtotal returns price times quantity for the line
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
