package shop

import (
	"context"
	"errors"
	"fmt"

	"ecommerce_api/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartManager creates carts and manages their line items.
type CartManager struct {
	db *gorm.DB
}

// NewCartManager returns a CartManager backed by db.
func NewCartManager(db *gorm.DB) *CartManager {
	return &CartManager{db: db}
}

// CreateCart opens an empty cart for userID. The user's existence is left
// to the foreign key.
func (m *CartManager) CreateCart(ctx context.Context, userID uint) (*domain.Cart, error) {
	if userID == 0 {
		return nil, invalid("userId is required")
	}
	cart := domain.Cart{UserID: userID, Status: domain.CartStatusOpen}
	if err := m.db.WithContext(ctx).Create(&cart).Error; err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	return &cart, nil
}

// GetCart loads a cart row.
func (m *CartManager) GetCart(ctx context.Context, cartID uint) (*domain.Cart, error) {
	return findCart(m.db.WithContext(ctx), cartID)
}

// AddItem appends a line to an open cart. Repeated calls for the same
// product add separate lines; nothing is merged.
func (m *CartManager) AddItem(ctx context.Context, cartID, productID uint, quantity int) (*domain.CartItem, error) {
	if productID == 0 {
		return nil, invalid("productId is required")
	}
	if quantity <= 0 {
		return nil, invalid("quantity must be a positive integer")
	}

	item := domain.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// lock against a concurrent checkout of the same cart
		cart, err := findCart(tx.Clauses(clause.Locking{Strength: "UPDATE"}), cartID)
		if err != nil {
			return err
		}
		if !cart.IsOpen() {
			return fmt.Errorf("cart %d: %w", cartID, ErrAlreadyCheckedOut)
		}

		var products int64
		if err := tx.Model(&domain.Product{}).Where("id = ?", productID).Count(&products).Error; err != nil {
			return fmt.Errorf("lookup product: %w", err)
		}
		if products == 0 {
			return notFound("Product", productID)
		}

		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("add cart item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItems returns the cart's lines joined with their products. A cart
// without items, or one that does not exist, yields an empty slice.
func (m *CartManager) ListItems(ctx context.Context, cartID uint) ([]domain.CartLine, error) {
	return cartLines(m.db.WithContext(ctx), cartID)
}

// DeleteCart removes the cart's items and then the cart itself. Item
// removal is unconditional; ErrNotFound is reported only for a missing cart row.
func (m *CartManager) DeleteCart(ctx context.Context, cartID uint) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&domain.CartItem{}).Error; err != nil {
			return fmt.Errorf("delete cart items: %w", err)
		}
		res := tx.Delete(&domain.Cart{}, cartID)
		if res.Error != nil {
			return fmt.Errorf("delete cart: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return notFound("Cart", cartID)
		}
		return nil
	})
}

func findCart(tx *gorm.DB, cartID uint) (*domain.Cart, error) {
	var cart domain.Cart
	err := tx.First(&cart, cartID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Cart", cartID)
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return &cart, nil
}

func cartLines(tx *gorm.DB, cartID uint) ([]domain.CartLine, error) {
	lines := []domain.CartLine{}
	err := tx.Table("cart_items").
		Select("products.id AS product_id, products.name, products.description, products.price, products.stock, products.created_at, cart_items.quantity").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.cart_id = ?", cartID).
		Order("cart_items.id").
		Scan(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return lines, nil
}
