package shop

import (
	"context"
	"errors"
	"fmt"

	"ecommerce_api/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderInput holds the fields of a manually managed order.
type OrderInput struct {
	UserID uint
	Total  decimal.Decimal
}

func (in OrderInput) validate() error {
	if in.UserID == 0 || in.Total.IsZero() {
		return invalid("Missing user_id or total in the request body")
	}
	if in.Total.IsNegative() {
		return invalid("Total must not be negative")
	}
	return nil
}

// Orders reads and administers orders. Checkout is the normal way orders
// are created; the write methods here serve back-office corrections.
type Orders struct {
	db *gorm.DB
}

// NewOrders returns an Orders service backed by db.
func NewOrders(db *gorm.DB) *Orders {
	return &Orders{db: db}
}

// Page selects a slice of a listing. Page is 1-based.
type Page struct {
	Page     int
	PageSize int
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int { return (p.Page - 1) * p.PageSize }

// List returns one page of orders, newest first, with the total count.
// Admins see every order; everyone else sees their own.
func (s *Orders) List(ctx context.Context, principal *domain.User, page Page) ([]domain.Order, int64, error) {
	q := s.db.WithContext(ctx).Model(&domain.Order{})
	if !principal.IsAdmin() {
		q = q.Where("user_id = ?", principal.ID)
	}
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}
	orders := []domain.Order{}
	if err := q.Order("created_at DESC").Order("id DESC").Offset(page.Offset()).Limit(page.PageSize).Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	return orders, total, nil
}

// Get returns one order visible to the principal. Another user's order
// yields ErrForbidden.
func (s *Orders) Get(ctx context.Context, principal *domain.User, id uint) (*domain.Order, error) {
	var order domain.Order
	err := s.db.WithContext(ctx).First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Order", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if !principal.IsAdmin() && order.UserID != principal.ID {
		return nil, fmt.Errorf("order %d: %w", id, ErrForbidden)
	}
	return &order, nil
}

// Create stores an order that did not come from a cart.
func (s *Orders) Create(ctx context.Context, in OrderInput) (*domain.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	order := domain.Order{UserID: in.UserID, Total: in.Total}
	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &order, nil
}

// Update rewrites an order's owner and total.
func (s *Orders) Update(ctx context.Context, id uint, in OrderInput) (*domain.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	var order domain.Order
	err := db.First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Order", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := db.Model(&order).Updates(map[string]any{"user_id": in.UserID, "total": in.Total}).Error; err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	order.UserID, order.Total = in.UserID, in.Total
	return &order, nil
}

// Delete removes an order.
func (s *Orders) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&domain.Order{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("Order", id)
	}
	return nil
}
