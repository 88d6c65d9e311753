package shop

import (
	"context"
	"errors"
	"fmt"

	"ecommerce_api/internal/domain"
	"ecommerce_api/internal/metrics"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Checkout turns an open cart into an order.
//
// The cart moves Open -> Validated -> OrderCreated -> Cleared inside a single
// transaction holding a row lock on the cart. Anything failing before commit
// leaves the cart open with its items, and no order is written. A cart that
// was already checked out is rejected with ErrAlreadyCheckedOut.
type Checkout struct {
	db       *gorm.DB
	payments PaymentAuthorizer
}

// NewCheckout returns a Checkout charging through payments. A nil
// authorizer approves every charge.
func NewCheckout(db *gorm.DB, payments PaymentAuthorizer) *Checkout {
	if payments == nil {
		payments = ApproveAll{}
	}
	return &Checkout{db: db, payments: payments}
}

// Checkout validates the cart, authorizes payment, creates the order owned by
// the cart's user and clears the cart's items.
func (c *Checkout) Checkout(ctx context.Context, cartID uint) (*domain.Order, error) {
	var order domain.Order
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := findCart(tx.Clauses(clause.Locking{Strength: "UPDATE"}), cartID)
		if err != nil {
			return err
		}
		if !cart.IsOpen() {
			return fmt.Errorf("cart %d: %w", cartID, ErrAlreadyCheckedOut)
		}

		lines, err := cartLines(tx, cartID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return invalid("Cart is empty")
		}
		total := decimal.Zero
		for _, l := range lines {
			total = total.Add(l.Subtotal())
		}

		charge := PaymentRequest{CartID: cart.ID, UserID: cart.UserID, Amount: total}
		if err := c.payments.Authorize(ctx, charge); err != nil {
			return fmt.Errorf("%w: %w", ErrPaymentFailed, err)
		}

		// owner comes from the cart row, never from the request
		order = domain.Order{CartID: &cart.ID, UserID: cart.UserID, Total: total}
		if err := tx.Create(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// orders.cart_id is unique: another checkout of this cart won
				return fmt.Errorf("cart %d: %w", cartID, ErrAlreadyCheckedOut)
			}
			return fmt.Errorf("create order: %w", err)
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&domain.CartItem{}).Error; err != nil {
			return fmt.Errorf("clear cart items: %w", err)
		}
		if err := tx.Model(cart).Update("status", domain.CartStatusCheckedOut).Error; err != nil {
			return fmt.Errorf("close cart: %w", err)
		}
		return nil
	})

	outcome := checkoutOutcome(err)
	metrics.CheckoutTotal.WithLabelValues(outcome).Inc()
	if err != nil {
		entry := logrus.WithFields(logrus.Fields{"cart_id": cartID, "outcome": outcome})
		if outcome == "error" {
			entry.WithError(err).Error("Checkout failed")
		} else {
			entry.WithError(err).Warn("Checkout rejected")
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"cart_id":  cartID,
		"order_id": order.ID,
		"user_id":  order.UserID,
		"total":    order.Total.String(),
	}).Info("Checkout completed")
	return &order, nil
}

func checkoutOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadyCheckedOut):
		return "already_checked_out"
	case errors.Is(err, ErrPaymentFailed):
		return "payment_failed"
	case errors.Is(err, ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}
