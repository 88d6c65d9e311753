package shop

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaymentRequest describes the charge for one checkout.
type PaymentRequest struct {
	CartID uint
	UserID uint
	Amount decimal.Decimal
}

// PaymentAuthorizer charges the customer before an order is written.
// Any returned error aborts the checkout with ErrPaymentFailed.
type PaymentAuthorizer interface {
	Authorize(ctx context.Context, req PaymentRequest) error
}

// PaymentAuthorizerFunc adapts a function to PaymentAuthorizer.
type PaymentAuthorizerFunc func(ctx context.Context, req PaymentRequest) error

func (f PaymentAuthorizerFunc) Authorize(ctx context.Context, req PaymentRequest) error {
	return f(ctx, req)
}

// ApproveAll is the placeholder gateway: every charge succeeds.
type ApproveAll struct{}

func (ApproveAll) Authorize(context.Context, PaymentRequest) error { return nil }
