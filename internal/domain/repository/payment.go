package repository

import (
	"context"
	"time"

	"github.com/marukota/curiomart/internal/domain/model"
)

// PayFunc obtains a payable artifact from the gateway for the checkout being
// committed. It runs inside the checkout transaction: an error rolls back
// every row written so far.
type PayFunc func(ctx context.Context, total int64) (string, error)

// PaymentRepository describes persistence operations with payments and their
// owned rows.
type PaymentRepository interface {
	// CreateCheckout atomically inserts the payment, its shipment with the
	// given address snapshot, and one line item per order item, then invokes
	// pay. Returns the created payment and the payable URL.
	CreateCheckout(ctx context.Context, userID int64, merchantPaymentID, deliveryAddress string, items []model.OrderItem, pay PayFunc) (*model.Payment, string, error)
	GetByMerchantID(ctx context.Context, merchantPaymentID string) (*model.Payment, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Payment, error)
	ListLineItems(ctx context.Context, paymentID int64) ([]model.PurchasedLineItem, error)
	// ListUnsettled returns payments older than the grace period whose
	// shipment carries no milestone timestamp yet.
	ListUnsettled(ctx context.Context, olderThan time.Duration, limit int) ([]model.Payment, error)
}
