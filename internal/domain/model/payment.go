package model

import "time"

// Payment records one checkout attempt. The merchant payment identifier is
// the caller-supplied idempotency key, unique across all payments. Payment
// rows are never mutated after creation; settlement status lives at the
// gateway.
type Payment struct {
	ID                int64
	UserID            int64
	MerchantPaymentID string
	CreatedAt         time.Time
}

// OrderItem is one line of a checkout request. Unit price is snapshotted in
// integer yen at checkout time, not re-read from the catalog.
type OrderItem struct {
	ProductID int64
	Quantity  int32
	UnitPrice int64
}

// Total returns quantity times unit price for the line.
func (i OrderItem) Total() int64 {
	return int64(i.Quantity) * i.UnitPrice
}

// PurchasedLineItem is a persisted order line owned by a payment.
type PurchasedLineItem struct {
	ID        int64
	PaymentID int64
	ProductID int64
	Quantity  int32
	UnitPrice int64
}

// OrderTotal sums line totals for a checkout.
func OrderTotal(items []OrderItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Total()
	}
	return total
}
