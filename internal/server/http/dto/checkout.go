package dto

import "time"

// CheckoutItem is one order line in a checkout request.
type CheckoutItem struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int32 `json:"quantity" binding:"required,gt=0"`
	UnitPrice int64 `json:"unit_price" binding:"required,gt=0"`
}

// CheckoutRequest initiates a purchase under a caller-supplied
// merchant payment identifier.
type CheckoutRequest struct {
	MerchantPaymentID string         `json:"merchant_payment_id" binding:"required"`
	Items             []CheckoutItem `json:"items" binding:"required,min=1"`
}

// CheckoutResponse returns the gateway QR code URL for the new payment.
type CheckoutResponse struct {
	MerchantPaymentID string `json:"merchant_payment_id"`
	PaymentURL        string `json:"payment_url"`
}

// PaymentResponse represents one recorded payment.
type PaymentResponse struct {
	MerchantPaymentID string    `json:"merchant_payment_id"`
	CreatedAt         time.Time `json:"created_at"`
}

// PaymentStatusResponse is the gateway's view of a payment.
type PaymentStatusResponse struct {
	MerchantPaymentID string     `json:"merchant_payment_id"`
	Status            string     `json:"status"`
	Amount            int64      `json:"amount"`
	RequestedAt       time.Time  `json:"requested_at"`
	AcceptedAt        *time.Time `json:"accepted_at,omitempty"`
}
