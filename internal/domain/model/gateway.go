package model

import "time"

// PaymentGatewayStatus mirrors the status vocabulary of the PayPay API.
type PaymentGatewayStatus string

const (
	GatewayStatusCreated       PaymentGatewayStatus = "CREATED"
	GatewayStatusAuthorized    PaymentGatewayStatus = "AUTHORIZED"
	GatewayStatusReauthorizing PaymentGatewayStatus = "REAUTHORIZING"
	GatewayStatusCompleted     PaymentGatewayStatus = "COMPLETED"
	GatewayStatusRefunded      PaymentGatewayStatus = "REFUNDED"
	GatewayStatusFailed        PaymentGatewayStatus = "FAILED"
	GatewayStatusCanceled      PaymentGatewayStatus = "CANCELED"
	GatewayStatusExpired       PaymentGatewayStatus = "EXPIRED"
)

// SettledUnpaid reports whether the gateway considers the payment dead:
// the buyer will never complete it.
func (s PaymentGatewayStatus) SettledUnpaid() bool {
	return s == GatewayStatusFailed || s == GatewayStatusCanceled || s == GatewayStatusExpired
}

// PaymentDetails is the gateway's view of one merchant payment.
type PaymentDetails struct {
	MerchantPaymentID string
	Status            PaymentGatewayStatus
	Amount            int64
	RequestedAt       time.Time
	AcceptedAt        *time.Time
}
