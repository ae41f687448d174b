package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/marukota/curiomart/internal/adapter/paypay"
	domainErrors "github.com/marukota/curiomart/internal/domain/errors"
	"github.com/marukota/curiomart/internal/domain/model"
	"github.com/marukota/curiomart/internal/domain/repository"
)

const (
	maxDescriptionLen       = 200
	truncatedDescriptionLen = 190
)

// CheckoutUseCase turns a checkout request into durable payment state and a
// payable artifact from the gateway.
type CheckoutUseCase struct {
	addresses      repository.AddressRepository
	payments       repository.PaymentRepository
	gateway        paypay.Client
	currency       string
	gatewayTimeout time.Duration
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(addresses repository.AddressRepository, payments repository.PaymentRepository, gateway paypay.Client, currency string, gatewayTimeout time.Duration) *CheckoutUseCase {
	if gatewayTimeout <= 0 {
		gatewayTimeout = 8 * time.Second
	}
	return &CheckoutUseCase{
		addresses:      addresses,
		payments:       payments,
		gateway:        gateway,
		currency:       currency,
		gatewayTimeout: gatewayTimeout,
	}
}

// Fulfill creates the payment, shipment, and line items in one transaction,
// obtains a payable URL from the gateway, and returns it. A gateway decline
// or timeout rolls everything back: no orphaned rows survive a checkout the
// buyer cannot pay.
func (u *CheckoutUseCase) Fulfill(ctx context.Context, userID int64, merchantPaymentID string, items []model.OrderItem) (string, error) {
	if !ValidateMerchantPaymentID(merchantPaymentID) {
		return "", domainErrors.ErrInvalidOrder
	}
	if len(items) == 0 {
		return "", domainErrors.ErrInvalidOrder
	}
	for _, item := range items {
		if item.Quantity <= 0 || item.UnitPrice < 0 {
			return "", domainErrors.ErrInvalidOrder
		}
	}

	// The address is immutable read-only data for checkout purposes, so the
	// precondition is checked outside the write transaction.
	address, err := u.addresses.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return "", domainErrors.ErrNoShippingAddress
		}
		return "", err
	}

	description := BuildOrderDescription(items)

	_, payableURL, err := u.payments.CreateCheckout(ctx, userID, merchantPaymentID, address.Snapshot(), items,
		func(ctx context.Context, total int64) (string, error) {
			callCtx, cancel := context.WithTimeout(ctx, u.gatewayTimeout)
			defer cancel()

			req := paypay.CodeRequest{
				MerchantPaymentID: merchantPaymentID,
				Amount:            total,
				Currency:          u.currency,
				Description:       description,
			}
			for _, item := range items {
				req.Items = append(req.Items, paypay.CodeItem{
					ProductID: item.ProductID,
					Quantity:  item.Quantity,
					UnitPrice: item.UnitPrice,
				})
			}

			resp, err := u.gateway.CreatePayableCode(callCtx, req)
			if err != nil {
				return "", fmt.Errorf("%w: %s", domainErrors.ErrGatewayRejected, err)
			}
			if resp.URL == "" {
				return "", domainErrors.ErrGatewayRejected
			}
			return resp.URL, nil
		})
	if err != nil {
		return "", err
	}
	return payableURL, nil
}

// Payments lists a user's checkout attempts, newest first.
func (u *CheckoutUseCase) Payments(ctx context.Context, userID int64) ([]model.Payment, error) {
	return u.payments.ListByUser(ctx, userID)
}

// PaymentDetails returns the gateway's settlement view of the user's payment.
func (u *CheckoutUseCase) PaymentDetails(ctx context.Context, userID int64, merchantPaymentID string) (*model.PaymentDetails, error) {
	payment, err := u.payments.GetByMerchantID(ctx, merchantPaymentID)
	if err != nil {
		return nil, err
	}
	if payment.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	return u.gateway.GetPaymentDetails(ctx, merchantPaymentID)
}

// UnsettledPayments returns payments awaiting settlement for at least grace.
func (u *CheckoutUseCase) UnsettledPayments(ctx context.Context, grace time.Duration, limit int) ([]model.Payment, error) {
	return u.payments.ListUnsettled(ctx, grace, limit)
}

// GatewayDetails queries the gateway directly, without ownership checks.
// Used by the settlement watcher.
func (u *CheckoutUseCase) GatewayDetails(ctx context.Context, merchantPaymentID string) (*model.PaymentDetails, error) {
	return u.gateway.GetPaymentDetails(ctx, merchantPaymentID)
}

// BuildOrderDescription renders the item summary forwarded to the gateway.
// Descriptions longer than 200 characters are truncated to 190 plus an
// ellipsis marker.
func BuildOrderDescription(items []model.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("product %d x%d", item.ProductID, item.Quantity))
	}
	description := strings.Join(parts, ", ")

	runes := []rune(description)
	if len(runes) <= maxDescriptionLen {
		return description
	}
	return string(runes[:truncatedDescriptionLen]) + "..."
}
