package usecase

import (
	"context"

	domainErrors "github.com/marukota/curiomart/internal/domain/errors"
	"github.com/marukota/curiomart/internal/domain/model"
	"github.com/marukota/curiomart/internal/domain/repository"
)

// ShipmentUseCase drives the milestone-timestamp state machine.
type ShipmentUseCase struct {
	shipments repository.ShipmentRepository
}

// NewShipmentUseCase constructs ShipmentUseCase.
func NewShipmentUseCase(shipments repository.ShipmentRepository) *ShipmentUseCase {
	return &ShipmentUseCase{shipments: shipments}
}

// UpdateStatus applies one admin-triggered transition and returns the
// updated shipment.
func (u *ShipmentUseCase) UpdateStatus(ctx context.Context, shipmentID int64, target string) (*model.Shipment, error) {
	status, ok := model.ParseShipmentStatus(target)
	if !ok {
		return nil, domainErrors.ErrInvalidTransition
	}
	return u.shipments.ApplyTransition(ctx, shipmentID, status)
}

// Get fetches one shipment.
func (u *ShipmentUseCase) Get(ctx context.Context, shipmentID int64) (*model.Shipment, error) {
	return u.shipments.GetByID(ctx, shipmentID)
}

// ListByUser lists shipments belonging to the user's payments.
func (u *ShipmentUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Shipment, error) {
	return u.shipments.ListByUser(ctx, userID)
}

// MarkPaymentFailed transitions the shipment owned by the payment to
// payment_failed. Used when the gateway reports the payment dead.
func (u *ShipmentUseCase) MarkPaymentFailed(ctx context.Context, paymentID int64) (*model.Shipment, error) {
	shipment, err := u.shipments.GetByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	return u.shipments.ApplyTransition(ctx, shipment.ID, model.ShipmentStatusPaymentFailed)
}
