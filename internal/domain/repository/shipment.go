package repository

import (
	"context"

	"github.com/marukota/curiomart/internal/domain/model"
)

// ShipmentRepository describes persistence operations with shipments.
type ShipmentRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Shipment, error)
	GetByPaymentID(ctx context.Context, paymentID int64) (*model.Shipment, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Shipment, error)
	// ApplyTransition sets the milestone timestamp for target under the
	// allowed-transition guard and returns the updated shipment.
	ApplyTransition(ctx context.Context, shipmentID int64, target model.ShipmentStatus) (*model.Shipment, error)
}
