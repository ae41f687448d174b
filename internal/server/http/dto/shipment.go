package dto

import "time"

// ShipmentResponse represents a shipment with its derived status.
type ShipmentResponse struct {
	ID              int64      `json:"id"`
	PaymentID       int64      `json:"payment_id"`
	Status          string     `json:"status"`
	DeliveryAddress string     `json:"delivery_address"`
	ShippedAt       *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time `json:"delivered_at,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
	PaymentFailedAt *time.Time `json:"payment_failed_at,omitempty"`
}

// ShipmentStatusRequest names the target status for a transition.
type ShipmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
