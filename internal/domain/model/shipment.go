package model

import "time"

// ShipmentStatus is the human-facing state derived from milestone timestamps.
type ShipmentStatus string

const (
	ShipmentStatusProcessing    ShipmentStatus = "processing"
	ShipmentStatusShipped       ShipmentStatus = "shipped"
	ShipmentStatusDelivered     ShipmentStatus = "delivered"
	ShipmentStatusCancelled     ShipmentStatus = "cancelled"
	ShipmentStatusPaymentFailed ShipmentStatus = "payment_failed"
)

// ParseShipmentStatus validates a caller-supplied target status.
func ParseShipmentStatus(s string) (ShipmentStatus, bool) {
	switch ShipmentStatus(s) {
	case ShipmentStatusShipped, ShipmentStatusDelivered, ShipmentStatusCancelled, ShipmentStatusPaymentFailed:
		return ShipmentStatus(s), true
	}
	return "", false
}

// Shipment accompanies exactly one payment. Status is not stored: it is
// derived from which milestone timestamps are set.
type Shipment struct {
	ID              int64
	PaymentID       int64
	DeliveryAddress string
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	PaymentFailedAt *time.Time
}

// Status derives the display status. When several timestamps are set the
// highest priority wins: payment_failed > cancelled > delivered > shipped.
func (s Shipment) Status() ShipmentStatus {
	switch {
	case s.PaymentFailedAt != nil:
		return ShipmentStatusPaymentFailed
	case s.CancelledAt != nil:
		return ShipmentStatusCancelled
	case s.DeliveredAt != nil:
		return ShipmentStatusDelivered
	case s.ShippedAt != nil:
		return ShipmentStatusShipped
	}
	return ShipmentStatusProcessing
}

// Terminal reports whether the shipment reached a final state. No transition
// is accepted once any terminal timestamp is set.
func (s Shipment) Terminal() bool {
	return s.PaymentFailedAt != nil || s.CancelledAt != nil || s.DeliveredAt != nil
}

// CanTransition checks the allowed-transition guard for a target status.
func (s Shipment) CanTransition(target ShipmentStatus) bool {
	if s.Terminal() {
		return false
	}
	switch target {
	case ShipmentStatusShipped:
		return s.ShippedAt == nil
	case ShipmentStatusDelivered:
		return s.ShippedAt != nil
	case ShipmentStatusCancelled, ShipmentStatusPaymentFailed:
		return true
	}
	return false
}

// MilestoneColumn returns the shipments column written by a transition to
// the given status. Empty string for statuses that are not transitions.
func MilestoneColumn(target ShipmentStatus) string {
	switch target {
	case ShipmentStatusShipped:
		return "shipped_at"
	case ShipmentStatusDelivered:
		return "delivered_at"
	case ShipmentStatusCancelled:
		return "cancelled_at"
	case ShipmentStatusPaymentFailed:
		return "payment_failed_at"
	}
	return ""
}
