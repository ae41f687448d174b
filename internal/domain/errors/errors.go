package errors

import "errors"

var (
	ErrAlreadyExists        = errors.New("already exists")
	ErrNotFound             = errors.New("not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidOrder         = errors.New("invalid order")
	ErrInvalidAddress       = errors.New("invalid address")
	ErrNoShippingAddress    = errors.New("no shipping address")
	ErrDuplicatePayment     = errors.New("duplicate payment")
	ErrGatewayRejected      = errors.New("payment gateway rejected")
	ErrDuplicateEntry       = errors.New("duplicate lottery entry")
	ErrLotteryClosed        = errors.New("lottery is closed")
	ErrAllocationExhausted  = errors.New("lottery allocation exhausted")
	ErrAuctionClosed        = errors.New("auction is closed")
	ErrBidTooLow            = errors.New("bid below minimum")
	ErrRetractionNotAllowed = errors.New("bid retraction not allowed")
	ErrInvalidTransition    = errors.New("invalid shipment transition")
)
