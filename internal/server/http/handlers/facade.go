package handlers

import (
	"context"

	"github.com/marukota/curiomart/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// AddressFacade manages the user's shipping address.
type AddressFacade interface {
	Address(ctx context.Context, userID int64) (*model.Address, error)
	SaveAddress(ctx context.Context, address model.Address) (*model.Address, error)
}

// CheckoutFacade encapsulates purchase operations exposed via HTTP.
type CheckoutFacade interface {
	Checkout(ctx context.Context, userID int64, merchantPaymentID string, items []model.OrderItem) (string, error)
	Payments(ctx context.Context, userID int64) ([]model.Payment, error)
	PaymentStatus(ctx context.Context, userID int64, merchantPaymentID string) (*model.PaymentDetails, error)
}

// LotteryFacade provides draw entry operations.
type LotteryFacade interface {
	OpenLotteries(ctx context.Context) ([]model.LotteryEvent, error)
	EnterLottery(ctx context.Context, eventID, userID, productID int64) (*model.LotteryEntry, error)
	LotteryEntries(ctx context.Context, userID int64) ([]model.LotteryEntry, error)
}

// AuctionFacade provides sealed-bid operations.
type AuctionFacade interface {
	PlaceBid(ctx context.Context, auctionID, userID, amount int64) (*model.SealedBid, error)
	RetractBids(ctx context.Context, auctionID, userID int64) error
	AuctionBids(ctx context.Context, auctionID, viewerID int64) ([]model.SealedBid, error)
}

// ShipmentFacade provides shipment queries and admin transitions.
type ShipmentFacade interface {
	Shipments(ctx context.Context, userID int64) ([]model.Shipment, error)
	UpdateShipmentStatus(ctx context.Context, shipmentID int64, target string) (*model.Shipment, error)
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	AddressFacade
	CheckoutFacade
	LotteryFacade
	AuctionFacade
	ShipmentFacade
}
