package app

import (
	"context"
	"time"

	"github.com/marukota/curiomart/internal/domain/model"
	"github.com/marukota/curiomart/internal/usecase"
)

// StorefrontFacade aggregates the use cases behind one surface consumed by
// HTTP handlers and the settlement watcher.
type StorefrontFacade struct {
	auth      *usecase.AuthUseCase
	addresses *usecase.AddressUseCase
	checkout  *usecase.CheckoutUseCase
	lottery   *usecase.LotteryUseCase
	auctions  *usecase.AuctionUseCase
	shipments *usecase.ShipmentUseCase
}

// NewStorefrontFacade constructs StorefrontFacade.
func NewStorefrontFacade(
	auth *usecase.AuthUseCase,
	addresses *usecase.AddressUseCase,
	checkout *usecase.CheckoutUseCase,
	lottery *usecase.LotteryUseCase,
	auctions *usecase.AuctionUseCase,
	shipments *usecase.ShipmentUseCase,
) *StorefrontFacade {
	return &StorefrontFacade{
		auth:      auth,
		addresses: addresses,
		checkout:  checkout,
		lottery:   lottery,
		auctions:  auctions,
		shipments: shipments,
	}
}

func (f *StorefrontFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password)
	return token, err
}

func (f *StorefrontFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *StorefrontFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *StorefrontFacade) Address(ctx context.Context, userID int64) (*model.Address, error) {
	return f.addresses.Get(ctx, userID)
}

func (f *StorefrontFacade) SaveAddress(ctx context.Context, address model.Address) (*model.Address, error) {
	return f.addresses.Save(ctx, address)
}

func (f *StorefrontFacade) Checkout(ctx context.Context, userID int64, merchantPaymentID string, items []model.OrderItem) (string, error) {
	return f.checkout.Fulfill(ctx, userID, merchantPaymentID, items)
}

func (f *StorefrontFacade) Payments(ctx context.Context, userID int64) ([]model.Payment, error) {
	return f.checkout.Payments(ctx, userID)
}

func (f *StorefrontFacade) PaymentStatus(ctx context.Context, userID int64, merchantPaymentID string) (*model.PaymentDetails, error) {
	return f.checkout.PaymentDetails(ctx, userID, merchantPaymentID)
}

func (f *StorefrontFacade) OpenLotteries(ctx context.Context) ([]model.LotteryEvent, error) {
	return f.lottery.OpenEvents(ctx)
}

func (f *StorefrontFacade) EnterLottery(ctx context.Context, eventID, userID, productID int64) (*model.LotteryEntry, error) {
	return f.lottery.Enter(ctx, eventID, userID, productID)
}

func (f *StorefrontFacade) LotteryEntries(ctx context.Context, userID int64) ([]model.LotteryEntry, error) {
	return f.lottery.Entries(ctx, userID)
}

func (f *StorefrontFacade) PlaceBid(ctx context.Context, auctionID, userID, amount int64) (*model.SealedBid, error) {
	return f.auctions.PlaceBid(ctx, auctionID, userID, amount)
}

func (f *StorefrontFacade) RetractBids(ctx context.Context, auctionID, userID int64) error {
	return f.auctions.Retract(ctx, auctionID, userID)
}

func (f *StorefrontFacade) AuctionBids(ctx context.Context, auctionID, viewerID int64) ([]model.SealedBid, error) {
	return f.auctions.Bids(ctx, auctionID, viewerID)
}

func (f *StorefrontFacade) Shipments(ctx context.Context, userID int64) ([]model.Shipment, error) {
	return f.shipments.ListByUser(ctx, userID)
}

func (f *StorefrontFacade) UpdateShipmentStatus(ctx context.Context, shipmentID int64, target string) (*model.Shipment, error) {
	return f.shipments.UpdateStatus(ctx, shipmentID, target)
}

func (f *StorefrontFacade) UnsettledPayments(ctx context.Context, olderThan time.Duration, limit int) ([]model.Payment, error) {
	return f.checkout.UnsettledPayments(ctx, olderThan, limit)
}

func (f *StorefrontFacade) GatewayPaymentDetails(ctx context.Context, merchantPaymentID string) (*model.PaymentDetails, error) {
	return f.checkout.GatewayDetails(ctx, merchantPaymentID)
}

func (f *StorefrontFacade) MarkPaymentFailed(ctx context.Context, paymentID int64) (*model.Shipment, error) {
	return f.shipments.MarkPaymentFailed(ctx, paymentID)
}
