package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/marukota/curiomart/internal/adapter/paypay"
	"github.com/marukota/curiomart/internal/domain/model"
)

// AddressFacadeStub provides controllable behaviour for address endpoints.
type AddressFacadeStub struct {
	AddressFn func(context.Context, int64) (*model.Address, error)
	SaveFn    func(context.Context, model.Address) (*model.Address, error)
}

// Address delegates to provided function or returns a default address.
func (s AddressFacadeStub) Address(ctx context.Context, userID int64) (*model.Address, error) {
	if s.AddressFn != nil {
		return s.AddressFn(ctx, userID)
	}
	return &model.Address{UserID: userID, Country: "JP", PostalCode: "100-0001", Street: "Chiyoda 1-1", RecipientName: "Taro"}, nil
}

// SaveAddress delegates to provided function or echoes the address back.
func (s AddressFacadeStub) SaveAddress(ctx context.Context, address model.Address) (*model.Address, error) {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, address)
	}
	return &address, nil
}

// CheckoutFacadeStub simulates purchase operations.
type CheckoutFacadeStub struct {
	CheckoutFn func(context.Context, int64, string, []model.OrderItem) (string, error)
	PaymentsFn func(context.Context, int64) ([]model.Payment, error)
	StatusFn   func(context.Context, int64, string) (*model.PaymentDetails, error)
}

// Checkout returns a payment URL for successful scenarios.
func (s CheckoutFacadeStub) Checkout(ctx context.Context, userID int64, merchantPaymentID string, items []model.OrderItem) (string, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, userID, merchantPaymentID, items)
	}
	return "https://qr.example/p/" + merchantPaymentID, nil
}

// Payments returns preconfigured history.
func (s CheckoutFacadeStub) Payments(ctx context.Context, userID int64) ([]model.Payment, error) {
	if s.PaymentsFn != nil {
		return s.PaymentsFn(ctx, userID)
	}
	return []model.Payment{{ID: 1, UserID: userID, MerchantPaymentID: "mp-1", CreatedAt: time.Unix(0, 0)}}, nil
}

// PaymentStatus returns configured gateway details.
func (s CheckoutFacadeStub) PaymentStatus(ctx context.Context, userID int64, merchantPaymentID string) (*model.PaymentDetails, error) {
	if s.StatusFn != nil {
		return s.StatusFn(ctx, userID, merchantPaymentID)
	}
	return &model.PaymentDetails{MerchantPaymentID: merchantPaymentID, Status: model.GatewayStatusCreated, Amount: 100, RequestedAt: time.Unix(0, 0)}, nil
}

// LotteryFacadeStub simulates draw entry operations.
type LotteryFacadeStub struct {
	OpenFn    func(context.Context) ([]model.LotteryEvent, error)
	EnterFn   func(context.Context, int64, int64, int64) (*model.LotteryEntry, error)
	EntriesFn func(context.Context, int64) ([]model.LotteryEntry, error)
}

// OpenLotteries returns configured open events.
func (s LotteryFacadeStub) OpenLotteries(ctx context.Context) ([]model.LotteryEvent, error) {
	if s.OpenFn != nil {
		return s.OpenFn(ctx)
	}
	return []model.LotteryEvent{{ID: 1, Title: "drop", Status: model.LotteryEventActive}}, nil
}

// EnterLottery returns a recorded entry for successful scenarios.
func (s LotteryFacadeStub) EnterLottery(ctx context.Context, eventID, userID, productID int64) (*model.LotteryEntry, error) {
	if s.EnterFn != nil {
		return s.EnterFn(ctx, eventID, userID, productID)
	}
	return &model.LotteryEntry{ID: 1, LotteryEventID: eventID, UserID: userID, LotteryProductID: productID, CreatedAt: time.Unix(0, 0)}, nil
}

// LotteryEntries returns preconfigured entries.
func (s LotteryFacadeStub) LotteryEntries(ctx context.Context, userID int64) ([]model.LotteryEntry, error) {
	if s.EntriesFn != nil {
		return s.EntriesFn(ctx, userID)
	}
	return []model.LotteryEntry{{ID: 1, LotteryEventID: 1, UserID: userID, LotteryProductID: 1, CreatedAt: time.Unix(0, 0)}}, nil
}

// AuctionFacadeStub simulates sealed-bid operations.
type AuctionFacadeStub struct {
	PlaceFn   func(context.Context, int64, int64, int64) (*model.SealedBid, error)
	RetractFn func(context.Context, int64, int64) error
	BidsFn    func(context.Context, int64, int64) ([]model.SealedBid, error)
}

// PlaceBid returns a recorded bid for successful scenarios.
func (s AuctionFacadeStub) PlaceBid(ctx context.Context, auctionID, userID, amount int64) (*model.SealedBid, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, auctionID, userID, amount)
	}
	return &model.SealedBid{ID: 1, AuctionID: auctionID, UserID: userID, Amount: amount, CreatedAt: time.Unix(0, 0)}, nil
}

// RetractBids executes configured retraction handler.
func (s AuctionFacadeStub) RetractBids(ctx context.Context, auctionID, userID int64) error {
	if s.RetractFn != nil {
		return s.RetractFn(ctx, auctionID, userID)
	}
	return nil
}

// AuctionBids returns preconfigured bids.
func (s AuctionFacadeStub) AuctionBids(ctx context.Context, auctionID, viewerID int64) ([]model.SealedBid, error) {
	if s.BidsFn != nil {
		return s.BidsFn(ctx, auctionID, viewerID)
	}
	return []model.SealedBid{{ID: 1, AuctionID: auctionID, UserID: viewerID, Amount: 500, CreatedAt: time.Unix(0, 0)}}, nil
}

// ShipmentFacadeStub simulates shipment operations.
type ShipmentFacadeStub struct {
	ShipmentsFn func(context.Context, int64) ([]model.Shipment, error)
	UpdateFn    func(context.Context, int64, string) (*model.Shipment, error)
}

// Shipments returns preconfigured shipments.
func (s ShipmentFacadeStub) Shipments(ctx context.Context, userID int64) ([]model.Shipment, error) {
	if s.ShipmentsFn != nil {
		return s.ShipmentsFn(ctx, userID)
	}
	return []model.Shipment{{ID: 1, PaymentID: 1, DeliveryAddress: "JP 100-0001 Chiyoda 1-1"}}, nil
}

// UpdateShipmentStatus executes configured transition handler.
func (s ShipmentFacadeStub) UpdateShipmentStatus(ctx context.Context, shipmentID int64, target string) (*model.Shipment, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, shipmentID, target)
	}
	return &model.Shipment{ID: shipmentID, PaymentID: 1}, nil
}

// StorefrontFacadeStub aggregates facade dependencies for HTTP layer tests.
type StorefrontFacadeStub struct {
	AuthFacadeStub
	AddressFacadeStub
	CheckoutFacadeStub
	LotteryFacadeStub
	AuctionFacadeStub
	ShipmentFacadeStub
}

// MarkFailedCall stores information about MarkPaymentFailed invocations.
type MarkFailedCall struct {
	PaymentID int64
}

// SettlementFacadeStub mimics watcher interactions with the storefront facade.
type SettlementFacadeStub struct {
	Batches          [][]model.Payment
	UnsettledFn      func(context.Context, time.Duration, int) ([]model.Payment, error)
	DetailsFn        func(context.Context, string) (*model.PaymentDetails, error)
	MarkFn           func(context.Context, int64) (*model.Shipment, error)
	Marked           []MarkFailedCall
	mu               sync.Mutex
	batchesCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *SettlementFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *SettlementFacadeStub) Unlock() { s.mu.Unlock() }

// UnsettledPayments returns batches from the configured queue.
func (s *SettlementFacadeStub) UnsettledPayments(ctx context.Context, olderThan time.Duration, limit int) ([]model.Payment, error) {
	if s.UnsettledFn != nil {
		return s.UnsettledFn(ctx, olderThan, limit)
	}
	call := atomic.AddInt32(&s.batchesCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// GatewayPaymentDetails returns configured gateway details.
func (s *SettlementFacadeStub) GatewayPaymentDetails(ctx context.Context, merchantPaymentID string) (*model.PaymentDetails, error) {
	if s.DetailsFn != nil {
		return s.DetailsFn(ctx, merchantPaymentID)
	}
	return &model.PaymentDetails{MerchantPaymentID: merchantPaymentID, Status: model.GatewayStatusExpired}, nil
}

// MarkPaymentFailed records invocations.
func (s *SettlementFacadeStub) MarkPaymentFailed(ctx context.Context, paymentID int64) (*model.Shipment, error) {
	if s.MarkFn != nil {
		return s.MarkFn(ctx, paymentID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Marked = append(s.Marked, MarkFailedCall{PaymentID: paymentID})
	return &model.Shipment{ID: paymentID, PaymentID: paymentID}, nil
}

// GatewayStub implements the payment gateway client for tests.
type GatewayStub struct {
	CreateFn  func(context.Context, paypay.CodeRequest) (*paypay.CodeResponse, error)
	DetailsFn func(context.Context, string) (*model.PaymentDetails, error)

	Created []paypay.CodeRequest
	mu      sync.Mutex
}

// CreatePayableCode records the request and returns a QR code response.
func (s *GatewayStub) CreatePayableCode(ctx context.Context, req paypay.CodeRequest) (*paypay.CodeResponse, error) {
	s.mu.Lock()
	s.Created = append(s.Created, req)
	s.mu.Unlock()
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req)
	}
	return &paypay.CodeResponse{CodeID: "code-1", URL: "https://qr.example/p/" + req.MerchantPaymentID}, nil
}

// GetPaymentDetails returns configured gateway details.
func (s *GatewayStub) GetPaymentDetails(ctx context.Context, merchantPaymentID string) (*model.PaymentDetails, error) {
	if s.DetailsFn != nil {
		return s.DetailsFn(ctx, merchantPaymentID)
	}
	return &model.PaymentDetails{MerchantPaymentID: merchantPaymentID, Status: model.GatewayStatusCreated}, nil
}
