package test

import (
	"context"
	"time"

	domainErrors "github.com/marukota/curiomart/internal/domain/errors"
	"github.com/marukota/curiomart/internal/domain/model"
	"github.com/marukota/curiomart/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// AddressRepositoryStub stores one address per user in-memory.
type AddressRepositoryStub struct {
	UpsertFn func(context.Context, model.Address) (*model.Address, error)
	GetFn    func(context.Context, int64) (*model.Address, error)
	ByUser   map[int64]*model.Address
}

// Upsert records the address or delegates to override.
func (s *AddressRepositoryStub) Upsert(ctx context.Context, address model.Address) (*model.Address, error) {
	if s.UpsertFn != nil {
		return s.UpsertFn(ctx, address)
	}
	if s.ByUser == nil {
		s.ByUser = make(map[int64]*model.Address)
	}
	stored := address
	stored.UpdatedAt = time.Now()
	s.ByUser[address.UserID] = &stored
	return &stored, nil
}

// GetByUserID returns the stored address or not found.
func (s *AddressRepositoryStub) GetByUserID(ctx context.Context, userID int64) (*model.Address, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, userID)
	}
	if address, ok := s.ByUser[userID]; ok {
		return address, nil
	}
	return nil, domainErrors.ErrNotFound
}

// CheckoutCall records one CreateCheckout invocation.
type CheckoutCall struct {
	UserID            int64
	MerchantPaymentID string
	DeliveryAddress   string
	Items             []model.OrderItem
}

// PaymentRepositoryStub allows tests to customize payment persistence.
type PaymentRepositoryStub struct {
	CreateCheckoutFn  func(context.Context, int64, string, string, []model.OrderItem, repository.PayFunc) (*model.Payment, string, error)
	GetByMerchantIDFn func(context.Context, string) (*model.Payment, error)
	ListByUserFn      func(context.Context, int64) ([]model.Payment, error)
	ListLineItemsFn   func(context.Context, int64) ([]model.PurchasedLineItem, error)
	ListUnsettledFn   func(context.Context, time.Duration, int) ([]model.Payment, error)

	Checkouts []CheckoutCall
	Payments  []model.Payment
	LineItems []model.PurchasedLineItem
	Unsettled []model.Payment
}

// CreateCheckout tracks the call, invokes pay with the order total, and
// returns a payment unless an override is set.
func (s *PaymentRepositoryStub) CreateCheckout(ctx context.Context, userID int64, merchantPaymentID, deliveryAddress string, items []model.OrderItem, pay repository.PayFunc) (*model.Payment, string, error) {
	s.Checkouts = append(s.Checkouts, CheckoutCall{
		UserID:            userID,
		MerchantPaymentID: merchantPaymentID,
		DeliveryAddress:   deliveryAddress,
		Items:             items,
	})
	if s.CreateCheckoutFn != nil {
		return s.CreateCheckoutFn(ctx, userID, merchantPaymentID, deliveryAddress, items, pay)
	}
	url, err := pay(ctx, model.OrderTotal(items))
	if err != nil {
		return nil, "", err
	}
	payment := &model.Payment{ID: 1, UserID: userID, MerchantPaymentID: merchantPaymentID, CreatedAt: time.Now()}
	return payment, url, nil
}

// GetByMerchantID returns matched payment either via override or stored slice.
func (s *PaymentRepositoryStub) GetByMerchantID(ctx context.Context, merchantPaymentID string) (*model.Payment, error) {
	if s.GetByMerchantIDFn != nil {
		return s.GetByMerchantIDFn(ctx, merchantPaymentID)
	}
	for _, p := range s.Payments {
		if p.MerchantPaymentID == merchantPaymentID {
			payment := p
			return &payment, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns payments from the configured slice.
func (s *PaymentRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Payment, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	return s.Payments, nil
}

// ListLineItems returns configured line items.
func (s *PaymentRepositoryStub) ListLineItems(ctx context.Context, paymentID int64) ([]model.PurchasedLineItem, error) {
	if s.ListLineItemsFn != nil {
		return s.ListLineItemsFn(ctx, paymentID)
	}
	return s.LineItems, nil
}

// ListUnsettled returns queued unsettled payments.
func (s *PaymentRepositoryStub) ListUnsettled(ctx context.Context, olderThan time.Duration, limit int) ([]model.Payment, error) {
	if s.ListUnsettledFn != nil {
		return s.ListUnsettledFn(ctx, olderThan, limit)
	}
	return s.Unsettled, nil
}

// TransitionCall records one ApplyTransition invocation.
type TransitionCall struct {
	ShipmentID int64
	Target     model.ShipmentStatus
}

// ShipmentRepositoryStub lets tests control shipment persistence.
type ShipmentRepositoryStub struct {
	GetByIDFn        func(context.Context, int64) (*model.Shipment, error)
	GetByPaymentIDFn func(context.Context, int64) (*model.Shipment, error)
	ListByUserFn     func(context.Context, int64) ([]model.Shipment, error)
	TransitionFn     func(context.Context, int64, model.ShipmentStatus) (*model.Shipment, error)

	Shipments   []model.Shipment
	Transitions []TransitionCall
}

// GetByID returns matched shipment or not found.
func (s *ShipmentRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Shipment, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, sh := range s.Shipments {
		if sh.ID == id {
			shipment := sh
			return &shipment, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByPaymentID returns the shipment owned by the payment or not found.
func (s *ShipmentRepositoryStub) GetByPaymentID(ctx context.Context, paymentID int64) (*model.Shipment, error) {
	if s.GetByPaymentIDFn != nil {
		return s.GetByPaymentIDFn(ctx, paymentID)
	}
	for _, sh := range s.Shipments {
		if sh.PaymentID == paymentID {
			shipment := sh
			return &shipment, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns shipments from the configured slice.
func (s *ShipmentRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Shipment, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	return s.Shipments, nil
}

// ApplyTransition records the call and applies the guard in-memory.
func (s *ShipmentRepositoryStub) ApplyTransition(ctx context.Context, shipmentID int64, target model.ShipmentStatus) (*model.Shipment, error) {
	s.Transitions = append(s.Transitions, TransitionCall{ShipmentID: shipmentID, Target: target})
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, shipmentID, target)
	}
	for i := range s.Shipments {
		if s.Shipments[i].ID != shipmentID {
			continue
		}
		if !s.Shipments[i].CanTransition(target) {
			return nil, domainErrors.ErrInvalidTransition
		}
		now := time.Now()
		switch target {
		case model.ShipmentStatusShipped:
			s.Shipments[i].ShippedAt = &now
		case model.ShipmentStatusDelivered:
			s.Shipments[i].DeliveredAt = &now
		case model.ShipmentStatusCancelled:
			s.Shipments[i].CancelledAt = &now
		case model.ShipmentStatusPaymentFailed:
			s.Shipments[i].PaymentFailedAt = &now
		}
		shipment := s.Shipments[i]
		return &shipment, nil
	}
	return nil, domainErrors.ErrNotFound
}

// EntryCall records one CreateEntry invocation.
type EntryCall struct {
	EventID   int64
	UserID    int64
	ProductID int64
}

// LotteryRepositoryStub lets tests control lottery persistence.
type LotteryRepositoryStub struct {
	GetEventFn    func(context.Context, int64) (*model.LotteryEvent, error)
	ListOpenFn    func(context.Context) ([]model.LotteryEvent, error)
	GetProductFn  func(context.Context, int64) (*model.LotteryProduct, error)
	CreateEntryFn func(context.Context, int64, int64, int64) (*model.LotteryEntry, error)
	ListEntriesFn func(context.Context, int64) ([]model.LotteryEntry, error)

	Events   []model.LotteryEvent
	Products []model.LotteryProduct
	Entries  []model.LotteryEntry
	Created  []EntryCall
}

// GetEvent returns matched event or not found.
func (s *LotteryRepositoryStub) GetEvent(ctx context.Context, id int64) (*model.LotteryEvent, error) {
	if s.GetEventFn != nil {
		return s.GetEventFn(ctx, id)
	}
	for _, e := range s.Events {
		if e.ID == id {
			event := e
			return &event, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListOpenEvents returns events from the configured slice.
func (s *LotteryRepositoryStub) ListOpenEvents(ctx context.Context) ([]model.LotteryEvent, error) {
	if s.ListOpenFn != nil {
		return s.ListOpenFn(ctx)
	}
	return s.Events, nil
}

// GetProduct returns matched allocation or not found.
func (s *LotteryRepositoryStub) GetProduct(ctx context.Context, id int64) (*model.LotteryProduct, error) {
	if s.GetProductFn != nil {
		return s.GetProductFn(ctx, id)
	}
	for _, p := range s.Products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// CreateEntry records the call and enforces uniqueness in-memory.
func (s *LotteryRepositoryStub) CreateEntry(ctx context.Context, eventID, userID, productID int64) (*model.LotteryEntry, error) {
	s.Created = append(s.Created, EntryCall{EventID: eventID, UserID: userID, ProductID: productID})
	if s.CreateEntryFn != nil {
		return s.CreateEntryFn(ctx, eventID, userID, productID)
	}
	for _, e := range s.Entries {
		if e.UserID == userID && e.LotteryProductID == productID {
			return nil, domainErrors.ErrDuplicateEntry
		}
	}
	entry := model.LotteryEntry{
		ID:               int64(len(s.Entries) + 1),
		LotteryEventID:   eventID,
		UserID:           userID,
		LotteryProductID: productID,
		CreatedAt:        time.Now(),
	}
	s.Entries = append(s.Entries, entry)
	return &entry, nil
}

// ListEntriesByUser returns entries belonging to the user.
func (s *LotteryRepositoryStub) ListEntriesByUser(ctx context.Context, userID int64) ([]model.LotteryEntry, error) {
	if s.ListEntriesFn != nil {
		return s.ListEntriesFn(ctx, userID)
	}
	var entries []model.LotteryEntry
	for _, e := range s.Entries {
		if e.UserID == userID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// AuctionRepositoryStub lets tests control bid persistence.
type AuctionRepositoryStub struct {
	GetAuctionFn func(context.Context, int64) (*model.Auction, error)
	CreateBidFn  func(context.Context, int64, int64, int64) (*model.SealedBid, error)
	ListFn       func(context.Context, int64) ([]model.SealedBid, error)
	ListByUserFn func(context.Context, int64, int64) ([]model.SealedBid, error)
	DeleteBidsFn func(context.Context, int64, int64) (int64, error)

	Auctions []model.Auction
	Bids     []model.SealedBid
}

// GetAuction returns matched auction or not found.
func (s *AuctionRepositoryStub) GetAuction(ctx context.Context, id int64) (*model.Auction, error) {
	if s.GetAuctionFn != nil {
		return s.GetAuctionFn(ctx, id)
	}
	for _, a := range s.Auctions {
		if a.ID == id {
			auction := a
			return &auction, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// CreateBid appends a bid record.
func (s *AuctionRepositoryStub) CreateBid(ctx context.Context, auctionID, userID, amount int64) (*model.SealedBid, error) {
	if s.CreateBidFn != nil {
		return s.CreateBidFn(ctx, auctionID, userID, amount)
	}
	bid := model.SealedBid{
		ID:        int64(len(s.Bids) + 1),
		AuctionID: auctionID,
		UserID:    userID,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
	s.Bids = append(s.Bids, bid)
	return &bid, nil
}

// ListBidsByAuction returns all bids for the auction.
func (s *AuctionRepositoryStub) ListBidsByAuction(ctx context.Context, auctionID int64) ([]model.SealedBid, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, auctionID)
	}
	var bids []model.SealedBid
	for _, b := range s.Bids {
		if b.AuctionID == auctionID {
			bids = append(bids, b)
		}
	}
	return bids, nil
}

// ListBidsByAuctionUser returns the user's bids for the auction.
func (s *AuctionRepositoryStub) ListBidsByAuctionUser(ctx context.Context, auctionID, userID int64) ([]model.SealedBid, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, auctionID, userID)
	}
	var bids []model.SealedBid
	for _, b := range s.Bids {
		if b.AuctionID == auctionID && b.UserID == userID {
			bids = append(bids, b)
		}
	}
	return bids, nil
}

// DeleteBidsByUser removes the user's bids and returns the count.
func (s *AuctionRepositoryStub) DeleteBidsByUser(ctx context.Context, auctionID, userID int64) (int64, error) {
	if s.DeleteBidsFn != nil {
		return s.DeleteBidsFn(ctx, auctionID, userID)
	}
	var kept []model.SealedBid
	var deleted int64
	for _, b := range s.Bids {
		if b.AuctionID == auctionID && b.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, b)
	}
	s.Bids = kept
	return deleted, nil
}
