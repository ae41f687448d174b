package model

import "time"

// AuctionStatus describes whether an auction still accepts bids.
type AuctionStatus string

const (
	AuctionStatusActive   AuctionStatus = "active"
	AuctionStatusFinished AuctionStatus = "finished"
)

// Auction defines a product sold by sealed bidding together with its policy
// flags. Admin-seeded, read-only here.
type Auction struct {
	ID                 int64
	ProductID          int64
	MinimumBid         int64
	Status             AuctionStatus
	IsSealed           bool
	AllowBidRetraction bool
	RequirePaymentInfo bool
	EndAt              time.Time
	CreatedAt          time.Time
}

// Open reports whether the auction accepts bids at the given time.
func (a Auction) Open(now time.Time) bool {
	return a.Status == AuctionStatusActive && now.Before(a.EndAt)
}

// SealedBid is one durable bid record. Bids are append-only; winner
// determination happens elsewhere.
type SealedBid struct {
	ID        int64
	AuctionID int64
	UserID    int64
	Amount    int64
	CreatedAt time.Time
}
