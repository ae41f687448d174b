package dto

import "time"

// BidRequest carries a sealed bid amount in integer yen.
type BidRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}

// BidResponse represents one recorded bid.
type BidResponse struct {
	ID        int64     `json:"id"`
	AuctionID int64     `json:"auction_id"`
	UserID    int64     `json:"user_id"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}
