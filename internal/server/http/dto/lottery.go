package dto

import "time"

// LotteryEventResponse represents one open draw window.
type LotteryEventResponse struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title"`
	StartAt           time.Time `json:"start_at"`
	EndAt             time.Time `json:"end_at"`
	ResultAt          time.Time `json:"result_at"`
	PaymentDeadlineAt time.Time `json:"payment_deadline_at"`
}

// LotteryEntryRequest selects the allocation to enter.
type LotteryEntryRequest struct {
	LotteryProductID int64 `json:"lottery_product_id" binding:"required"`
}

// LotteryEntryResponse represents a recorded entry.
type LotteryEntryResponse struct {
	ID               int64     `json:"id"`
	LotteryEventID   int64     `json:"lottery_event_id"`
	LotteryProductID int64     `json:"lottery_product_id"`
	CreatedAt        time.Time `json:"created_at"`
}
