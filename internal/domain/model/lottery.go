package model

import "time"

// LotteryEventStatus describes the admin-managed lifecycle of a draw.
type LotteryEventStatus string

const (
	LotteryEventDraft     LotteryEventStatus = "draft"
	LotteryEventActive    LotteryEventStatus = "active"
	LotteryEventFinished  LotteryEventStatus = "finished"
	LotteryEventCancelled LotteryEventStatus = "cancelled"
)

// LotteryEvent is a time-boxed draw window. Owned by admin tooling,
// read-only to this service.
type LotteryEvent struct {
	ID                int64
	Title             string
	Status            LotteryEventStatus
	StartAt           time.Time
	EndAt             time.Time
	ResultAt          time.Time
	PaymentDeadlineAt time.Time
}

// AcceptsEntries reports whether the event takes entries at the given time.
func (e LotteryEvent) AcceptsEntries(now time.Time) bool {
	return e.Status == LotteryEventActive && !now.Before(e.StartAt) && now.Before(e.EndAt)
}

// LotteryProduct is a capped allocation of one product inside an event.
// Entries compete for its quantity.
type LotteryProduct struct {
	ID                int64
	LotteryEventID    int64
	ProductID         int64
	QuantityAvailable int32
}

// LotteryEntry links a user to an allocation. The (user, allocation) pair is
// unique; entries are never deleted here.
type LotteryEntry struct {
	ID               int64
	LotteryEventID   int64
	UserID           int64
	LotteryProductID int64
	CreatedAt        time.Time
}
