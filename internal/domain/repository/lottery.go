package repository

import (
	"context"

	"github.com/marukota/curiomart/internal/domain/model"
)

// LotteryRepository describes persistence operations with lottery events,
// allocations, and entries.
type LotteryRepository interface {
	GetEvent(ctx context.Context, id int64) (*model.LotteryEvent, error)
	ListOpenEvents(ctx context.Context) ([]model.LotteryEvent, error)
	GetProduct(ctx context.Context, id int64) (*model.LotteryProduct, error)
	// CreateEntry inserts an entry while holding a lock on the allocation so
	// capacity and the one-entry-per-user rule hold under concurrency.
	CreateEntry(ctx context.Context, eventID, userID, productID int64) (*model.LotteryEntry, error)
	ListEntriesByUser(ctx context.Context, userID int64) ([]model.LotteryEntry, error)
}
