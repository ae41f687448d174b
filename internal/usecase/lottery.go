package usecase

import (
	"context"
	"time"

	domainErrors "github.com/marukota/curiomart/internal/domain/errors"
	"github.com/marukota/curiomart/internal/domain/model"
	"github.com/marukota/curiomart/internal/domain/repository"
)

// LotteryUseCase records entries against scarce lottery allocations.
type LotteryUseCase struct {
	lotteries repository.LotteryRepository
}

// NewLotteryUseCase constructs LotteryUseCase.
func NewLotteryUseCase(lotteries repository.LotteryRepository) *LotteryUseCase {
	return &LotteryUseCase{lotteries: lotteries}
}

// Enter records the user's entry against an allocation. At most one entry
// per (user, allocation) pair; the allocation's capacity is enforced at
// entry time.
func (u *LotteryUseCase) Enter(ctx context.Context, eventID, userID, productID int64) (*model.LotteryEntry, error) {
	event, err := u.lotteries.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.AcceptsEntries(time.Now()) {
		return nil, domainErrors.ErrLotteryClosed
	}

	product, err := u.lotteries.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.LotteryEventID != eventID {
		return nil, domainErrors.ErrNotFound
	}

	return u.lotteries.CreateEntry(ctx, eventID, userID, productID)
}

// OpenEvents lists events currently accepting entries.
func (u *LotteryUseCase) OpenEvents(ctx context.Context) ([]model.LotteryEvent, error) {
	return u.lotteries.ListOpenEvents(ctx)
}

// Entries lists the user's entries, newest first.
func (u *LotteryUseCase) Entries(ctx context.Context, userID int64) ([]model.LotteryEntry, error) {
	return u.lotteries.ListEntriesByUser(ctx, userID)
}
