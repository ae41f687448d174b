package repository

import (
	"context"

	"github.com/marukota/curiomart/internal/domain/model"
)

// AddressRepository manages the single shipping address per user.
type AddressRepository interface {
	Upsert(ctx context.Context, address model.Address) (*model.Address, error)
	GetByUserID(ctx context.Context, userID int64) (*model.Address, error)
}
