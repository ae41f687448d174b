package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/marukota/curiomart/internal/domain/errors"
	"github.com/marukota/curiomart/internal/domain/model"
	"github.com/marukota/curiomart/internal/domain/repository"
)

// AddressUseCase manages the single shipping address per user.
type AddressUseCase struct {
	addresses repository.AddressRepository
}

// NewAddressUseCase constructs AddressUseCase.
func NewAddressUseCase(addresses repository.AddressRepository) *AddressUseCase {
	return &AddressUseCase{addresses: addresses}
}

// Save creates or replaces the user's address.
func (u *AddressUseCase) Save(ctx context.Context, address model.Address) (*model.Address, error) {
	address.Country = strings.TrimSpace(address.Country)
	address.PostalCode = strings.TrimSpace(address.PostalCode)
	address.Street = strings.TrimSpace(address.Street)
	address.RecipientName = strings.TrimSpace(address.RecipientName)

	if address.Country == "" || address.PostalCode == "" || address.Street == "" || address.RecipientName == "" {
		return nil, domainErrors.ErrInvalidAddress
	}

	return u.addresses.Upsert(ctx, address)
}

// Get returns the user's address.
func (u *AddressUseCase) Get(ctx context.Context, userID int64) (*model.Address, error) {
	return u.addresses.GetByUserID(ctx, userID)
}
