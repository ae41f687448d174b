package usecase

import (
	"context"
	"time"

	domainErrors "github.com/marukota/curiomart/internal/domain/errors"
	"github.com/marukota/curiomart/internal/domain/model"
	"github.com/marukota/curiomart/internal/domain/repository"
)

// AuctionUseCase records sealed bids and applies auction policy flags.
type AuctionUseCase struct {
	auctions repository.AuctionRepository
}

// NewAuctionUseCase constructs AuctionUseCase.
func NewAuctionUseCase(auctions repository.AuctionRepository) *AuctionUseCase {
	return &AuctionUseCase{auctions: auctions}
}

// PlaceBid durably records a bid. Bids are append-only; a user may raise
// their offer by bidding again.
func (u *AuctionUseCase) PlaceBid(ctx context.Context, auctionID, userID, amount int64) (*model.SealedBid, error) {
	auction, err := u.auctions.GetAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if !auction.Open(time.Now()) {
		return nil, domainErrors.ErrAuctionClosed
	}
	if amount < auction.MinimumBid || amount <= 0 {
		return nil, domainErrors.ErrBidTooLow
	}

	return u.auctions.CreateBid(ctx, auctionID, userID, amount)
}

// Retract deletes the user's bids when the auction policy allows it.
func (u *AuctionUseCase) Retract(ctx context.Context, auctionID, userID int64) error {
	auction, err := u.auctions.GetAuction(ctx, auctionID)
	if err != nil {
		return err
	}
	if !auction.AllowBidRetraction {
		return domainErrors.ErrRetractionNotAllowed
	}
	if !auction.Open(time.Now()) {
		return domainErrors.ErrAuctionClosed
	}

	deleted, err := u.auctions.DeleteBidsByUser(ctx, auctionID, userID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// Bids lists bids on an auction. While a sealed auction is open, the viewer
// only sees their own bids.
func (u *AuctionUseCase) Bids(ctx context.Context, auctionID, viewerID int64) ([]model.SealedBid, error) {
	auction, err := u.auctions.GetAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if auction.IsSealed && auction.Open(time.Now()) {
		return u.auctions.ListBidsByAuctionUser(ctx, auctionID, viewerID)
	}
	return u.auctions.ListBidsByAuction(ctx, auctionID)
}
