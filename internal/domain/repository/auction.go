package repository

import (
	"context"

	"github.com/marukota/curiomart/internal/domain/model"
)

// AuctionRepository describes persistence operations with auctions and bids.
type AuctionRepository interface {
	GetAuction(ctx context.Context, id int64) (*model.Auction, error)
	CreateBid(ctx context.Context, auctionID, userID, amount int64) (*model.SealedBid, error)
	ListBidsByAuction(ctx context.Context, auctionID int64) ([]model.SealedBid, error)
	ListBidsByAuctionUser(ctx context.Context, auctionID, userID int64) ([]model.SealedBid, error)
	DeleteBidsByUser(ctx context.Context, auctionID, userID int64) (int64, error)
}
