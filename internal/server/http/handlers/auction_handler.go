package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/marukota/curiomart/internal/domain/errors"
	"github.com/marukota/curiomart/internal/server/http/dto"
)

// AuctionHandler manages sealed-bid endpoints.
type AuctionHandler struct {
	facade AuctionFacade
}

// NewAuctionHandler constructs AuctionHandler.
func NewAuctionHandler(facade AuctionFacade) *AuctionHandler {
	return &AuctionHandler{facade: facade}
}

// Bid handles POST /api/user/auctions/:auctionID/bids.
func (h *AuctionHandler) Bid(c *gin.Context) {
	userID := CurrentUserID(c)
	auctionID, ok := PathID(c, "auctionID")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.BidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	bid, err := h.facade.PlaceBid(c.Request.Context(), auctionID, userID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrAuctionClosed):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrBidTooLow):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.BidResponse{
		ID:        bid.ID,
		AuctionID: bid.AuctionID,
		UserID:    bid.UserID,
		Amount:    bid.Amount,
		CreatedAt: bid.CreatedAt,
	})
}

// Retract handles DELETE /api/user/auctions/:auctionID/bids.
func (h *AuctionHandler) Retract(c *gin.Context) {
	userID := CurrentUserID(c)
	auctionID, ok := PathID(c, "auctionID")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	err := h.facade.RetractBids(c.Request.Context(), auctionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrAuctionClosed):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrRetractionNotAllowed):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

// Bids handles GET /api/user/auctions/:auctionID/bids.
func (h *AuctionHandler) Bids(c *gin.Context) {
	userID := CurrentUserID(c)
	auctionID, ok := PathID(c, "auctionID")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	bids, err := h.facade.AuctionBids(c.Request.Context(), auctionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	if len(bids) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.BidResponse, 0, len(bids))
	for _, b := range bids {
		resp = append(resp, dto.BidResponse{
			ID:        b.ID,
			AuctionID: b.AuctionID,
			UserID:    b.UserID,
			Amount:    b.Amount,
			CreatedAt: b.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}
