package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/marukota/curiomart/internal/domain/errors"
	"github.com/marukota/curiomart/internal/domain/model"
	"github.com/marukota/curiomart/internal/server/http/dto"
)

// LotteryHandler manages draw entry endpoints.
type LotteryHandler struct {
	facade LotteryFacade
}

// NewLotteryHandler constructs LotteryHandler.
func NewLotteryHandler(facade LotteryFacade) *LotteryHandler {
	return &LotteryHandler{facade: facade}
}

// Events handles GET /api/user/lottery/events.
func (h *LotteryHandler) Events(c *gin.Context) {
	events, err := h.facade.OpenLotteries(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(events) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.LotteryEventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, dto.LotteryEventResponse{
			ID:                e.ID,
			Title:             e.Title,
			StartAt:           e.StartAt,
			EndAt:             e.EndAt,
			ResultAt:          e.ResultAt,
			PaymentDeadlineAt: e.PaymentDeadlineAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// Enter handles POST /api/user/lottery/events/:eventID/entries.
func (h *LotteryHandler) Enter(c *gin.Context) {
	userID := CurrentUserID(c)
	eventID, ok := PathID(c, "eventID")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.LotteryEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	entry, err := h.facade.EnterLottery(c.Request.Context(), eventID, userID, req.LotteryProductID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrLotteryClosed):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrDuplicateEntry):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrAllocationExhausted):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, entryResponse(entry))
}

// Entries handles GET /api/user/lottery/entries.
func (h *LotteryHandler) Entries(c *gin.Context) {
	userID := CurrentUserID(c)
	entries, err := h.facade.LotteryEntries(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(entries) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.LotteryEntryResponse, 0, len(entries))
	for i := range entries {
		resp = append(resp, entryResponse(&entries[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func entryResponse(e *model.LotteryEntry) dto.LotteryEntryResponse {
	return dto.LotteryEntryResponse{
		ID:               e.ID,
		LotteryEventID:   e.LotteryEventID,
		LotteryProductID: e.LotteryProductID,
		CreatedAt:        e.CreatedAt,
	}
}
