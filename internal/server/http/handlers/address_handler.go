package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/marukota/curiomart/internal/domain/errors"
	"github.com/marukota/curiomart/internal/domain/model"
	"github.com/marukota/curiomart/internal/server/http/dto"
)

// AddressHandler manages the user's shipping address endpoints.
type AddressHandler struct {
	facade AddressFacade
}

// NewAddressHandler constructs AddressHandler.
func NewAddressHandler(facade AddressFacade) *AddressHandler {
	return &AddressHandler{facade: facade}
}

// Get handles GET /api/user/address.
func (h *AddressHandler) Get(c *gin.Context) {
	userID := CurrentUserID(c)
	address, err := h.facade.Address(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, addressResponse(address))
}

// Save handles PUT /api/user/address.
func (h *AddressHandler) Save(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	address, err := h.facade.SaveAddress(c.Request.Context(), model.Address{
		UserID:        userID,
		Country:       req.Country,
		PostalCode:    req.PostalCode,
		Street:        req.Street,
		RecipientName: req.RecipientName,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAddress):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, addressResponse(address))
}

func addressResponse(a *model.Address) dto.AddressResponse {
	return dto.AddressResponse{
		Country:       a.Country,
		PostalCode:    a.PostalCode,
		Street:        a.Street,
		RecipientName: a.RecipientName,
		UpdatedAt:     a.UpdatedAt,
	}
}
