package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/marukota/curiomart/internal/domain/errors"
	"github.com/marukota/curiomart/internal/domain/model"
	"github.com/marukota/curiomart/internal/server/http/dto"
)

// ShipmentHandler manages shipment queries and the admin status transition.
type ShipmentHandler struct {
	facade ShipmentFacade
}

// NewShipmentHandler constructs ShipmentHandler.
func NewShipmentHandler(facade ShipmentFacade) *ShipmentHandler {
	return &ShipmentHandler{facade: facade}
}

// List handles GET /api/user/shipments.
func (h *ShipmentHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	shipments, err := h.facade.Shipments(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(shipments) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.ShipmentResponse, 0, len(shipments))
	for i := range shipments {
		resp = append(resp, shipmentResponse(&shipments[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateStatus handles PATCH /api/admin/shipments/:shipmentID/status.
func (h *ShipmentHandler) UpdateStatus(c *gin.Context) {
	shipmentID, ok := PathID(c, "shipmentID")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.ShipmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	shipment, err := h.facade.UpdateShipmentStatus(c.Request.Context(), shipmentID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidTransition):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, shipmentResponse(shipment))
}

func shipmentResponse(s *model.Shipment) dto.ShipmentResponse {
	return dto.ShipmentResponse{
		ID:              s.ID,
		PaymentID:       s.PaymentID,
		Status:          string(s.Status()),
		DeliveryAddress: s.DeliveryAddress,
		ShippedAt:       s.ShippedAt,
		DeliveredAt:     s.DeliveredAt,
		CancelledAt:     s.CancelledAt,
		PaymentFailedAt: s.PaymentFailedAt,
	}
}
