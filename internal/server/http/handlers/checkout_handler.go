package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/marukota/curiomart/internal/domain/errors"
	"github.com/marukota/curiomart/internal/domain/model"
	"github.com/marukota/curiomart/internal/server/http/dto"
)

// CheckoutHandler manages purchase endpoints.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// Checkout handles POST /api/user/checkout.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, model.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	paymentURL, err := h.facade.Checkout(c.Request.Context(), userID, req.MerchantPaymentID, items)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidOrder):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNoShippingAddress):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrDuplicatePayment):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrGatewayRejected):
			c.Status(http.StatusBadGateway)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.CheckoutResponse{
		MerchantPaymentID: req.MerchantPaymentID,
		PaymentURL:        paymentURL,
	})
}

// List handles GET /api/user/payments.
func (h *CheckoutHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	payments, err := h.facade.Payments(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(payments) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		resp = append(resp, dto.PaymentResponse{MerchantPaymentID: p.MerchantPaymentID, CreatedAt: p.CreatedAt})
	}
	c.JSON(http.StatusOK, resp)
}

// Status handles GET /api/user/payments/:merchantPaymentID.
func (h *CheckoutHandler) Status(c *gin.Context) {
	userID := CurrentUserID(c)
	merchantPaymentID := c.Param("merchantPaymentID")

	details, err := h.facade.PaymentStatus(c.Request.Context(), userID, merchantPaymentID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrGatewayRejected):
			c.Status(http.StatusBadGateway)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.PaymentStatusResponse{
		MerchantPaymentID: details.MerchantPaymentID,
		Status:            string(details.Status),
		Amount:            details.Amount,
		RequestedAt:       details.RequestedAt,
		AcceptedAt:        details.AcceptedAt,
	})
}
