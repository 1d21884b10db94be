package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"funpark-backend/internal/domains/checkout/model"
	"funpark-backend/internal/domains/checkout/service"
	"funpark-backend/internal/domains/payment/gateway/wayforpay"
	promomodel "funpark-backend/internal/domains/promo/model"
	"funpark-backend/internal/shared/response"
	"funpark-backend/pkg/logger"
)

type CheckoutHandler struct {
	service service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: checkoutService}
}

// Purchase prices the cart and returns the hosted-checkout URL.
// POST /payments/purchase
func (h *CheckoutHandler) Purchase(c *gin.Context) {
	var req model.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	for _, item := range req.CartItems {
		if err := item.Validate(); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}

	result, err := h.service.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result)
}

func (h *CheckoutHandler) handleError(c *gin.Context, err error) {
	// Promo rejections keep their machine-readable code so the storefront
	// can show the exact reason.
	var promoErr *promomodel.AppError
	if errors.As(err, &promoErr) {
		response.Error(c, promoErr.HTTPStatus, promoErr.Message, string(promoErr.Code))
		return
	}

	var checkoutErr *model.AppError
	if errors.As(err, &checkoutErr) {
		response.Error(c, checkoutErr.HTTPStatus, checkoutErr.Message, "")
		return
	}

	if errors.Is(err, wayforpay.ErrNoPaymentURL) {
		logger.Error("gateway returned no payment url", err)
		response.Error(c, model.ErrPaymentURLMissing.HTTPStatus, model.ErrPaymentURLMissing.Message, "")
		return
	}

	logger.Error("order creation failed", err)
	response.InternalServerError(c, "Internal server error")
}
