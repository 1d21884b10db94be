package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"funpark-backend/internal/domains/promo/model"
	"funpark-backend/internal/domains/promo/service"
	"funpark-backend/internal/shared/response"
	"funpark-backend/pkg/logger"
)

// PromoHandler exposes the promo validate/reserve/cancel endpoints the
// storefront checkout calls.
type PromoHandler struct {
	service service.PromoService
}

func NewPromoHandler(promoService service.PromoService) *PromoHandler {
	return &PromoHandler{service: promoService}
}

// Validate checks a code without holding a slot. POST /promo/validate
func (h *PromoHandler) Validate(c *gin.Context) {
	var req model.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Validate(c.Request.Context(), req.Code)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// Reserve holds a discount slot for the duration of checkout.
// POST /promo/reserve
func (h *PromoHandler) Reserve(c *gin.Context) {
	var req model.ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Reserve(c.Request.Context(), req.Code)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// Cancel releases a held slot when the customer abandons checkout.
// POST /promo/cancel
func (h *PromoHandler) Cancel(c *gin.Context) {
	var req model.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	reservationID, err := uuid.Parse(req.ReservationID)
	if err != nil {
		response.BadRequest(c, "reservationId must be a UUID")
		return
	}

	if err := h.service.Cancel(c.Request.Context(), reservationID); err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, model.CancelResponse{Success: true})
}

// handleError relays business rejections with their machine-readable code;
// everything else is a generic 500 with details kept in the logs.
func (h *PromoHandler) handleError(c *gin.Context, err error) {
	var appErr *model.AppError
	if errors.As(err, &appErr) {
		response.Error(c, appErr.HTTPStatus, appErr.Message, string(appErr.Code))
		return
	}

	logger.Error("promo request failed", err)
	response.InternalServerError(c, "Internal server error")
}
