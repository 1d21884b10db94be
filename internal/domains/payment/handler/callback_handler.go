package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"funpark-backend/internal/domains/payment/gateway/wayforpay"
	"funpark-backend/internal/domains/payment/service"
	"funpark-backend/internal/shared/response"
	"funpark-backend/pkg/logger"
)

// CallbackHandler receives the gateway's server-to-server transaction
// notifications.
type CallbackHandler struct {
	service service.CallbackService
}

func NewCallbackHandler(callbackService service.CallbackService) *CallbackHandler {
	return &CallbackHandler{service: callbackService}
}

// HandleCallback processes one payment notification and replies with the
// signed acknowledgement the gateway requires. POST /payments/callback
func (h *CallbackHandler) HandleCallback(c *gin.Context) {
	var cb wayforpay.Callback
	if err := c.ShouldBindJSON(&cb); err != nil {
		response.BadRequest(c, "Invalid callback payload")
		return
	}

	result, err := h.service.ProcessCallback(c.Request.Context(), &cb)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSignature) {
			response.BadRequest(c, "Invalid signature")
			return
		}
		logger.Error("callback processing failed", err)
		response.InternalServerError(c, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, result)
}
