package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"funpark-backend/internal/domains/promo/service"
	"funpark-backend/internal/shared/response"
)

// CleanupHandler exposes the expiry sweep as an HTTP endpoint so an external
// scheduler can trigger it in addition to the worker's cron.
type CleanupHandler struct {
	service    service.PromoService
	cronSecret string
}

func NewCleanupHandler(promoService service.PromoService, cronSecret string) *CleanupHandler {
	return &CleanupHandler{
		service:    promoService,
		cronSecret: cronSecret,
	}
}

// Cleanup runs one bounded sweep. GET/POST /cron/cleanup
func (h *CleanupHandler) Cleanup(c *gin.Context) {
	if !h.authorized(c) {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	count := h.service.CleanupExpired(c.Request.Context())
	if count == 0 {
		response.JSON(c, http.StatusOK, gin.H{"message": "no expired reservations"})
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"success": true, "count": count})
}

// authorized checks the bearer token when CRON_SECRET is configured. The
// compare is constant-time so the token cannot be probed byte by byte.
func (h *CleanupHandler) authorized(c *gin.Context) bool {
	if h.cronSecret == "" {
		return true
	}

	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.cronSecret)) == 1
}
