package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"funpark-backend/internal/domains/catalog/repository"
	"funpark-backend/internal/shared/response"
	"funpark-backend/pkg/logger"
)

type CatalogHandler struct {
	repo repository.CatalogRepository
}

func NewCatalogHandler(repo repository.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{repo: repo}
}

// ListServices returns the public price list. GET /services
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.repo.ListActive(c.Request.Context())
	if err != nil {
		logger.Error("list services failed", err)
		response.InternalServerError(c, "Internal server error")
		return
	}

	response.JSON(c, http.StatusOK, services)
}
