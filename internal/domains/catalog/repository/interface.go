package repository

import (
	"context"

	"funpark-backend/internal/domains/catalog/model"
)

// CatalogRepository reads the service catalog.
type CatalogRepository interface {
	// GetByIDs resolves services by id, keyed for cart lookups. Missing ids
	// are simply absent from the map.
	GetByIDs(ctx context.Context, ids []string) (map[string]*model.Service, error)

	// ListActive returns the public price list in menu order.
	ListActive(ctx context.Context) ([]*model.Service, error)
}
