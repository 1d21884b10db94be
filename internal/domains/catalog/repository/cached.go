package repository

import (
	"context"
	"time"

	"funpark-backend/internal/domains/catalog/model"
	"funpark-backend/internal/infrastructure/cache"
	"funpark-backend/pkg/logger"
)

const (
	priceListCacheKey = "catalog:services:active"
	priceListCacheTTL = 5 * time.Minute
)

// CachedRepository is a read-through cache over the catalog. The public
// price list sits on the landing page, so it takes most of the read load;
// cart lookups go straight to the database because they price real money.
type CachedRepository struct {
	inner CatalogRepository
	cache *cache.RedisClient
}

func NewCachedRepository(inner CatalogRepository, redisClient *cache.RedisClient) CatalogRepository {
	return &CachedRepository{
		inner: inner,
		cache: redisClient,
	}
}

func (r *CachedRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*model.Service, error) {
	return r.inner.GetByIDs(ctx, ids)
}

func (r *CachedRepository) ListActive(ctx context.Context) ([]*model.Service, error) {
	var cached []*model.Service
	hit, err := r.cache.GetJSON(ctx, priceListCacheKey, &cached)
	if err != nil {
		// Cache trouble must not take the price list down.
		logger.Error("price list cache read failed", err)
	}
	if hit {
		return cached, nil
	}

	services, err := r.inner.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.cache.SetJSON(ctx, priceListCacheKey, services, priceListCacheTTL); err != nil {
		logger.Error("price list cache write failed", err)
	}

	return services, nil
}
