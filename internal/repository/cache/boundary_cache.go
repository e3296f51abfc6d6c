package cache

import (
	"context"
	"time"

	"github.com/landscape-review/internal/domain/repository"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

const boundaryKeyPrefix = "boundary:pnu:"

// cachedBoundaryProvider кеширует точные границы по PNU.
// Поиск по bbox не кешируется: прямоугольник строится от произвольной точки.
type cachedBoundaryProvider struct {
	next   repository.BoundaryProvider
	cache  repository.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedBoundaryProvider оборачивает BoundaryProvider кешем. Ошибки кеша не прерывают запрос
func NewCachedBoundaryProvider(
	next repository.BoundaryProvider,
	cache repository.CacheRepository,
	ttl time.Duration,
	logger *zap.Logger,
) repository.BoundaryProvider {
	return &cachedBoundaryProvider{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (p *cachedBoundaryProvider) GetBoundaryByParcelID(ctx context.Context, parcelID string) (*geojson.Feature, error) {
	key := boundaryKeyPrefix + parcelID

	data, err := p.cache.Get(ctx, key)
	if err != nil {
		p.logger.Warn("Boundary cache read failed", zap.String("pnu", parcelID), zap.Error(err))
	}
	if len(data) > 0 {
		feature, err := geojson.UnmarshalFeature(data)
		if err == nil {
			return feature, nil
		}
		p.logger.Warn("Dropping undecodable boundary cache entry", zap.String("pnu", parcelID), zap.Error(err))
		_ = p.cache.Delete(ctx, key)
	}

	feature, err := p.next.GetBoundaryByParcelID(ctx, parcelID)
	if err != nil || feature == nil {
		return feature, err
	}

	if raw, err := feature.MarshalJSON(); err == nil {
		if err := p.cache.Set(ctx, key, raw, p.ttl); err != nil {
			p.logger.Warn("Boundary cache write failed", zap.String("pnu", parcelID), zap.Error(err))
		}
	}
	return feature, nil
}

func (p *cachedBoundaryProvider) GetBoundariesByBBox(ctx context.Context, bound orb.Bound) ([]*geojson.Feature, error) {
	return p.next.GetBoundariesByBBox(ctx, bound)
}
