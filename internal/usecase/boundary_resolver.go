package usecase

import (
	"context"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/landscape-review/internal/domain"
	"github.com/landscape-review/internal/domain/repository"
	"github.com/landscape-review/internal/metrics"
	"github.com/landscape-review/internal/pkg/geometry"
)

const (
	stageBoundary = "boundary"
	tierExact     = "exact"
	tierBBox      = "bbox"
)

// DefaultBBoxHalfWidth - полуширина поискового прямоугольника, ~500 м
const DefaultBBoxHalfWidth = 0.005

// BoundaryResolver - граница участка: точный поиск по PNU, затем bbox + point-in-polygon.
// Ошибки провайдера не пробрасываются: тир считается неудачным, итог - nil.
type BoundaryResolver struct {
	provider  repository.BoundaryProvider
	halfWidth float64
	logger    *zap.Logger
}

// NewBoundaryResolver - создание BoundaryResolver
func NewBoundaryResolver(provider repository.BoundaryProvider, halfWidth float64, logger *zap.Logger) *BoundaryResolver {
	if halfWidth <= 0 {
		halfWidth = DefaultBBoxHalfWidth
	}
	return &BoundaryResolver{
		provider:  provider,
		halfWidth: halfWidth,
		logger:    logger,
	}
}

// Resolve возвращает Polygon/MultiPolygon участка или nil
func (r *BoundaryResolver) Resolve(ctx context.Context, coord domain.Coordinate, parcelID string) orb.Geometry {
	if parcelID != "" {
		if geom := r.exactTier(ctx, parcelID); geom != nil {
			return geom
		}
	}
	return r.bboxTier(ctx, coord)
}

func (r *BoundaryResolver) exactTier(ctx context.Context, parcelID string) orb.Geometry {
	feature, err := r.provider.GetBoundaryByParcelID(ctx, parcelID)
	found := err == nil && feature != nil && geometry.IsAreal(feature.Geometry)
	metrics.ObserveTier(stageBoundary, tierExact, found, err)

	if err != nil {
		r.logger.Warn("Exact boundary lookup failed, falling back to bbox",
			zap.String("pnu", parcelID),
			zap.Error(err))
		return nil
	}
	if !found {
		r.logger.Debug("Exact boundary not found", zap.String("pnu", parcelID))
		return nil
	}

	// источник точного поиска уже в конвенции [lon, lat]
	return feature.Geometry
}

func (r *BoundaryResolver) bboxTier(ctx context.Context, coord domain.Coordinate) orb.Geometry {
	if !coord.Valid() {
		r.logger.Warn("Skipping bbox boundary lookup for invalid coordinate",
			zap.Float64("lat", coord.Lat),
			zap.Float64("lon", coord.Lon))
		return nil
	}

	bound := domain.BoundingBoxAround(coord, r.halfWidth).Bound()
	features, err := r.provider.GetBoundariesByBBox(ctx, bound)
	if err != nil {
		metrics.ObserveTier(stageBoundary, tierBBox, false, err)
		r.logger.Warn("BBox boundary lookup failed",
			zap.Float64("lat", coord.Lat),
			zap.Float64("lon", coord.Lon),
			zap.Error(err))
		return nil
	}

	point := coord.Point()
	for i, feature := range features {
		if feature == nil || !geometry.IsAreal(feature.Geometry) {
			continue
		}
		geom := geometry.NormalizeGeometry(feature.Geometry)
		if geometry.ContainsPoint(geom, point) {
			metrics.ObserveTier(stageBoundary, tierBBox, true, nil)
			r.logger.Debug("Boundary resolved by bbox containment",
				zap.Int("candidate", i),
				zap.Int("candidates", len(features)))
			return geom
		}
	}

	metrics.ObserveTier(stageBoundary, tierBBox, false, nil)
	r.logger.Info("No bbox candidate contains the point",
		zap.Float64("lat", coord.Lat),
		zap.Float64("lon", coord.Lon),
		zap.Int("candidates", len(features)))
	return nil
}
