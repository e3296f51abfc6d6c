package repository

import (
	"context"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// BoundaryProvider - источник границ земельных участков
type BoundaryProvider interface {
	// GetBoundaryByParcelID возвращает участок по PNU, nil если не найден
	GetBoundaryByParcelID(ctx context.Context, parcelID string) (*geojson.Feature, error)

	// GetBoundariesByBBox возвращает участки, пересекающие прямоугольник, в порядке ответа провайдера
	GetBoundariesByBBox(ctx context.Context, bound orb.Bound) ([]*geojson.Feature, error)
}
