package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/landscape-review/internal/domain"
	"github.com/landscape-review/internal/pkg/errors"
	"github.com/landscape-review/internal/pkg/geometry"
)

// LocationUseCase - resolveLocation: адрес/ключевое слово или координата -> участок и точка анализа
type LocationUseCase struct {
	addresses  *AddressResolver
	boundaries *BoundaryResolver
	logger     *zap.Logger
}

// NewLocationUseCase - создание LocationUseCase
func NewLocationUseCase(addresses *AddressResolver, boundaries *BoundaryResolver, logger *zap.Logger) *LocationUseCase {
	return &LocationUseCase{
		addresses:  addresses,
		boundaries: boundaries,
		logger:     logger,
	}
}

// ResolveByText - геокодирование запроса и поиск границы участка.
// Точка анализа - центр bbox валидных вершин границы, без границы - геокодированная точка.
func (uc *LocationUseCase) ResolveByText(ctx context.Context, keyword string) (*domain.ResolvedLocation, error) {
	geo, err := uc.addresses.Resolve(ctx, keyword)
	if err != nil {
		return nil, err
	}

	loc := &domain.ResolvedLocation{
		Coordinate:    geo.Coordinate,
		Address:       geo.Address,
		ParcelID:      geo.ParcelID,
		AnalysisPoint: geo.Coordinate,
		Region:        domain.DetectRegion(geo.Address),
		Source:        geo.Source,
	}

	loc.Boundary = uc.boundaries.Resolve(ctx, geo.Coordinate, geo.ParcelID)
	if center, ok := geometry.ValidBoundsCenter(loc.Boundary); ok {
		loc.AnalysisPoint = domain.CoordinateFromPoint(center)
	}

	uc.logger.Info("Location resolved by text",
		zap.String("keyword", keyword),
		zap.String("address", loc.Address),
		zap.String("pnu", loc.ParcelID),
		zap.String("source", loc.Source),
		zap.Bool("has_boundary", loc.Boundary != nil))

	return loc, nil
}

// ResolveByCoordinate - точка задана пользователем: обратное геокодирование и поиск границы.
// Точка анализа совпадает с заданной координатой.
func (uc *LocationUseCase) ResolveByCoordinate(ctx context.Context, coord domain.Coordinate) (*domain.ResolvedLocation, error) {
	if !coord.Valid() {
		return nil, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"lat": fmt.Sprint(coord.Lat),
			"lng": fmt.Sprint(coord.Lon),
		})
	}

	loc := &domain.ResolvedLocation{
		Coordinate:    coord,
		AnalysisPoint: coord,
		Source:        domain.SourceCoordinate,
	}

	if geo := uc.addresses.ReverseGeocode(ctx, coord); geo != nil {
		loc.Address = geo.Address
		loc.ParcelID = geo.ParcelID
	}
	loc.Region = domain.DetectRegion(loc.Address)
	loc.Boundary = uc.boundaries.Resolve(ctx, coord, loc.ParcelID)

	uc.logger.Info("Location resolved by coordinate",
		zap.Float64("lat", coord.Lat),
		zap.Float64("lon", coord.Lon),
		zap.String("address", loc.Address),
		zap.String("pnu", loc.ParcelID),
		zap.Bool("has_boundary", loc.Boundary != nil))

	return loc, nil
}
