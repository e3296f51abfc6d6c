package usecase_test

import (
	"context"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/mock"

	"github.com/landscape-review/internal/domain"
)

// MockGeocodingProvider is a mock of GeocodingProvider
type MockGeocodingProvider struct {
	mock.Mock
}

func (m *MockGeocodingProvider) GeocodeByText(ctx context.Context, query string) (*domain.GeocodeResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeocodeResult), args.Error(1)
}

func (m *MockGeocodingProvider) GeocodeByCoordinate(ctx context.Context, coord domain.Coordinate) (*domain.GeocodeResult, error) {
	args := m.Called(ctx, coord)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeocodeResult), args.Error(1)
}

// MockPlaceSearchProvider is a mock of PlaceSearchProvider
type MockPlaceSearchProvider struct {
	mock.Mock
}

func (m *MockPlaceSearchProvider) SearchAddress(ctx context.Context, query string) (*domain.GeocodeResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeocodeResult), args.Error(1)
}

func (m *MockPlaceSearchProvider) SearchKeyword(ctx context.Context, query string) (*domain.GeocodeResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeocodeResult), args.Error(1)
}

func (m *MockPlaceSearchProvider) AddressByCoordinate(ctx context.Context, coord domain.Coordinate) (string, error) {
	args := m.Called(ctx, coord)
	return args.String(0), args.Error(1)
}

// MockBoundaryProvider is a mock of BoundaryProvider
type MockBoundaryProvider struct {
	mock.Mock
}

func (m *MockBoundaryProvider) GetBoundaryByParcelID(ctx context.Context, parcelID string) (*geojson.Feature, error) {
	args := m.Called(ctx, parcelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geojson.Feature), args.Error(1)
}

func (m *MockBoundaryProvider) GetBoundariesByBBox(ctx context.Context, bound orb.Bound) ([]*geojson.Feature, error) {
	args := m.Called(ctx, bound)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*geojson.Feature), args.Error(1)
}

// MockLayerRepository is a mock of LayerRepository
type MockLayerRepository struct {
	mock.Mock
}

func (m *MockLayerRepository) ListLayers(ctx context.Context) (domain.LayerInventory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.LayerInventory), args.Error(1)
}

func (m *MockLayerRepository) LoadLayer(ctx context.Context, ref domain.LayerRef) (*geojson.FeatureCollection, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geojson.FeatureCollection), args.Error(1)
}

func (m *MockLayerRepository) Reload(ctx context.Context) (domain.LayerInventory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.LayerInventory), args.Error(1)
}

// squareAround builds a closed [lon, lat] square polygon centered on the coordinate
func squareAround(c domain.Coordinate, half float64) orb.Polygon {
	return orb.Polygon{{
		{c.Lon - half, c.Lat - half},
		{c.Lon + half, c.Lat - half},
		{c.Lon + half, c.Lat + half},
		{c.Lon - half, c.Lat + half},
		{c.Lon - half, c.Lat - half},
	}}
}

func collection(features ...*geojson.Feature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range features {
		fc.Append(f)
	}
	return fc
}

func ptrFloat64(f float64) *float64 {
	return &f
}
