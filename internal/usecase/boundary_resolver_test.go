package usecase_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/landscape-review/internal/domain"
	"github.com/landscape-review/internal/usecase"
)

func TestBoundaryResolver_ExactMatchSkipsBBox(t *testing.T) {
	ctx := context.Background()
	provider := &MockBoundaryProvider{}
	coord := domain.Coordinate{Lat: 35.15, Lon: 126.85}
	parcel := squareAround(coord, 0.0005)

	provider.On("GetBoundaryByParcelID", ctx, "X1").Return(geojson.NewFeature(parcel), nil)

	resolver := usecase.NewBoundaryResolver(provider, 0.005, zap.NewNop())
	geom := resolver.Resolve(ctx, coord, "X1")

	assert.Equal(t, parcel, geom)
	provider.AssertNotCalled(t, "GetBoundariesByBBox", mock.Anything, mock.Anything)
}

func TestBoundaryResolver_ExactFailureFallsBackToBBox(t *testing.T) {
	ctx := context.Background()
	coord := domain.Coordinate{Lat: 35.15, Lon: 126.85}
	parcel := squareAround(coord, 0.0005)
	bound := domain.BoundingBoxAround(coord, 0.005).Bound()

	for name, exact := range map[string][]interface{}{
		"provider error": {nil, stderrors.New("wfs timeout")},
		"not found":      {nil, nil},
		"point geometry": {geojson.NewFeature(orb.Point{126.85, 35.15}), nil},
	} {
		t.Run(name, func(t *testing.T) {
			provider := &MockBoundaryProvider{}
			provider.On("GetBoundaryByParcelID", ctx, "X1").Return(exact...)
			provider.On("GetBoundariesByBBox", ctx, bound).Return([]*geojson.Feature{geojson.NewFeature(parcel)}, nil)

			geom := usecase.NewBoundaryResolver(provider, 0.005, zap.NewNop()).Resolve(ctx, coord, "X1")

			assert.Equal(t, parcel, geom)
			provider.AssertNumberOfCalls(t, "GetBoundaryByParcelID", 1)
			provider.AssertNumberOfCalls(t, "GetBoundariesByBBox", 1)
		})
	}
}

func TestBoundaryResolver_BBoxPicksFirstContainingCandidate(t *testing.T) {
	ctx := context.Background()
	provider := &MockBoundaryProvider{}
	coord := domain.Coordinate{Lat: 35.15, Lon: 126.85}

	elsewhere := squareAround(domain.Coordinate{Lat: 35.153, Lon: 126.853}, 0.0005)
	containing := squareAround(coord, 0.0005)
	alsoContaining := squareAround(coord, 0.001)

	provider.On("GetBoundariesByBBox", ctx, mock.AnythingOfType("orb.Bound")).Return([]*geojson.Feature{
		nil,
		geojson.NewFeature(elsewhere),
		geojson.NewFeature(containing),
		geojson.NewFeature(alsoContaining),
	}, nil)

	geom := usecase.NewBoundaryResolver(provider, 0.005, zap.NewNop()).Resolve(ctx, coord, "")

	assert.Equal(t, containing, geom)
	provider.AssertNotCalled(t, "GetBoundaryByParcelID", mock.Anything, mock.Anything)
}

func TestBoundaryResolver_BBoxNormalizesLatLonCandidates(t *testing.T) {
	ctx := context.Background()
	provider := &MockBoundaryProvider{}
	coord := domain.Coordinate{Lat: 35.15, Lon: 126.85}

	// candidate encoded as (lat, lon)
	swapped := orb.Polygon{{
		{35.1495, 126.8495},
		{35.1495, 126.8505},
		{35.1505, 126.8505},
		{35.1505, 126.8495},
	}}
	provider.On("GetBoundariesByBBox", ctx, mock.Anything).Return([]*geojson.Feature{geojson.NewFeature(swapped)}, nil)

	geom := usecase.NewBoundaryResolver(provider, 0.005, zap.NewNop()).Resolve(ctx, coord, "")

	require.NotNil(t, geom)
	poly, ok := geom.(orb.Polygon)
	require.True(t, ok)
	assert.Equal(t, orb.Point{126.8495, 35.1495}, poly[0][0])
	assert.Equal(t, orb.Point{35.1495, 126.8495}, swapped[0][0], "input must not be mutated")
}

func TestBoundaryResolver_NoContainingCandidate(t *testing.T) {
	ctx := context.Background()
	provider := &MockBoundaryProvider{}
	coord := domain.Coordinate{Lat: 35.15, Lon: 126.85}

	provider.On("GetBoundariesByBBox", ctx, mock.Anything).Return([]*geojson.Feature{
		geojson.NewFeature(squareAround(domain.Coordinate{Lat: 35.153, Lon: 126.853}, 0.0005)),
	}, nil)

	geom := usecase.NewBoundaryResolver(provider, 0.005, zap.NewNop()).Resolve(ctx, coord, "")

	assert.Nil(t, geom)
}

func TestBoundaryResolver_BBoxErrorYieldsNil(t *testing.T) {
	ctx := context.Background()
	provider := &MockBoundaryProvider{}
	provider.On("GetBoundariesByBBox", ctx, mock.Anything).Return(nil, stderrors.New("connection reset"))

	geom := usecase.NewBoundaryResolver(provider, 0.005, zap.NewNop()).
		Resolve(ctx, domain.Coordinate{Lat: 35.15, Lon: 126.85}, "")

	assert.Nil(t, geom)
}
