package usecase_test

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/landscape-review/internal/domain"
	"github.com/landscape-review/internal/pkg/errors"
	"github.com/landscape-review/internal/usecase"
	"github.com/landscape-review/internal/usecase/dto"
)

func newAnalysisUseCase(layers *MockLayerRepository) *usecase.AnalysisUseCase {
	logger := zap.NewNop()
	return usecase.NewAnalysisUseCase(usecase.NewSpatialAnalyzer(layers, testCatalog, logger), 0, logger)
}

func TestAnalysisUseCase_Analyze(t *testing.T) {
	ctx := context.Background()
	ref := domain.LayerRef{Region: "광주광역시", Category: "categoryA", Name: "경관지구", File: "district.geojson"}

	layers := &MockLayerRepository{}
	layers.On("LoadLayer", mock.Anything, ref).Return(collection(geojson.NewFeature(squareAround(origin, 0.01))), nil)

	resp, err := newAnalysisUseCase(layers).Analyze(ctx, dto.AnalyzeRequest{
		Lat: origin.Lat,
		Lng: origin.Lon,
		Layers: map[string]map[string][]dto.LayerSelection{
			"광주광역시": {"categoryA": {{Name: "경관지구", File: "district.geojson"}}},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, usecase.DefaultRadiusKm, resp.RadiusKm, "default radius applies when omitted")
	assert.Equal(t, origin, resp.AnalysisPoint)
	assert.Len(t, resp.Overlap["categoryA"], 1)
}

func TestAnalysisUseCase_Analyze_ParcelGeometryIsNormalized(t *testing.T) {
	ctx := context.Background()
	ref := domain.LayerRef{Region: "R", Category: "categoryA", Name: "Zone", File: "zone.geojson"}

	// zone east of the analysis point, reached only through the parcel
	zone := squareAround(domain.Coordinate{Lat: 35.15, Lon: 126.8520}, 0.0015)
	layers := &MockLayerRepository{}
	layers.On("LoadLayer", mock.Anything, ref).Return(collection(geojson.NewFeature(zone)), nil)

	// parcel supplied as (lat, lon) pairs inside a Feature
	parcel := json.RawMessage(`{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[
		[35.1495,126.8495],[35.1495,126.8510],[35.1505,126.8510],[35.1505,126.8495],[35.1495,126.8495]
	]]}}`)

	resp, err := newAnalysisUseCase(layers).Analyze(ctx, dto.AnalyzeRequest{
		Lat:            origin.Lat,
		Lng:            origin.Lon,
		Radius:         ptrFloat64(1),
		ParcelGeometry: parcel,
		Layers: map[string]map[string][]dto.LayerSelection{
			"R": {"categoryA": {{Name: "Zone", File: "zone.geojson"}}},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 1.0, resp.RadiusKm)
	assert.Len(t, resp.Overlap["categoryA"], 1)
}

func TestAnalysisUseCase_Analyze_Validation(t *testing.T) {
	ctx := context.Background()
	layers := &MockLayerRepository{}
	uc := newAnalysisUseCase(layers)

	cases := []struct {
		name string
		req  dto.AnalyzeRequest
		want *errors.AppError
	}{
		{"nan latitude", dto.AnalyzeRequest{Lat: math.NaN(), Lng: 126.85}, errors.ErrInvalidCoordinates},
		{"out of range longitude", dto.AnalyzeRequest{Lat: 35.15, Lng: 181}, errors.ErrInvalidCoordinates},
		{"infinite radius", dto.AnalyzeRequest{Lat: 35.15, Lng: 126.85, Radius: ptrFloat64(math.Inf(1))}, errors.ErrInvalidRadius},
		{"point parcel geometry", dto.AnalyzeRequest{
			Lat: 35.15, Lng: 126.85,
			ParcelGeometry: json.RawMessage(`{"type":"Point","coordinates":[126.85,35.15]}`),
		}, errors.ErrInvalidRequest},
		{"garbage parcel geometry", dto.AnalyzeRequest{
			Lat: 35.15, Lng: 126.85,
			ParcelGeometry: json.RawMessage(`{"type":`),
		}, errors.ErrInvalidRequest},
		{"layer without file", dto.AnalyzeRequest{
			Lat: 35.15, Lng: 126.85,
			Layers: map[string]map[string][]dto.LayerSelection{"R": {"categoryA": {{Name: "x"}}}},
		}, errors.ErrInvalidRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := uc.Analyze(ctx, tc.req)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	layers.AssertNotCalled(t, "LoadLayer", mock.Anything, mock.Anything)
}

func TestAnalysisUseCase_Analyze_NullParcelGeometry(t *testing.T) {
	resp, err := newAnalysisUseCase(&MockLayerRepository{}).Analyze(context.Background(), dto.AnalyzeRequest{
		Lat:            35.15,
		Lng:            126.85,
		ParcelGeometry: json.RawMessage(`null`),
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Overlap)
	assert.Empty(t, resp.Nearby)
}

func TestFlattenLayerSelection_IsDeterministic(t *testing.T) {
	selection := map[string]map[string][]dto.LayerSelection{
		"전라남도": {
			"경관지구": {{Name: "b", File: "b.geojson"}, {Name: "a", File: "a.geojson"}},
		},
		"광주광역시": {
			"경관지구": {{Name: "c", File: "c.geojson"}},
			"경관거점": {{Name: "d", File: "d.geojson"}},
		},
	}

	refs, err := usecase.FlattenLayerSelection(selection)

	require.NoError(t, err)
	require.Len(t, refs, 4)
	got := make([]string, len(refs))
	for i, r := range refs {
		got[i] = r.String()
	}
	assert.Equal(t, []string{
		"광주광역시/경관거점/d.geojson",
		"광주광역시/경관지구/c.geojson",
		"전라남도/경관지구/b.geojson",
		"전라남도/경관지구/a.geojson",
	}, got)
}
