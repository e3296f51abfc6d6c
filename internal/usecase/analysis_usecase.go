package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/landscape-review/internal/domain"
	"github.com/landscape-review/internal/pkg/errors"
	"github.com/landscape-review/internal/pkg/geometry"
	"github.com/landscape-review/internal/pkg/utils"
	"github.com/landscape-review/internal/usecase/dto"
)

// DefaultRadiusKm - радиус поиска точечных слоев, если он не задан
const DefaultRadiusKm = 3.0

// AnalysisUseCase - analyzeOverlap: валидация входа и запуск SpatialAnalyzer
type AnalysisUseCase struct {
	analyzer      *SpatialAnalyzer
	defaultRadius float64
	logger        *zap.Logger
}

// NewAnalysisUseCase - создание AnalysisUseCase
func NewAnalysisUseCase(analyzer *SpatialAnalyzer, defaultRadius float64, logger *zap.Logger) *AnalysisUseCase {
	if !utils.IsFinite(defaultRadius) || defaultRadius <= 0 {
		defaultRadius = DefaultRadiusKm
	}
	return &AnalysisUseCase{
		analyzer:      analyzer,
		defaultRadius: defaultRadius,
		logger:        logger,
	}
}

// Analyze - анализ по HTTP-запросу. Геометрия участка из запроса нормализуется к [lon, lat]
func (uc *AnalysisUseCase) Analyze(ctx context.Context, req dto.AnalyzeRequest) (*dto.AnalyzeResponse, error) {
	point := domain.Coordinate{Lat: req.Lat, Lon: req.Lng}
	if !point.Valid() {
		return nil, errors.ErrInvalidCoordinates
	}

	radius, err := uc.radius(req.Radius)
	if err != nil {
		return nil, err
	}

	parcel, err := parseParcelGeometry(req.ParcelGeometry)
	if err != nil {
		return nil, err
	}

	layers, err := FlattenLayerSelection(req.Layers)
	if err != nil {
		return nil, err
	}

	result, err := uc.analyzer.Analyze(ctx, domain.AnalysisRequest{
		AnalysisPoint:  point,
		ParcelGeometry: parcel,
		RadiusKm:       radius,
		Layers:         layers,
	})
	if err != nil {
		return nil, err
	}

	return dto.NewAnalyzeResponse(point, radius, result), nil
}

// AnalyzeLocation - анализ для уже резолвленной локации (точка анализа и граница участка)
func (uc *AnalysisUseCase) AnalyzeLocation(
	ctx context.Context,
	loc *domain.ResolvedLocation,
	radiusKm *float64,
	layers []domain.LayerRef,
) (*domain.AnalysisResult, error) {
	if loc == nil {
		return nil, errors.ErrInvalidRequest
	}

	radius, err := uc.radius(radiusKm)
	if err != nil {
		return nil, err
	}

	return uc.analyzer.Analyze(ctx, domain.AnalysisRequest{
		AnalysisPoint:  loc.AnalysisPoint,
		ParcelGeometry: loc.Boundary,
		RadiusKm:       radius,
		Layers:         layers,
	})
}

func (uc *AnalysisUseCase) radius(radiusKm *float64) (float64, error) {
	if radiusKm == nil {
		return uc.defaultRadius, nil
	}
	if !utils.ValidateRadius(*radiusKm) {
		return 0, errors.ErrInvalidRadius
	}
	return *radiusKm, nil
}

// FlattenLayerSelection - region -> category -> слои в детерминированный список LayerRef
func FlattenLayerSelection(selection map[string]map[string][]dto.LayerSelection) ([]domain.LayerRef, error) {
	regions := make([]string, 0, len(selection))
	for region := range selection {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	var refs []domain.LayerRef
	for _, region := range regions {
		categories := make([]string, 0, len(selection[region]))
		for category := range selection[region] {
			categories = append(categories, category)
		}
		sort.Strings(categories)

		for _, category := range categories {
			for _, item := range selection[region][category] {
				if item.File == "" {
					return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
						"region":   region,
						"category": category,
						"file":     "required",
					})
				}
				refs = append(refs, domain.LayerRef{
					Region:   region,
					Category: category,
					Name:     item.Name,
					File:     item.File,
				})
			}
		}
	}
	return refs, nil
}

// parseParcelGeometry принимает GeoJSON Geometry или Feature с Polygon/MultiPolygon
func parseParcelGeometry(raw json.RawMessage) (orb.Geometry, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, invalidParcelGeometry(err)
	}

	var geom orb.Geometry
	switch head.Type {
	case "Feature":
		f, err := geojson.UnmarshalFeature(raw)
		if err != nil {
			return nil, invalidParcelGeometry(err)
		}
		geom = f.Geometry
	default:
		g, err := geojson.UnmarshalGeometry(raw)
		if err != nil {
			return nil, invalidParcelGeometry(err)
		}
		geom = g.Geometry()
	}

	if !geometry.IsAreal(geom) {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"parcel_geometry": "must be Polygon or MultiPolygon",
		})
	}
	return geometry.NormalizeGeometry(geom), nil
}

func invalidParcelGeometry(err error) error {
	return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
		"parcel_geometry": "invalid GeoJSON",
	}).Wrap(err)
}
