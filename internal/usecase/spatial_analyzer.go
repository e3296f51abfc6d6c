package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/landscape-review/internal/domain"
	"github.com/landscape-review/internal/domain/repository"
	"github.com/landscape-review/internal/metrics"
	"github.com/landscape-review/internal/pkg/errors"
	"github.com/landscape-review/internal/pkg/geometry"
	"github.com/landscape-review/internal/pkg/utils"
)

const (
	skipReasonLoadFailed = "load_failed"
	skipReasonEmpty      = "empty"

	// одновременных загрузок слоев на один анализ
	layerLoadConcurrency = 4
)

// SpatialAnalyzer - пересечения площадных слоев и близость точечных слоев.
//
// Пересечение приближенное: точка внутри кольца объекта, либо вершина участка
// внутри кольца объекта, либо вершина объекта внутри кольца участка. Пересечения
// ребер без вложенных вершин не обнаруживаются. Учитываются только внешние кольца.
type SpatialAnalyzer struct {
	layers  repository.LayerRepository
	catalog *domain.CategoryCatalog
	logger  *zap.Logger
}

// NewSpatialAnalyzer - создание SpatialAnalyzer
func NewSpatialAnalyzer(layers repository.LayerRepository, catalog *domain.CategoryCatalog, logger *zap.Logger) *SpatialAnalyzer {
	if catalog == nil {
		catalog = domain.DefaultCategoryCatalog()
	}
	return &SpatialAnalyzer{
		layers:  layers,
		catalog: catalog,
		logger:  logger,
	}
}

type nearbyCandidate struct {
	item     domain.NearbyItem
	distance float64
}

// Analyze выполняет анализ. Ошибка загрузки слоя не прерывает анализ:
// слой попадает в Skipped. Ошибку возвращают только невалидная точка анализа
// и нечисловой радиус (NaN, ±Inf).
func (a *SpatialAnalyzer) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	if !req.AnalysisPoint.Valid() {
		return nil, errors.ErrInvalidCoordinates
	}
	// NaN не сравнивается с расстоянием, и все точки попали бы в радиус
	if !utils.IsFinite(req.RadiusKm) {
		return nil, errors.ErrInvalidRadius
	}

	start := time.Now()
	defer func() {
		metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	}()

	result := domain.NewAnalysisResult()
	if len(req.Layers) == 0 {
		return result, nil
	}

	point := req.AnalysisPoint.Point()
	parcelRings := geometry.OuterRings(req.ParcelGeometry)
	radius := req.RadiusKm
	if radius < 0 {
		radius = 0
	}

	nearby := make(map[string][]nearbyCandidate)
	loaded := a.loadLayers(ctx, req.Layers)

	for i, ref := range req.Layers {
		// ключи категории присутствуют даже без совпадений
		if _, ok := result.Overlap[ref.Category]; !ok {
			result.Overlap[ref.Category] = []domain.OverlapItem{}
			result.Nearby[ref.Category] = []domain.NearbyItem{}
		}

		kind := a.catalog.Kind(ref.Category)
		if kind == domain.KindUnknown {
			a.logger.Debug("Category is neither area nor point, skipping",
				zap.String("category", ref.Category))
			continue
		}

		fc, err := loaded[i].fc, loaded[i].err
		if err != nil {
			a.skip(result, ref, skipReasonLoadFailed, err)
			continue
		}
		if fc == nil || len(fc.Features) == 0 {
			a.skip(result, ref, skipReasonEmpty, nil)
			continue
		}

		switch kind {
		case domain.KindArea:
			if layerOverlaps(fc, point, parcelRings) {
				result.Overlap[ref.Category] = append(result.Overlap[ref.Category], domain.OverlapItem{
					Name:   layerName(ref),
					File:   ref.File,
					Region: ref.Region,
				})
			}
		case domain.KindPoint:
			nearby[ref.Category] = append(nearby[ref.Category], a.nearbyFeatures(fc, ref, point, radius)...)
		}
	}

	for category, candidates := range nearby {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].distance < candidates[j].distance
		})
		items := make([]domain.NearbyItem, len(candidates))
		for i, c := range candidates {
			items[i] = c.item
		}
		result.Nearby[category] = items
	}

	a.logger.Debug("Analysis completed",
		zap.Int("layers", len(req.Layers)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Duration("duration", time.Since(start)))

	return result, nil
}

type loadedLayer struct {
	fc  *geojson.FeatureCollection
	err error
}

// loadLayers загружает слои параллельно; результат в порядке refs.
// Ошибки отдельных слоев не отменяют остальные загрузки.
func (a *SpatialAnalyzer) loadLayers(ctx context.Context, refs []domain.LayerRef) []loadedLayer {
	loaded := make([]loadedLayer, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(layerLoadConcurrency)
	for i, ref := range refs {
		if a.catalog.Kind(ref.Category) == domain.KindUnknown {
			continue
		}
		g.Go(func() error {
			fc, err := a.layers.LoadLayer(gctx, ref)
			loaded[i] = loadedLayer{fc: fc, err: err}
			return nil
		})
	}
	_ = g.Wait()

	return loaded
}

func (a *SpatialAnalyzer) skip(result *domain.AnalysisResult, ref domain.LayerRef, reason string, err error) {
	a.logger.Warn("Skipping layer",
		zap.String("layer", ref.String()),
		zap.String("reason", reason),
		zap.Error(err))
	metrics.LayersSkippedTotal.WithLabelValues(ref.Category).Inc()
	result.Skipped = append(result.Skipped, domain.SkippedLayer{
		Region:   ref.Region,
		Category: ref.Category,
		File:     ref.File,
		Reason:   reason,
	})
}

func (a *SpatialAnalyzer) nearbyFeatures(
	fc *geojson.FeatureCollection,
	ref domain.LayerRef,
	point orb.Point,
	radius float64,
) []nearbyCandidate {
	var out []nearbyCandidate
	name := layerName(ref)

	for _, feature := range fc.Features {
		if feature == nil {
			continue
		}
		p, ok := feature.Geometry.(orb.Point)
		if !ok || !utils.ValidateCoordinates(p.Lat(), p.Lon()) {
			continue
		}

		distance := geometry.GreatCircleDistanceKm(point, p)
		if distance > radius {
			continue
		}

		out = append(out, nearbyCandidate{
			item: domain.NearbyItem{
				Name:        name,
				DisplayName: a.catalog.DisplayName(ref.Category, feature.Properties, name),
				Region:      ref.Region,
				DistanceKm:  utils.Round(distance, 2),
				Coordinates: [2]float64{p.Lat(), p.Lon()},
				Properties:  feature.Properties,
			},
			distance: distance,
		})
	}
	return out
}

// layerOverlaps - первый совпавший объект завершает проверку слоя
func layerOverlaps(fc *geojson.FeatureCollection, point orb.Point, parcelRings []orb.Ring) bool {
	for _, feature := range fc.Features {
		if feature == nil {
			continue
		}
		for _, ring := range geometry.OuterRings(feature.Geometry) {
			if ringOverlaps(ring, point, parcelRings) {
				return true
			}
		}
	}
	return false
}

func ringOverlaps(ring orb.Ring, point orb.Point, parcelRings []orb.Ring) bool {
	if geometry.PointInRing(point, ring) {
		return true
	}
	for _, parcel := range parcelRings {
		if geometry.AnyVertexInRing(parcel, ring) || geometry.AnyVertexInRing(ring, parcel) {
			return true
		}
	}
	return false
}

func layerName(ref domain.LayerRef) string {
	if ref.Name != "" {
		return ref.Name
	}
	return ref.File
}
