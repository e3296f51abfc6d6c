package dto

import (
	"github.com/paulmach/orb/geojson"

	"github.com/landscape-review/internal/domain"
)

// LocationResponse - результат resolveLocation
type LocationResponse struct {
	Address       string            `json:"address"`
	ParcelID      string            `json:"pnu,omitempty"`
	Region        string            `json:"region"`
	Source        string            `json:"source"`
	Coordinate    domain.Coordinate `json:"coordinate"`
	AnalysisPoint domain.Coordinate `json:"analysis_point"`
	Boundary      *geojson.Geometry `json:"boundary" swaggertype:"object"`
}

// NewLocationResponse - конвертация domain.ResolvedLocation в DTO
func NewLocationResponse(loc *domain.ResolvedLocation) *LocationResponse {
	if loc == nil {
		return nil
	}
	resp := &LocationResponse{
		Address:       loc.Address,
		ParcelID:      loc.ParcelID,
		Region:        loc.Region,
		Source:        loc.Source,
		Coordinate:    loc.Coordinate,
		AnalysisPoint: loc.AnalysisPoint,
	}
	if loc.Boundary != nil {
		resp.Boundary = geojson.NewGeometry(loc.Boundary)
	}
	return resp
}

// AnalyzeResponse - результат analyzeOverlap
type AnalyzeResponse struct {
	AnalysisPoint domain.Coordinate               `json:"analysis_point"`
	RadiusKm      float64                         `json:"radius"`
	Overlap       map[string][]domain.OverlapItem `json:"overlap"`
	Nearby        map[string][]domain.NearbyItem  `json:"nearby"`
	Skipped       []domain.SkippedLayer           `json:"skipped,omitempty"`
}

// NewAnalyzeResponse - конвертация результата анализа в DTO
func NewAnalyzeResponse(point domain.Coordinate, radiusKm float64, result *domain.AnalysisResult) *AnalyzeResponse {
	return &AnalyzeResponse{
		AnalysisPoint: point,
		RadiusKm:      radiusKm,
		Overlap:       result.Overlap,
		Nearby:        result.Nearby,
		Skipped:       result.Skipped,
	}
}

// LayersResponse - инвентарь слоев
type LayersResponse struct {
	Layers domain.LayerInventory `json:"layers"`
	Total  int                   `json:"total"`
}

// ReloadLayersResponse - итог перезагрузки инвентаря
type ReloadLayersResponse struct {
	Total int `json:"total"`
}

// HealthResponse - состояние сервиса и зависимостей
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
	Layers int               `json:"layers"`
}
