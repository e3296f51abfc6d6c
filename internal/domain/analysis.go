package domain

import "github.com/paulmach/orb"

// AnalysisRequest - входные данные анализа пересечений и близости
type AnalysisRequest struct {
	AnalysisPoint  Coordinate
	ParcelGeometry orb.Geometry // orb.Polygon, orb.MultiPolygon или nil
	RadiusKm       float64
	Layers         []LayerRef
}

// OverlapItem - площадной слой, пересекающийся с точкой или участком
type OverlapItem struct {
	Name   string `json:"name"`
	File   string `json:"file"`
	Region string `json:"region"`
}

// NearbyItem - точечный объект в радиусе
type NearbyItem struct {
	Name        string                 `json:"name"`
	DisplayName string                 `json:"actual_name"`
	Region      string                 `json:"region"`
	DistanceKm  float64                `json:"distance"`
	Coordinates [2]float64             `json:"coordinates"` // [lat, lon]
	Properties  map[string]interface{} `json:"properties,omitempty"`
}

// SkippedLayer - слой, пропущенный из-за отсутствующих или битых данных
type SkippedLayer struct {
	Region   string `json:"region"`
	Category string `json:"category"`
	File     string `json:"file"`
	Reason   string `json:"reason"`
}

// AnalysisResult - результат анализа
type AnalysisResult struct {
	Overlap map[string][]OverlapItem `json:"overlap"`
	Nearby  map[string][]NearbyItem  `json:"nearby"`
	Skipped []SkippedLayer           `json:"skipped,omitempty"`
}

// NewAnalysisResult - пустой результат с инициализированными картами
func NewAnalysisResult() *AnalysisResult {
	return &AnalysisResult{
		Overlap: map[string][]OverlapItem{},
		Nearby:  map[string][]NearbyItem{},
	}
}
