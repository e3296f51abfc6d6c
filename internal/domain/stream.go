package domain

import "github.com/google/uuid"

// Stream names
const (
	StreamAnalysisRequest = "stream:analysis:request"
	StreamAnalysisDone    = "stream:analysis:done"
)

// AnalysisRequestEvent - входящее событие на анализ участка
type AnalysisRequestEvent struct {
	RequestID uuid.UUID  `json:"request_id"`
	Keyword   *string    `json:"keyword,omitempty"`
	Latitude  *float64   `json:"lat,omitempty"`
	Longitude *float64   `json:"lng,omitempty"`
	RadiusKm  *float64   `json:"radius_km,omitempty"`
	Layers    []LayerRef `json:"layers"`
}

// HasKeyword проверяет наличие непустого адреса/ключевого слова
func (e *AnalysisRequestEvent) HasKeyword() bool {
	return e.Keyword != nil && *e.Keyword != ""
}

// HasCoordinates проверяет наличие обеих координат
func (e *AnalysisRequestEvent) HasCoordinates() bool {
	return e.Latitude != nil && e.Longitude != nil
}

// AnalysisDoneEvent - результат анализа
type AnalysisDoneEvent struct {
	RequestID uuid.UUID        `json:"request_id"`
	Location  *LocationSummary `json:"location,omitempty"`
	Result    *AnalysisResult  `json:"result,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// LocationSummary - краткие данные о найденном участке для события
type LocationSummary struct {
	Address       string     `json:"address"`
	ParcelID      string     `json:"parcel_id,omitempty"`
	Region        string     `json:"region"`
	Source        string     `json:"source"`
	AnalysisPoint Coordinate `json:"analysis_point"`
	HasBoundary   bool       `json:"has_boundary"`
}

// Summary сворачивает ResolvedLocation для публикации
func (l *ResolvedLocation) Summary() *LocationSummary {
	if l == nil {
		return nil
	}
	return &LocationSummary{
		Address:       l.Address,
		ParcelID:      l.ParcelID,
		Region:        l.Region,
		Source:        l.Source,
		AnalysisPoint: l.AnalysisPoint,
		HasBoundary:   l.Boundary != nil,
	}
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
