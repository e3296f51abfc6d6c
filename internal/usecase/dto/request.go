package dto

import "encoding/json"

// SearchAddressRequest - поиск адреса или места по ключевому слову
type SearchAddressRequest struct {
	Keyword string `json:"keyword" validate:"required,min=1,max=200"`
}

// ParcelRequest - участок по координате клика
type ParcelRequest struct {
	Lat float64 `query:"lat" validate:"finite,min=-90,max=90"`
	Lng float64 `query:"lng" validate:"finite,min=-180,max=180"`
}

// LoadLayerRequest - загрузка одного слоя
type LoadLayerRequest struct {
	Region   string `query:"region" validate:"required"`
	Category string `query:"category" validate:"required"`
	File     string `query:"file" validate:"required"`
}

// LayerSelection - выбранный пользователем слой внутри категории
type LayerSelection struct {
	Name string `json:"name"`
	File string `json:"file" validate:"required"`
}

// AnalyzeRequest - анализ пересечений и близости.
// Layers: region -> category -> выбранные слои.
type AnalyzeRequest struct {
	Lat            float64                                `json:"lat" validate:"finite,min=-90,max=90"`
	Lng            float64                                `json:"lng" validate:"finite,min=-180,max=180"`
	Radius         *float64                               `json:"radius,omitempty" validate:"omitempty,finite"`
	Layers         map[string]map[string][]LayerSelection `json:"layers"`
	ParcelGeometry json.RawMessage                        `json:"parcel_geometry,omitempty" swaggertype:"object"`
}
