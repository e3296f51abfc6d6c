package domain

import (
	"github.com/landscape-review/internal/pkg/utils"
	"github.com/paulmach/orb"
)

// Coordinate - точка в WGS84 (градусы)
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid - конечные значения в допустимом диапазоне широты/долготы
func (c Coordinate) Valid() bool {
	return utils.ValidateCoordinates(c.Lat, c.Lon)
}

// Point возвращает точку во внутренней конвенции [lon, lat]
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Lon, c.Lat}
}

// CoordinateFromPoint - обратное преобразование из [lon, lat]
func CoordinateFromPoint(p orb.Point) Coordinate {
	return Coordinate{Lat: p.Lat(), Lon: p.Lon()}
}

// BoundingBox - прямоугольник в градусах
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// BoundingBoxAround строит квадрат с полушириной halfWidth градусов вокруг точки
func BoundingBoxAround(c Coordinate, halfWidth float64) BoundingBox {
	return BoundingBox{
		MinLat: c.Lat - halfWidth,
		MinLon: c.Lon - halfWidth,
		MaxLat: c.Lat + halfWidth,
		MaxLon: c.Lon + halfWidth,
	}
}

// Bound - то же в виде orb.Bound
func (b BoundingBox) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.MinLon, b.MinLat},
		Max: orb.Point{b.MaxLon, b.MaxLat},
	}
}
