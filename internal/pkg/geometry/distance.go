package geometry

import (
	"github.com/landscape-review/internal/pkg/utils"
	"github.com/paulmach/orb"
)

// GreatCircleDistanceKm - расстояние по haversine (R = 6371 км) между точками [lon, lat]
func GreatCircleDistanceKm(a, b orb.Point) float64 {
	return utils.HaversineDistance(a.Lat(), a.Lon(), b.Lat(), b.Lon())
}
