package geometry

import (
	"github.com/landscape-review/internal/pkg/utils"
	"github.com/paulmach/orb"
)

// OuterRings возвращает внешние кольца Polygon/MultiPolygon; дыры не учитываются
func OuterRings(geom orb.Geometry) []orb.Ring {
	switch g := geom.(type) {
	case orb.Polygon:
		if len(g) == 0 {
			return nil
		}
		return []orb.Ring{g[0]}
	case orb.MultiPolygon:
		rings := make([]orb.Ring, 0, len(g))
		for _, poly := range g {
			if len(poly) > 0 {
				rings = append(rings, poly[0])
			}
		}
		return rings
	default:
		return nil
	}
}

// IsAreal - Polygon или MultiPolygon
func IsAreal(geom orb.Geometry) bool {
	switch geom.(type) {
	case orb.Polygon, orb.MultiPolygon:
		return true
	default:
		return false
	}
}

// ValidBoundsCenter - центр bbox по валидным вершинам внешних колец.
// Вершины вне диапазона WGS84 или с NaN/Inf отбрасываются; false если валидных нет.
func ValidBoundsCenter(geom orb.Geometry) (orb.Point, bool) {
	var bound orb.Bound
	found := false
	for _, ring := range OuterRings(geom) {
		for _, p := range ring {
			if !utils.ValidateCoordinates(p.Lat(), p.Lon()) {
				continue
			}
			if !found {
				bound = orb.Bound{Min: p, Max: p}
				found = true
				continue
			}
			bound = bound.Extend(p)
		}
	}
	if !found {
		return orb.Point{}, false
	}
	return bound.Center(), true
}
