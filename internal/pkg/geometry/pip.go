package geometry

import (
	"github.com/landscape-review/internal/pkg/utils"
	"github.com/paulmach/orb"
)

// PointInRing - ray casting по кольцу в конвенции [lon, lat].
// Кольцо замыкается неявно. Ребра с неконечными вершинами пропускаются.
// Точка на границе может быть отнесена к любой стороне.
func PointInRing(p orb.Point, ring orb.Ring) bool {
	if !finitePoint(p) || len(ring) == 0 {
		return false
	}

	x, y := p[0], p[1]
	inside := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if !finitePoint(a) || !finitePoint(b) {
			continue
		}
		if (a[1] > y) != (b[1] > y) && x < (b[0]-a[0])*(y-a[1])/(b[1]-a[1])+a[0] {
			inside = !inside
		}
	}
	return inside
}

// AnyVertexInRing проверяет, лежит ли хотя бы одна вершина vertices внутри ring
func AnyVertexInRing(vertices, ring orb.Ring) bool {
	for _, v := range vertices {
		if PointInRing(v, ring) {
			return true
		}
	}
	return false
}

// ContainsPoint - true если точка внутри хотя бы одного внешнего кольца геометрии
func ContainsPoint(geom orb.Geometry, p orb.Point) bool {
	for _, ring := range OuterRings(geom) {
		if PointInRing(p, ring) {
			return true
		}
	}
	return false
}

func finitePoint(p orb.Point) bool {
	return utils.IsFinite(p[0]) && utils.IsFinite(p[1])
}
