package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

// NormalizePair приводит пару (a, b) к [lon, lat].
// Меняет местами только если пара однозначно (lat, lon): |a| <= 90, 90 < |b| <= 180.
// В неоднозначной полосе (|a|, |b| <= 90) пара считается уже [lon, lat].
func NormalizePair(a, b float64) orb.Point {
	aCouldBeLat := math.Abs(a) <= 90 && math.Abs(b) <= 180
	aCouldBeLng := math.Abs(a) <= 180 && math.Abs(b) <= 90
	if aCouldBeLat && !aCouldBeLng {
		return orb.Point{b, a}
	}
	return orb.Point{a, b}
}

// NormalizeRing возвращает новое кольцо с нормализованными вершинами
func NormalizeRing(ring orb.Ring) orb.Ring {
	if ring == nil {
		return nil
	}
	out := make(orb.Ring, len(ring))
	for i, p := range ring {
		out[i] = NormalizePair(p[0], p[1])
	}
	return out
}

// NormalizeGeometry рекурсивно нормализует Polygon/MultiPolygon.
// Остальные типы возвращаются как есть. Вход не изменяется.
func NormalizeGeometry(geom orb.Geometry) orb.Geometry {
	switch g := geom.(type) {
	case orb.Polygon:
		return normalizePolygon(g)
	case orb.MultiPolygon:
		out := make(orb.MultiPolygon, len(g))
		for i, poly := range g {
			out[i] = normalizePolygon(poly)
		}
		return out
	case orb.Point:
		return NormalizePair(g[0], g[1])
	default:
		return geom
	}
}

func normalizePolygon(poly orb.Polygon) orb.Polygon {
	out := make(orb.Polygon, len(poly))
	for i, ring := range poly {
		out[i] = NormalizeRing(ring)
	}
	return out
}
