// Package geo computes great-circle distances between profile positions.
package geo

import (
	"math"

	"github.com/dtroode/sympathy-server/internal/model"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// DistanceKm returns the haversine distance between a and b in kilometres.
func DistanceKm(a, b model.Position) float64 {
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := lat2 - lat1
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Within reports whether b lies at most maxKm away from a. The boundary is inclusive.
func Within(a, b model.Position, maxKm float64) bool {
	return DistanceKm(a, b) <= maxKm
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
