// Package geo provides the great-circle distance math behind nearby
// practice lookups.
package geo

import (
	"github.com/golang/geo/s2"

	"github.com/greenpaws/vetsite/internal/core/domain"
)

// earthRadiusMiles is the sphere radius used for all proximity math.
const earthRadiusMiles = 3959.0

// Miles returns the great-circle distance between two coordinates in miles.
func Miles(a, b domain.Coordinate) float64 {
	from := s2.LatLngFromDegrees(a.Lat, a.Lng)
	to := s2.LatLngFromDegrees(b.Lat, b.Lng)
	return from.Distance(to).Radians() * earthRadiusMiles
}
