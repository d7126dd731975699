package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/greenpaws/vetsite/internal/core/domain"
)

// TestMiles tests known distances on the reference sphere
func TestMiles(t *testing.T) {
	portland := domain.Coordinate{Lat: 45.5152, Lng: -122.6784}
	seattle := domain.Coordinate{Lat: 47.6062, Lng: -122.3321}

	assert.InDelta(t, 145.4, Miles(portland, seattle), 1.0)

	// One degree of longitude on the equator.
	assert.InDelta(t, 69.1, Miles(domain.Coordinate{}, domain.Coordinate{Lng: 1}), 0.1)
}

// TestMiles_Symmetric tests direction independence
func TestMiles_Symmetric(t *testing.T) {
	a := domain.Coordinate{Lat: 40.7128, Lng: -74.0060}
	b := domain.Coordinate{Lat: 34.0522, Lng: -118.2437}

	assert.InDelta(t, Miles(a, b), Miles(b, a), 1e-9)
}

// TestMiles_SamePoint tests the zero distance case
func TestMiles_SamePoint(t *testing.T) {
	p := domain.Coordinate{Lat: 45.5152, Lng: -122.6784}

	assert.InDelta(t, 0, Miles(p, p), 1e-9)
}
