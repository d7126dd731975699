package driven

import (
	"context"

	"github.com/greenpaws/vetsite/internal/core/domain"
)

// Geocoder resolves a free-text address to coordinates. Returns
// domain.ErrNoMatch when the service finds nothing for the query.
type Geocoder interface {
	// Geocode looks up one address.
	Geocode(ctx context.Context, query string) (domain.Coordinate, error)
}
