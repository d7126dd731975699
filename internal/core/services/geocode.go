package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/greenpaws/vetsite/internal/core/domain"
	"github.com/greenpaws/vetsite/internal/core/ports/driven"
	"github.com/greenpaws/vetsite/internal/core/ports/driving"
	"github.com/greenpaws/vetsite/internal/logger"
)

// Ensure GeocodeService implements the interface.
var _ driving.GeocodeRunner = (*GeocodeService)(nil)

// GeocodeService fills missing coordinates on catalog practices by
// resolving their addresses through the geocoder.
type GeocodeService struct {
	catalog  driven.CatalogStore
	geocoder driven.Geocoder
}

// NewGeocodeService creates a geocode service.
func NewGeocodeService(catalog driven.CatalogStore, geocoder driven.Geocoder) *GeocodeService {
	return &GeocodeService{catalog: catalog, geocoder: geocoder}
}

// Fill geocodes practices without coordinates, writing results back to
// the catalog. A limit of 0 means no cap. Addresses the geocoder cannot
// resolve count as misses; any other geocoder failure stops the run so
// quota or network problems surface immediately.
func (s *GeocodeService) Fill(ctx context.Context, limit int) (*domain.GeocodeReport, error) {
	records, err := s.catalog.PracticesWithoutCoordinates(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan catalog: %w", err)
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	report := &domain.GeocodeReport{Scanned: len(records)}
	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		p := domain.PracticeFromRecord(r)
		query := geocodeQuery(p)
		if query == "" {
			report.Misses++
			continue
		}

		coord, err := s.geocoder.Geocode(ctx, query)
		if errors.Is(err, domain.ErrNoMatch) {
			report.Misses++
			logger.Debug("No geocoding match for %s (%s)", p.Slug, query)
			continue
		}
		if err != nil {
			return report, fmt.Errorf("geocode %s: %w", p.Slug, err)
		}

		if err := s.catalog.SetCoordinates(ctx, p.Slug, coord); err != nil {
			return report, fmt.Errorf("save coordinates for %s: %w", p.Slug, err)
		}
		report.Updated++
	}

	logger.Info("Geocoded %d of %d practices (%d misses)", report.Updated, report.Scanned, report.Misses)
	return report, nil
}

// geocodeQuery builds the lookup string the geocoder understands best:
// street, city, then region and postal code as one segment.
func geocodeQuery(p domain.Practice) string {
	var parts []string
	if p.Address != "" {
		parts = append(parts, p.Address)
	}
	if p.City != "" {
		parts = append(parts, p.City)
	}
	switch {
	case p.Region != "" && p.PostalCode != "":
		parts = append(parts, p.Region+" "+p.PostalCode)
	case p.Region != "":
		parts = append(parts, p.Region)
	case p.PostalCode != "":
		parts = append(parts, p.PostalCode)
	}
	return strings.Join(parts, ", ")
}
