package driven

import (
	"context"

	"github.com/greenpaws/vetsite/internal/core/domain"
)

// CatalogStore persists canonical records locally between imports and
// builds. Backed by SQLite.
//
// Practices are keyed by slug: re-importing a record with a known slug
// updates it in place and preserves catalog order. Categories and
// regions are reference data replaced wholesale on import.
type CatalogStore interface {
	// UpsertPractices inserts or updates practice records under an
	// import batch ID. Returns the number of records written.
	UpsertPractices(ctx context.Context, batchID string, records []domain.Record) (int, error)

	// ReplaceCategories swaps the category reference set.
	ReplaceCategories(ctx context.Context, records []domain.Record) (int, error)

	// ReplaceRegions swaps the region reference set.
	ReplaceRegions(ctx context.Context, records []domain.Record) (int, error)

	// Records returns the full catalog contents in insertion order.
	Records(ctx context.Context) (*domain.RecordSet, error)

	// PracticesWithoutCoordinates returns practice records missing a
	// usable coordinate pair, in insertion order.
	PracticesWithoutCoordinates(ctx context.Context) ([]domain.Record, error)

	// SetCoordinates writes geocoded coordinates onto a practice.
	SetCoordinates(ctx context.Context, slug string, coord domain.Coordinate) error

	// Close releases the underlying database.
	Close() error
}
