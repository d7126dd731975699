package driving

import (
	"context"

	"github.com/greenpaws/vetsite/internal/core/domain"
)

// Importer moves records between CSV files and the local catalog.
type Importer interface {
	// ImportPractices validates a practices CSV and upserts the
	// accepted rows into the catalog. Rows with errors are rejected;
	// rows with only warnings are accepted.
	ImportPractices(ctx context.Context, path string) (*domain.ImportReport, error)

	// ImportCategories replaces the category reference data from a CSV.
	ImportCategories(ctx context.Context, path string) (*domain.ImportReport, error)

	// ImportRegions replaces the region reference data from a CSV.
	ImportRegions(ctx context.Context, path string) (*domain.ImportReport, error)

	// Export writes the catalog back out as CSV files in dir.
	Export(ctx context.Context, dir string) error
}
