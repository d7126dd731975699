package driving

import (
	"context"

	"github.com/greenpaws/vetsite/internal/core/domain"
)

// Auditor checks and repairs record files without touching the catalog.
type Auditor interface {
	// Audit normalizes a practices CSV in memory and reports findings
	// against the canonical rows.
	Audit(ctx context.Context, path string) (*domain.ValidationReport, error)

	// Normalize canonicalizes a practices CSV and writes the result.
	// Returns the number of records written.
	Normalize(ctx context.Context, inPath, outPath string) (int, error)
}
