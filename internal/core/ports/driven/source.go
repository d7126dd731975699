package driven

import (
	"context"

	"github.com/greenpaws/vetsite/internal/core/domain"
)

// RecordSource fetches the three raw record collections from one data
// source. Each source type (remote table, CSV files, local catalog)
// implements this interface.
//
// A fetch is all-or-nothing: a source either returns a complete record
// set or an error. Partial results are never returned, so a fallback
// chain can safely try the next source on any failure.
type RecordSource interface {
	// Name returns the source name for logs and diagnostics.
	Name() string

	// Fetch loads every record collection from the source.
	Fetch(ctx context.Context) (*domain.RecordSet, error)
}
