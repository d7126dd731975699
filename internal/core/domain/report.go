package domain

import (
	"fmt"
	"time"
)

// SourceAttempt records the outcome of trying one data source in the
// fallback chain. Every attempt is kept for diagnostics, whether or not
// it succeeded.
type SourceAttempt struct {
	// Source is the source name.
	Source string

	// Duration is how long the fetch took.
	Duration time.Duration

	// Practices/Categories/Regions are the record counts on success.
	Practices  int
	Categories int
	Regions    int

	// Err holds the failure, nil on success.
	Err error
}

// Succeeded reports whether the attempt returned records.
func (a SourceAttempt) Succeeded() bool {
	return a.Err == nil
}

// String renders the attempt in log form.
func (a SourceAttempt) String() string {
	if a.Err != nil {
		return fmt.Sprintf("%s: failed after %s: %v", a.Source, a.Duration.Round(time.Millisecond), a.Err)
	}
	return fmt.Sprintf("%s: ok in %s (%d practices, %d categories, %d regions)",
		a.Source, a.Duration.Round(time.Millisecond), a.Practices, a.Categories, a.Regions)
}

// BuildReport summarizes one site generation run.
type BuildReport struct {
	// Source is the name of the source that finally served the run.
	Source string

	// Attempts lists every source attempt in order.
	Attempts []SourceAttempt

	// Practices/Categories/Regions are the loaded entity counts.
	Practices  int
	Categories int
	Regions    int

	// Pages is the number of rendered pages.
	Pages int

	// Artifacts is the number of non-page outputs (index, sitemap, robots).
	Artifacts int

	// OutputDir is the final output location.
	OutputDir string

	// Duration is the wall time of the run.
	Duration time.Duration
}

// ImportReport summarizes one import run.
type ImportReport struct {
	// BatchID identifies the import batch.
	BatchID string

	// Accepted is the number of records persisted.
	Accepted int

	// Rejected is the number of records excluded by hard errors.
	Rejected int

	// Validation holds the findings for the whole batch.
	Validation ValidationReport
}

// GeocodeReport summarizes one coordinate fill run over the catalog.
type GeocodeReport struct {
	// Scanned is the number of practices missing coordinates.
	Scanned int

	// Updated is the number of practices that received coordinates.
	Updated int

	// Misses is the number of addresses the geocoder could not resolve.
	Misses int
}

// SourceStatus describes one configured data source for diagnostics.
type SourceStatus struct {
	// Name is the source name.
	Name string

	// Position is the 1-based position in the fallback chain.
	Position int

	// Available reports whether a probe fetch succeeded.
	Available bool

	// Detail carries the probe failure, or a record count summary.
	Detail string
}
