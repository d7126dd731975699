package driven

import (
	"context"
)

// SiteWriter materializes the generated site. Writes accumulate in a
// staging area; Promote atomically replaces the previous output tree,
// so a failed run never leaves a partial site behind. Callers that do
// not promote must Discard.
type SiteWriter interface {
	// Stage prepares an empty staging area.
	Stage() error

	// WritePage writes a rendered document for a route path. Directory
	// style paths ("/vets/or/") become path/index.html; file paths
	// ("404.html") are written as-is.
	WritePage(path string, data []byte) error

	// WriteFile writes an auxiliary artifact at an exact path.
	WriteFile(path string, data []byte) error

	// CopyAssets copies a static asset directory into the staging area.
	// A missing source directory is not an error.
	CopyAssets(ctx context.Context, dir string) error

	// Promote replaces the output tree with the staged one.
	Promote() error

	// Discard removes the staging area.
	Discard() error
}
