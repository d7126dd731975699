package domain

import (
	"fmt"
	"strings"
)

// Region represents one state-level entity. Its primary identity is the
// two-letter code; the slug is the secondary identity used in URLs. The
// practice count for a region is derived by the catalog, never stored.
type Region struct {
	// Code is the two-letter identifier (e.g. "CA").
	Code string

	// Slug is the URL identifier (e.g. "california").
	Slug string

	// Name is the human-readable name.
	Name string

	// Division is an optional grouping tag (e.g. "West").
	Division string

	// Featured marks a manually curated region.
	Featured bool
}

// RegionFromRecord builds a Region from a canonical record, deriving the
// slug from the name when absent.
func RegionFromRecord(r Record) Region {
	reg := Region{
		Name:     r.Text(FieldRegionName),
		Code:     r.Text(FieldRegionCode),
		Division: r.Text(FieldRegionDivision),
		Featured: parseRegionFlag(r.Text(FieldRegionFeatured)),
		Slug:     r.Text(FieldRegionSlug),
	}
	if reg.Slug == "" {
		reg.Slug = Slugify(reg.Name)
	}
	return reg
}

// Path is the canonical route for the region page.
func (r Region) Path() string {
	return fmt.Sprintf("/vets/%s/", r.Slug)
}

// Region featured flags accept true/yes/1 only, not the checkbox "x"
// used on practice records.
func parseRegionFlag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "1":
		return true
	}
	return false
}
