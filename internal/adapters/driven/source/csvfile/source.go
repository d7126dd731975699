package csvfile

import (
	"context"
	"path/filepath"

	"github.com/greenpaws/vetsite/internal/core/domain"
	"github.com/greenpaws/vetsite/internal/core/ports/driven"
)

// Source loads the build record set from the CSV exports in a data
// directory. It is the "csv" position in the build fallback chain.
type Source struct {
	dataDir string
	files   Files
}

var _ driven.RecordSource = (*Source)(nil)

// NewSource creates a CSV build source reading from dataDir.
func NewSource(dataDir string) *Source {
	return &Source{dataDir: dataDir}
}

// Name returns the source name for logs and diagnostics.
func (s *Source) Name() string {
	return "csv"
}

// Fetch loads the three record files. The fetch is all-or-nothing: a
// missing or unreadable file fails the whole source so a fallback chain
// can try the next one. Rows without a name never reach the build.
func (s *Source) Fetch(ctx context.Context) (*domain.RecordSet, error) {
	practices, err := s.files.ReadPractices(filepath.Join(s.dataDir, driven.PracticesFile))
	if err != nil {
		return nil, err
	}

	categories, err := s.files.ReadCategories(filepath.Join(s.dataDir, driven.CategoriesFile))
	if err != nil {
		return nil, err
	}

	regions, err := s.files.ReadRegions(filepath.Join(s.dataDir, driven.RegionsFile))
	if err != nil {
		return nil, err
	}

	return &domain.RecordSet{
		Practices:  named(practices, domain.FieldName),
		Categories: named(categories, domain.FieldCategoryName),
		Regions:    named(regions, domain.FieldRegionName),
	}, nil
}

// named filters out records missing the identifying field.
func named(records []domain.Record, field string) []domain.Record {
	var kept []domain.Record
	for _, record := range records {
		if record.Has(field) {
			kept = append(kept, record)
		}
	}
	return kept
}
