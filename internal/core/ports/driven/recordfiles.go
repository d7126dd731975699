package driven

import (
	"github.com/greenpaws/vetsite/internal/core/domain"
)

// Canonical file names for the CSV record layout. The build source and
// catalog exports both use them.
const (
	PracticesFile  = "veterinarians.csv"
	CategoriesFile = "specialties.csv"
	RegionsFile    = "states.csv"
)

// RecordFiles reads and writes record CSV files. Readers map source
// headers (including legacy spellings) onto canonical field names and
// keep every data row, so validation findings line up with the file;
// writers emit the canonical column layout. The build path's
// RecordSource is the one that drops nameless rows.
type RecordFiles interface {
	// ReadPractices loads practice records from a CSV file.
	ReadPractices(path string) ([]domain.Record, error)

	// ReadCategories loads category records from a CSV file.
	ReadCategories(path string) ([]domain.Record, error)

	// ReadRegions loads region records from a CSV file.
	ReadRegions(path string) ([]domain.Record, error)

	// WritePractices writes practice records as CSV.
	WritePractices(path string, records []domain.Record) error

	// WriteCategories writes category records as CSV.
	WriteCategories(path string, records []domain.Record) error

	// WriteRegions writes region records as CSV.
	WriteRegions(path string, records []domain.Record) error
}
