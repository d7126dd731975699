package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/greenpaws/vetsite/internal/core/domain"
	"github.com/greenpaws/vetsite/internal/core/ports/driven"
)

// Files reads and writes record CSV files.
type Files struct{}

var _ driven.RecordFiles = (*Files)(nil)

// NewFiles creates a CSV file reader/writer.
func NewFiles() *Files {
	return &Files{}
}

// ReadPractices loads practice records from a CSV file.
func (*Files) ReadPractices(path string) ([]domain.Record, error) {
	return readRecords(path)
}

// ReadCategories loads category records from a CSV file.
func (*Files) ReadCategories(path string) ([]domain.Record, error) {
	return readRecords(path)
}

// ReadRegions loads region records from a CSV file.
func (*Files) ReadRegions(path string) ([]domain.Record, error) {
	return readRecords(path)
}

// WritePractices writes practice records in the canonical column layout.
func (*Files) WritePractices(path string, records []domain.Record) error {
	return writeRecords(path, domain.PracticeFields, records)
}

// WriteCategories writes category records in the canonical column layout.
func (*Files) WriteCategories(path string, records []domain.Record) error {
	return writeRecords(path, domain.CategoryFields, records)
}

// WriteRegions writes region records in the canonical column layout.
func (*Files) WriteRegions(path string, records []domain.Record) error {
	return writeRecords(path, domain.RegionFields, records)
}

// readRecords loads every data row of a CSV file, mapping its header
// onto canonical field names. Ragged rows are tolerated; cells beyond
// the header are ignored.
func readRecords(path string) ([]domain.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}

	names := make([]string, len(header))
	for i, column := range header {
		names[i] = domain.CanonicalFieldName(strings.TrimPrefix(column, "\uFEFF"))
	}

	var records []domain.Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		record := make(domain.Record, len(names))
		for i, name := range names {
			if name == "" || i >= len(row) {
				continue
			}
			record[name] = domain.String(row[i])
		}
		records = append(records, record)
	}

	return records, nil
}

// writeRecords writes records as CSV with the given column layout,
// creating the parent directory when needed.
func writeRecords(path string, fields []string, records []domain.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(fields); err != nil {
		return fmt.Errorf("writing header of %s: %w", path, err)
	}

	row := make([]string, len(fields))
	for _, record := range records {
		for i, field := range fields {
			row[i] = record.Text(field)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}
