package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/greenpaws/vetsite/internal/core/domain"
	"github.com/greenpaws/vetsite/internal/core/ports/driven"
	"github.com/greenpaws/vetsite/internal/core/ports/driving"
	"github.com/greenpaws/vetsite/internal/logger"
	"github.com/greenpaws/vetsite/internal/normalize"
	"github.com/greenpaws/vetsite/internal/validate"
)

// Ensure ImportService implements the interface.
var _ driving.Importer = (*ImportService)(nil)

// ImportService moves records between CSV files and the local catalog.
// Practice imports run the full normalize and validate pipeline and
// reject rows with errors; category and region imports replace the
// reference data wholesale.
type ImportService struct {
	files      driven.RecordFiles
	catalog    driven.CatalogStore
	normalizer *normalize.Normalizer
	validator  *validate.Validator
}

// NewImportService creates an import service.
func NewImportService(
	files driven.RecordFiles,
	catalog driven.CatalogStore,
	normalizer *normalize.Normalizer,
	validator *validate.Validator,
) *ImportService {
	return &ImportService{
		files:      files,
		catalog:    catalog,
		normalizer: normalizer,
		validator:  validator,
	}
}

// ImportPractices validates a practices CSV and upserts the accepted
// rows into the catalog under a fresh batch ID. Rows with errors are
// rejected; rows with only warnings are accepted.
func (s *ImportService) ImportPractices(ctx context.Context, path string) (*domain.ImportReport, error) {
	// 1. Read and canonicalize the file.
	records, err := s.files.ReadPractices(path)
	if err != nil {
		return nil, fmt.Errorf("read practices: %w", err)
	}
	records = s.normalizer.Batch(records)

	// 2. Validate. Data rows are numbered from 2, after the header.
	report := s.validator.Batch(records, 2)

	// 3. Keep only rows without errors.
	errorRows := report.ErrorRows()
	accepted := make([]domain.Record, 0, len(records))
	for i, r := range records {
		if !errorRows[i+2] {
			accepted = append(accepted, r)
		}
	}

	// 4. Upsert the survivors.
	batchID := uuid.NewString()
	written, err := s.catalog.UpsertPractices(ctx, batchID, accepted)
	if err != nil {
		return nil, fmt.Errorf("upsert practices: %w", err)
	}

	logger.Info("Imported %d of %d practice records (batch %s)", written, len(records), batchID)
	return &domain.ImportReport{
		BatchID:    batchID,
		Accepted:   written,
		Rejected:   len(records) - len(accepted),
		Validation: *report,
	}, nil
}

// ImportCategories replaces the category reference data from a CSV.
func (s *ImportService) ImportCategories(ctx context.Context, path string) (*domain.ImportReport, error) {
	records, err := s.files.ReadCategories(path)
	if err != nil {
		return nil, fmt.Errorf("read categories: %w", err)
	}
	written, err := s.catalog.ReplaceCategories(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("replace categories: %w", err)
	}
	logger.Info("Replaced category reference data: %d records", written)
	return &domain.ImportReport{Accepted: written}, nil
}

// ImportRegions replaces the region reference data from a CSV.
func (s *ImportService) ImportRegions(ctx context.Context, path string) (*domain.ImportReport, error) {
	records, err := s.files.ReadRegions(path)
	if err != nil {
		return nil, fmt.Errorf("read regions: %w", err)
	}
	written, err := s.catalog.ReplaceRegions(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("replace regions: %w", err)
	}
	logger.Info("Replaced region reference data: %d records", written)
	return &domain.ImportReport{Accepted: written}, nil
}

// Export writes the catalog back out as CSV files in dir, using the
// same file names the build path reads.
func (s *ImportService) Export(ctx context.Context, dir string) error {
	set, err := s.catalog.Records(ctx)
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}
	if err := s.files.WritePractices(filepath.Join(dir, driven.PracticesFile), set.Practices); err != nil {
		return fmt.Errorf("write practices: %w", err)
	}
	if err := s.files.WriteCategories(filepath.Join(dir, driven.CategoriesFile), set.Categories); err != nil {
		return fmt.Errorf("write categories: %w", err)
	}
	if err := s.files.WriteRegions(filepath.Join(dir, driven.RegionsFile), set.Regions); err != nil {
		return fmt.Errorf("write regions: %w", err)
	}
	logger.Info("Exported catalog to %s: %d practices, %d categories, %d regions",
		dir, len(set.Practices), len(set.Categories), len(set.Regions))
	return nil
}
