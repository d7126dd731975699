package services

import (
	"context"
	"fmt"

	"github.com/greenpaws/vetsite/internal/core/domain"
	"github.com/greenpaws/vetsite/internal/core/ports/driven"
	"github.com/greenpaws/vetsite/internal/core/ports/driving"
	"github.com/greenpaws/vetsite/internal/logger"
	"github.com/greenpaws/vetsite/internal/normalize"
	"github.com/greenpaws/vetsite/internal/validate"
)

// Ensure AuditService implements the interface.
var _ driving.Auditor = (*AuditService)(nil)

// AuditService checks and repairs record files without touching the
// catalog. Findings are reported against the canonical form of each
// row, so a value the normalizer already fixes never surfaces.
type AuditService struct {
	files      driven.RecordFiles
	normalizer *normalize.Normalizer
	validator  *validate.Validator
}

// NewAuditService creates an audit service.
func NewAuditService(files driven.RecordFiles, normalizer *normalize.Normalizer, validator *validate.Validator) *AuditService {
	return &AuditService{
		files:      files,
		normalizer: normalizer,
		validator:  validator,
	}
}

// Audit normalizes a practices CSV in memory and reports findings.
// Data rows are numbered from 2, after the header.
func (s *AuditService) Audit(ctx context.Context, path string) (*domain.ValidationReport, error) {
	records, err := s.files.ReadPractices(path)
	if err != nil {
		return nil, fmt.Errorf("read practices: %w", err)
	}
	records = s.normalizer.Batch(records)
	report := s.validator.Batch(records, 2)
	logger.Info("Audited %d rows: %d errors, %d warnings",
		report.Rows, len(report.Errors()), len(report.Warnings()))
	return report, nil
}

// Normalize canonicalizes a practices CSV and writes the result.
func (s *AuditService) Normalize(ctx context.Context, inPath, outPath string) (int, error) {
	records, err := s.files.ReadPractices(inPath)
	if err != nil {
		return 0, fmt.Errorf("read practices: %w", err)
	}
	records = s.normalizer.Batch(records)
	if err := s.files.WritePractices(outPath, records); err != nil {
		return 0, fmt.Errorf("write practices: %w", err)
	}
	logger.Info("Normalized %d records into %s", len(records), outPath)
	return len(records), nil
}
