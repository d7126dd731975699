package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenpaws/vetsite/internal/core/domain"
	"github.com/greenpaws/vetsite/internal/normalize"
	"github.com/greenpaws/vetsite/internal/validate"
)

func newTestAuditor(files *mockRecordFiles) *AuditService {
	rules := normalize.DefaultRules()
	return NewAuditService(files, normalize.New(rules), validate.New(rules))
}

func TestAuditService_Audit(t *testing.T) {
	files := &mockRecordFiles{
		practices: []domain.Record{
			{
				domain.FieldName:   domain.String("Healing Paws"),
				domain.FieldCity:   domain.String("Portland"),
				domain.FieldRegion: domain.String("Oregon"),
				// Normalization formats this before validation runs,
				// so no phone warning appears.
				domain.FieldPhone: domain.String("5035551234"),
			},
			{
				domain.FieldCity:       domain.String("Salem"),
				domain.FieldRegion:     domain.String("OR"),
				domain.FieldPostalCode: domain.String("1234"),
			},
		},
	}
	svc := newTestAuditor(files)

	report, err := svc.Audit(context.Background(), "veterinarians.csv")

	require.NoError(t, err)
	assert.Equal(t, 2, report.Rows)
	require.Len(t, report.Errors(), 1)
	assert.Equal(t, 3, report.Errors()[0].Row)
	assert.Equal(t, "Practice Name is required", report.Errors()[0].Message)
	require.Len(t, report.Warnings(), 1)
	assert.Equal(t, "Invalid ZIP code format", report.Warnings()[0].Message)
}

func TestAuditService_Audit_ReadError(t *testing.T) {
	files := &mockRecordFiles{readErr: errors.New("open veterinarians.csv: no such file")}
	svc := newTestAuditor(files)

	_, err := svc.Audit(context.Background(), "veterinarians.csv")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read practices")
}

func TestAuditService_Normalize(t *testing.T) {
	files := &mockRecordFiles{
		practices: []domain.Record{
			{
				domain.FieldName:   domain.String("Healing Paws"),
				domain.FieldRegion: domain.String("Oregon"),
				domain.FieldPhone:  domain.String("5035551234"),
			},
		},
	}
	svc := newTestAuditor(files)

	count, err := svc.Normalize(context.Background(), "in.csv", "out.csv")

	require.NoError(t, err)
	assert.Equal(t, 1, count)

	written := files.written["out.csv"]
	require.Len(t, written, 1)
	assert.Equal(t, "OR", written[0].Text(domain.FieldRegion))
	assert.Equal(t, "(503) 555-1234", written[0].Text(domain.FieldPhone))
}

func TestAuditService_Normalize_WriteError(t *testing.T) {
	files := &mockRecordFiles{
		practices: []domain.Record{{domain.FieldName: domain.String("Healing Paws")}},
		writeErr:  errors.New("permission denied"),
	}
	svc := newTestAuditor(files)

	_, err := svc.Normalize(context.Background(), "in.csv", "out.csv")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "write practices")
}
