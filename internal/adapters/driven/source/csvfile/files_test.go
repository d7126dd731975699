package csvfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenpaws/vetsite/internal/core/domain"
)

// --- Test helpers ---

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const practicesCSV = `Practice Name,Veterinarian Name(s),Specialties,City,State,ZIP Code,Source
Healing Paws,"Dr. Sarah Chen, DVM",Acupuncture|Herbal Medicine,Portland,OR,97201,manual
,Dr. Nobody,,Salem,OR,97301,manual
Coastal Vet,Dr. Ray Patel,Acupuncture,Albany,NY,12203,import
`

// --- Tests ---

func TestFiles_ReadPractices(t *testing.T) {
	path := writeFile(t, t.TempDir(), "veterinarians.csv", practicesCSV)

	records, err := NewFiles().ReadPractices(path)
	require.NoError(t, err)
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, "Healing Paws", first.Text(domain.FieldName))
	assert.Equal(t, "Dr. Sarah Chen, DVM", first.Text(domain.FieldPractitioners))
	assert.Equal(t, "97201", first.Text(domain.FieldPostalCode))
	assert.Equal(t, "manual", first.Text("Source"))

	// Nameless rows stay so findings line up with file rows.
	assert.False(t, records[1].Has(domain.FieldName))
	assert.Equal(t, "Dr. Nobody", records[1].Text(domain.FieldPractitioners))

	assert.Equal(t, "NY", records[2].Text(domain.FieldRegion))
}

func TestFiles_ReadPractices_MissingFile(t *testing.T) {
	_, err := NewFiles().ReadPractices(filepath.Join(t.TempDir(), "veterinarians.csv"))
	assert.Error(t, err)
}

func TestFiles_ReadPractices_EmptyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "veterinarians.csv", "")

	records, err := NewFiles().ReadPractices(path)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFiles_ReadPractices_ByteOrderMark(t *testing.T) {
	path := writeFile(t, t.TempDir(), "veterinarians.csv",
		"\uFEFFPractice Name,City\nHealing Paws,Portland\n")

	records, err := NewFiles().ReadPractices(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Healing Paws", records[0].Text(domain.FieldName))
}

func TestFiles_ReadPractices_RaggedRow(t *testing.T) {
	path := writeFile(t, t.TempDir(), "veterinarians.csv",
		"Practice Name,City,State\nHealing Paws,Portland\n")

	records, err := NewFiles().ReadPractices(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Portland", records[0].Text(domain.FieldCity))
	assert.False(t, records[0].Has(domain.FieldRegion))
}

func TestFiles_ReadRegions(t *testing.T) {
	path := writeFile(t, t.TempDir(), "states.csv",
		"State Name,State Code,Region,Featured,Slug\nOregon,OR,West,true,\n")

	records, err := NewFiles().ReadRegions(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Oregon", records[0].Text(domain.FieldRegionName))
	assert.Equal(t, "OR", records[0].Text(domain.FieldRegionCode))
	assert.Equal(t, "true", records[0].Text(domain.FieldRegionFeatured))
}

func TestFiles_WritePractices_RoundTrip(t *testing.T) {
	files := NewFiles()
	path := filepath.Join(t.TempDir(), "out", "veterinarians.csv")

	err := files.WritePractices(path, []domain.Record{
		{
			domain.FieldName:          domain.String("Healing Paws"),
			domain.FieldPractitioners: domain.String("Dr. Sarah Chen, DVM"),
			domain.FieldSpecialties:   domain.String("Acupuncture|Herbal Medicine"),
			domain.FieldCity:          domain.String("Portland"),
			domain.FieldRegion:        domain.String("OR"),
		},
	})
	require.NoError(t, err)

	records, err := files.ReadPractices(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Healing Paws", records[0].Text(domain.FieldName))
	assert.Equal(t, "Dr. Sarah Chen, DVM", records[0].Text(domain.FieldPractitioners))
	assert.Equal(t, []string{"Acupuncture", "Herbal Medicine"},
		records[0].Get(domain.FieldSpecialties).Items())
}

func TestFiles_WriteCategories_CanonicalHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "specialties.csv")

	err := NewFiles().WriteCategories(path, []domain.Record{
		{domain.FieldCategoryName: domain.String("Acupuncture")},
	})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Specialty Name,Description,Related Conditions,Slug\nAcupuncture,,,\n",
		string(content))
}
