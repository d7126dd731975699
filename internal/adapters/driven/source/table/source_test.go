package table

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenpaws/vetsite/internal/core/domain"
)

func TestSource_Name(t *testing.T) {
	assert.Equal(t, "table", NewSource(Config{}).Name())
}

func TestSource_Fetch_NotConfigured(t *testing.T) {
	source := NewSource(Config{BaseID: "appExample"})

	_, err := source.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestDecodePage(t *testing.T) {
	body := []byte(`{
		"records": [
			{"id": "rec1", "fields": {"Practice Name": "Healing Paws"}},
			{"id": "rec2", "fields": {"Practice Name": "Coastal Vet"}}
		],
		"offset": "itrNext/rec2"
	}`)

	page, err := decodePage(body)
	require.NoError(t, err)
	require.Len(t, page.Records, 2)
	assert.Equal(t, "rec1", page.Records[0].ID)
	assert.Equal(t, "itrNext/rec2", page.Offset)
}

func TestDecodePage_LastPage(t *testing.T) {
	page, err := decodePage([]byte(`{"records": []}`))
	require.NoError(t, err)
	assert.Empty(t, page.Records)
	assert.Empty(t, page.Offset)
}

func TestDecodePage_Invalid(t *testing.T) {
	_, err := decodePage([]byte(`not json`))
	assert.Error(t, err)
}

func TestToRecord(t *testing.T) {
	record := toRecord(map[string]any{
		"Practice Name":        "Healing Paws",
		"Veterinarian Name(s)": "Dr. Sarah Chen, DVM",
		"ZIP Code":             "97201",
		"Specialties":          []any{"Acupuncture", "Herbal Medicine"},
		"Telehealth Available": true,
		"Featured Listing":     false,
		"Year Established":     float64(2015),
		"Latitude":             45.5152,
	})

	assert.Equal(t, "Healing Paws", record.Text(domain.FieldName))
	assert.Equal(t, "Dr. Sarah Chen, DVM", record.Text(domain.FieldPractitioners))
	assert.Equal(t, "97201", record.Text(domain.FieldPostalCode))
	assert.Equal(t, []string{"Acupuncture", "Herbal Medicine"},
		record.Get(domain.FieldSpecialties).Items())
	assert.Equal(t, "true", record.Text(domain.FieldTelehealth))
	assert.Equal(t, "false", record.Text(domain.FieldFeatured))
	assert.Equal(t, "2015", record.Text(domain.FieldYear))
	assert.Equal(t, "45.5152", record.Text(domain.FieldLatitude))
}

func TestKeepNamed(t *testing.T) {
	records := keepNamed([]domain.Record{
		{domain.FieldName: domain.String("Healing Paws")},
		{domain.FieldCity: domain.String("Salem")},
	}, domain.FieldName)

	require.Len(t, records, 1)
	assert.Equal(t, "Healing Paws", records[0].Text(domain.FieldName))
}

func TestKeepCoded(t *testing.T) {
	records := keepCoded([]domain.Record{
		{
			domain.FieldRegionName: domain.String("Oregon"),
			domain.FieldRegionCode: domain.String("OR"),
		},
		{domain.FieldRegionName: domain.String("Nowhere")},
		{domain.FieldRegionCode: domain.String("XX")},
	})

	require.Len(t, records, 1)
	assert.Equal(t, "OR", records[0].Text(domain.FieldRegionCode))
}
