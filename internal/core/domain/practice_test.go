package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func practiceRecord() Record {
	return Record{
		FieldName:           String("Healing Paws Holistic Vet"),
		FieldPractitioners:  String("Dr. Sarah Chen|Dr. Maria Lopez"),
		FieldSpecialties:    String("Acupuncture|Herbal Medicine"),
		FieldAddress:        String("123 Wellness Way"),
		FieldCity:           String("Portland"),
		FieldRegion:         String("OR"),
		FieldPostalCode:     String("97201"),
		FieldPhone:          String("(503) 555-0142"),
		FieldEmail:          String("info@healingpaws.example"),
		FieldWebsite:        String("https://healingpaws.example"),
		FieldCertifications: String("AHVMA"),
		FieldSpecies:        String("Dogs|Cats"),
		FieldYear:           String("2009"),
		FieldTelehealth:     String("TRUE"),
		FieldFeatured:       String("x"),
		FieldLatitude:       String("45.52"),
		FieldLongitude:      String("-122.68"),
		FieldStatus:         String("Active"),
	}
}

// TestPracticeFromRecord tests full construction from a canonical record
func TestPracticeFromRecord(t *testing.T) {
	p := PracticeFromRecord(practiceRecord())

	assert.Equal(t, "Healing Paws Holistic Vet", p.Name)
	assert.Equal(t, "healing-paws-holistic-vet", p.Slug)
	assert.Equal(t, []string{"Dr. Sarah Chen", "Dr. Maria Lopez"}, p.Practitioners)
	assert.Equal(t, []string{"Acupuncture", "Herbal Medicine"}, p.Specialties)
	assert.Equal(t, []string{"Dogs", "Cats"}, p.Species)
	assert.Equal(t, "OR", p.Region)
	assert.True(t, p.Telehealth)
	assert.True(t, p.Featured)
	require.NotNil(t, p.YearEstablished)
	assert.Equal(t, 2009, *p.YearEstablished)
	require.True(t, p.HasCoordinates())
	assert.InDelta(t, 45.52, p.Coordinates.Lat, 1e-9)
	assert.InDelta(t, -122.68, p.Coordinates.Lng, 1e-9)
	assert.Equal(t, "/vet/healing-paws-holistic-vet/", p.Path())
}

// TestPracticeFromRecord_ProvidedSlugWins tests that a source slug is kept
func TestPracticeFromRecord_ProvidedSlugWins(t *testing.T) {
	r := practiceRecord()
	r[FieldSlug] = String("custom-slug")

	p := PracticeFromRecord(r)

	assert.Equal(t, "custom-slug", p.Slug)
}

// TestPracticeFromRecord_Optionals tests absent year and coordinates
func TestPracticeFromRecord_Optionals(t *testing.T) {
	p := PracticeFromRecord(Record{FieldName: String("Minimal Clinic")})

	assert.Nil(t, p.YearEstablished)
	assert.False(t, p.HasCoordinates())
	assert.False(t, p.Telehealth)
	assert.False(t, p.Featured)
}

// TestPracticeFromRecord_BadNumbers tests that malformed numerics stay unset
func TestPracticeFromRecord_BadNumbers(t *testing.T) {
	r := Record{
		FieldName:      String("Clinic"),
		FieldYear:      String("unknown"),
		FieldLatitude:  String("45.52"),
		FieldLongitude: String("west"),
	}

	p := PracticeFromRecord(r)

	assert.Nil(t, p.YearEstablished)
	assert.False(t, p.HasCoordinates())
}

// TestPractice_FullAddress tests postal component joining
func TestPractice_FullAddress(t *testing.T) {
	tests := []struct {
		name     string
		practice Practice
		want     string
	}{
		{
			name: "all components",
			practice: Practice{
				Address: "123 Wellness Way", City: "Portland",
				Region: "OR", PostalCode: "97201",
			},
			want: "123 Wellness Way, Portland, OR, 97201",
		},
		{
			name:     "no postal code",
			practice: Practice{Address: "123 Wellness Way", City: "Portland", Region: "OR"},
			want:     "123 Wellness Way, Portland, OR",
		},
		{
			name:     "city only",
			practice: Practice{City: "Portland"},
			want:     "Portland",
		},
		{
			name:     "empty",
			practice: Practice{},
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.practice.FullAddress())
		})
	}
}

// TestPractice_MapsURL tests the coordinate and address-search forms
func TestPractice_MapsURL(t *testing.T) {
	p := Practice{Address: "123 Wellness Way", City: "Portland"}
	assert.Equal(t, "https://www.google.com/maps/search/123+Wellness+Way,+Portland", p.MapsURL())

	p.Coordinates = &Coordinate{Lat: 45.5152, Lng: -122.6784}
	assert.Equal(t, "https://www.google.com/maps?q=45.5152,-122.6784", p.MapsURL())
}

// TestRegionFromRecord tests region construction and flag parsing
func TestRegionFromRecord(t *testing.T) {
	r := RegionFromRecord(Record{
		FieldRegionName:     String("California"),
		FieldRegionCode:     String("CA"),
		FieldRegionDivision: String("West"),
		FieldRegionFeatured: String("TRUE"),
	})

	assert.Equal(t, "CA", r.Code)
	assert.Equal(t, "california", r.Slug)
	assert.Equal(t, "West", r.Division)
	assert.True(t, r.Featured)
	assert.Equal(t, "/vets/california/", r.Path())

	notX := RegionFromRecord(Record{
		FieldRegionName:     String("Oregon"),
		FieldRegionCode:     String("OR"),
		FieldRegionFeatured: String("x"),
	})
	assert.False(t, notX.Featured)
}

// TestCategoryFromRecord tests category construction and slug derivation
func TestCategoryFromRecord(t *testing.T) {
	c := CategoryFromRecord(Record{
		FieldCategoryName:        String("Herbal Medicine"),
		FieldCategoryDescription: String("Plant-based treatment protocols."),
	})

	assert.Equal(t, "herbal-medicine", c.Slug)
	assert.Equal(t, "/specialty/herbal-medicine/", c.Path())
}
