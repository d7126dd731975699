package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64
	Lng float64
}

// Practice represents one veterinary practice listing. Its identity is the
// slug, derived from the name when the source does not provide one; slugs
// are unique within a corpus by convention, not enforced.
//
// Practices are immutable after construction. Derived numbers (per-region
// and per-category counts) live in the directory aggregation, never on
// the entity.
type Practice struct {
	// Slug is the URL identifier.
	Slug string

	// Name is the practice display name.
	Name string

	// Practitioners lists the veterinarian names.
	Practitioners []string

	// Specialties lists the treatment modality labels.
	Specialties []string

	// Address is the street address.
	Address string

	// City is the locality name.
	City string

	// Region is the two-letter state code.
	Region string

	// PostalCode is the ZIP code.
	PostalCode string

	// Phone is the contact number.
	Phone string

	// Email is the contact address.
	Email string

	// Website is the practice URL.
	Website string

	// Certifications lists the certification body labels.
	Certifications []string

	// Species lists the species-treated labels.
	Species []string

	// Description is free-form practice text.
	Description string

	// YearEstablished is the founding year, when known.
	YearEstablished *int

	// Telehealth marks remote-consult availability.
	Telehealth bool

	// Featured marks a manually curated listing.
	Featured bool

	// Coordinates is the geocoded position, when resolved.
	Coordinates *Coordinate

	// Status is the listing lifecycle state.
	Status string
}

// PracticeFromRecord builds a Practice from a canonical record. Multi-value
// fields are expected in pipe-joined form; the slug falls back to the
// slugified name when absent.
func PracticeFromRecord(r Record) Practice {
	p := Practice{
		Name:            r.Text(FieldName),
		Practitioners:   r.Get(FieldPractitioners).Items(),
		Specialties:     r.Get(FieldSpecialties).Items(),
		Address:         r.Text(FieldAddress),
		City:            r.Text(FieldCity),
		Region:          r.Text(FieldRegion),
		PostalCode:      r.Text(FieldPostalCode),
		Phone:           r.Text(FieldPhone),
		Email:           r.Text(FieldEmail),
		Website:         r.Text(FieldWebsite),
		Certifications:  r.Get(FieldCertifications).Items(),
		Species:         r.Get(FieldSpecies).Items(),
		Description:     r.Text(FieldDescription),
		YearEstablished: parseOptionalInt(r.Text(FieldYear)),
		Telehealth:      parseFlag(r.Text(FieldTelehealth)),
		Featured:        parseFlag(r.Text(FieldFeatured)),
		Slug:            r.Text(FieldSlug),
		Status:          r.Text(FieldStatus),
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}
	if lat, lng, ok := parseCoordinates(r.Text(FieldLatitude), r.Text(FieldLongitude)); ok {
		p.Coordinates = &Coordinate{Lat: lat, Lng: lng}
	}
	return p
}

// HasCoordinates reports whether the practice was geocoded.
func (p Practice) HasCoordinates() bool {
	return p.Coordinates != nil
}

// FullAddress joins the postal components that are present, comma
// separated.
func (p Practice) FullAddress() string {
	var parts []string
	for _, part := range []string{p.Address, p.City, p.Region, p.PostalCode} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

// MapsURL returns a maps link for the practice: a coordinate pin when
// geocoded, an address search otherwise.
func (p Practice) MapsURL() string {
	if p.HasCoordinates() {
		return fmt.Sprintf("https://www.google.com/maps?q=%v,%v", p.Coordinates.Lat, p.Coordinates.Lng)
	}
	return "https://www.google.com/maps/search/" + strings.ReplaceAll(p.FullAddress(), " ", "+")
}

// Path is the canonical route for the practice page.
func (p Practice) Path() string {
	return fmt.Sprintf("/vet/%s/", p.Slug)
}

func parseFlag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "1", "x":
		return true
	}
	return false
}

func parseOptionalInt(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}

func parseCoordinates(lat, lng string) (float64, float64, bool) {
	lat, lng = strings.TrimSpace(lat), strings.TrimSpace(lng)
	if lat == "" || lng == "" {
		return 0, 0, false
	}
	latF, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return 0, 0, false
	}
	lngF, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return 0, 0, false
	}
	return latF, lngF, true
}
