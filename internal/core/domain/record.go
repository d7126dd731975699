package domain

import "strings"

// Canonical field names for practice records, matching the source-of-truth
// table columns. Sources map their own headers onto these before handing
// records to the pipeline.
const (
	FieldName           = "Practice Name"
	FieldPractitioners  = "Veterinarian Names"
	FieldSpecialties    = "Specialties"
	FieldAddress        = "Address"
	FieldCity           = "City"
	FieldRegion         = "State"
	FieldPostalCode     = "Zip Code"
	FieldPhone          = "Phone"
	FieldEmail          = "Email"
	FieldWebsite        = "Website"
	FieldCertifications = "Certification Bodies"
	FieldSpecies        = "Species Treated"
	FieldDescription    = "Practice Description"
	FieldYear           = "Year Established"
	FieldTelehealth     = "Telehealth Available"
	FieldFeatured       = "Featured Listing"
	FieldLatitude       = "Latitude"
	FieldLongitude      = "Longitude"
	FieldSlug           = "Slug"
	FieldStatus         = "Status"
)

// Canonical field names for category records.
const (
	FieldCategoryName        = "Specialty Name"
	FieldCategoryDescription = "Description"
	FieldCategoryConditions  = "Related Conditions"
	FieldCategorySlug        = "Slug"
)

// Canonical field names for region records.
const (
	FieldRegionName     = "State Name"
	FieldRegionCode     = "State Code"
	FieldRegionDivision = "Region"
	FieldRegionFeatured = "Featured"
	FieldRegionSlug     = "Slug"
)

// PracticeFields lists the practice columns in canonical order, used by
// writers that need a stable column layout.
var PracticeFields = []string{
	FieldName,
	FieldPractitioners,
	FieldSpecialties,
	FieldAddress,
	FieldCity,
	FieldRegion,
	FieldPostalCode,
	FieldPhone,
	FieldEmail,
	FieldWebsite,
	FieldCertifications,
	FieldSpecies,
	FieldDescription,
	FieldYear,
	FieldTelehealth,
	FieldFeatured,
	FieldLatitude,
	FieldLongitude,
	FieldSlug,
	FieldStatus,
}

// CategoryFields lists the category columns in canonical order.
var CategoryFields = []string{
	FieldCategoryName,
	FieldCategoryDescription,
	FieldCategoryConditions,
	FieldCategorySlug,
}

// RegionFields lists the region columns in canonical order.
var RegionFields = []string{
	FieldRegionName,
	FieldRegionCode,
	FieldRegionDivision,
	FieldRegionFeatured,
	FieldRegionSlug,
}

// MultiValueFields are the practice columns canonicalized as delimited lists.
var MultiValueFields = []string{
	FieldSpecialties,
	FieldCertifications,
	FieldSpecies,
}

// fieldsByLower resolves lowercased header spellings onto canonical
// names, including the legacy spellings older exports still carry.
var fieldsByLower = func() map[string]string {
	m := make(map[string]string)
	for _, fields := range [][]string{PracticeFields, CategoryFields, RegionFields} {
		for _, field := range fields {
			m[strings.ToLower(field)] = field
		}
	}
	m["veterinarian name(s)"] = FieldPractitioners
	return m
}()

// CanonicalFieldName maps a source header onto its canonical field name.
// Matching is case-insensitive and accepts legacy spellings; unknown
// headers come back trimmed but otherwise unchanged.
func CanonicalFieldName(header string) string {
	header = strings.TrimSpace(header)
	if field, ok := fieldsByLower[strings.ToLower(header)]; ok {
		return field
	}
	return header
}

// FieldValue is one raw value at the ingestion boundary. Sources deliver
// multi-value fields either as a delimited scalar or as a native list;
// FieldValue carries both forms so normalization can reconcile them
// identically. The ambiguity never survives normalization: canonical
// records hold only scalar values with lists pipe-joined.
type FieldValue struct {
	text   string
	items  []string
	isList bool
}

// String wraps a scalar value.
func String(s string) FieldValue {
	return FieldValue{text: s}
}

// List wraps a native list value.
func List(items ...string) FieldValue {
	return FieldValue{items: items, isList: true}
}

// IsList reports whether the source delivered a native list.
func (v FieldValue) IsList() bool {
	return v.isList
}

// Text returns the scalar form: the value itself, or a pipe-joined
// rendering for native lists.
func (v FieldValue) Text() string {
	if v.isList {
		return strings.Join(v.items, "|")
	}
	return v.text
}

// Items returns the list form. Scalars split on the canonical pipe
// delimiter with each piece trimmed and empties dropped; native lists
// are returned as delivered.
func (v FieldValue) Items() []string {
	if v.isList {
		return append([]string(nil), v.items...)
	}
	if v.text == "" {
		return nil
	}
	var items []string
	for _, piece := range strings.Split(v.text, "|") {
		if piece = strings.TrimSpace(piece); piece != "" {
			items = append(items, piece)
		}
	}
	return items
}

// Record is one raw record: a field name to value mapping as delivered by
// a data source. After normalization a Record is canonical: every value
// scalar, multi-value fields pipe-joined.
type Record map[string]FieldValue

// Get returns the value for a field, or a zero scalar when absent.
func (r Record) Get(field string) FieldValue {
	return r[field]
}

// Text returns the scalar text for a field, empty when absent.
func (r Record) Text(field string) string {
	return r[field].Text()
}

// Has reports whether the field is present with a non-empty value.
func (r Record) Has(field string) bool {
	v, ok := r[field]
	return ok && v.Text() != ""
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// RecordSet bundles the three raw record collections one fetch yields.
type RecordSet struct {
	// Practices holds the practice listing records.
	Practices []Record

	// Categories holds the specialty/modality records.
	Categories []Record

	// Regions holds the state-level records.
	Regions []Record
}
